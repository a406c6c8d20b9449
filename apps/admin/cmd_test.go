package main

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/edtrack/core/user"
	inmemdb "github.com/trezcool/edtrack/storage/database/inmem"
	testutil "github.com/trezcool/edtrack/tests"
)

func setup(t *testing.T) *commandLine {
	t.Helper()
	usrRepo := inmemdb.NewUserRepository(inmemdb.Open())

	origGoose, origRead := gooseRunFunc, readPasswordFunc
	t.Cleanup(func() {
		gooseRunFunc, readPasswordFunc = origGoose, origRead
	})

	return &commandLine{
		db:      &sql.DB{}, // only handed to the mocked goose runner
		usrRepo: usrRepo,
		usrSvc:  user.NewService(usrRepo),
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	pwd        string
	wantErr    error
	wantErrStr string
}

func (tt cliTest) check(t *testing.T, err error) {
	t.Helper()
	switch {
	case tt.wantErr != nil:
		assert.Equal(t, tt.wantErr, err)
	case tt.wantErrStr != "":
		if assert.Error(t, err) {
			assert.Equal(t, tt.wantErrStr, err.Error())
		}
	default:
		assert.NoError(t, err)
	}
}

func mockPassword(pwd string) func(int) ([]byte, error) {
	return func(int) ([]byte, error) {
		return []byte(pwd), nil
	}
}

func Test_commandLine_run(t *testing.T) {
	cli := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli.run(append([]string{"admin"}, tt.args...)))
		})
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "create", args: []string{"migrate", "create", "grades", "sql"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli.run(append([]string{"admin"}, tt.args...)))
		})
	}

	t.Run("non postgres engine", func(t *testing.T) {
		noDB := *cli
		noDB.db = nil
		assert.Equal(t, errMigrateEngine, noDB.run([]string{"admin", "migrate", "up"}))
	})
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)
	ctx := context.Background()

	existing := testutil.CreateUser(t, cli.usrRepo, "bob", "s3cret", user.RoleStudent)

	tests := []cliTest{
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "unknown flag", args: []string{"adduser", "-email", "x"}, wantErr: errHelp},
		{name: "empty role", args: []string{"adduser", "-username", "carol", "-role", ""}, wantErr: errHelp},
		{name: "username but no password", args: []string{"adduser", "-username", "carol"}, wantErr: errHelp},
		{name: "create with default role", args: []string{"adduser", "-username", "carol"}, pwd: "pw"},
		{name: "create teacher", args: []string{"adduser", "-username", " alice ", "-role", "teacher"}, pwd: "pw"},
		{name: "update existing", args: []string{"adduser", "-username", "bob", "-role", "teacher"}, pwd: "n3w"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			readPasswordFunc = mockPassword(tt.pwd)
			tt.check(t, cli.run(append([]string{"admin"}, tt.args...)))
		})
	}

	carol, err := cli.usrRepo.GetUserByUsername(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, user.RoleStudent, carol.Role)
	assert.Equal(t, "pw", carol.Password)

	alice, err := cli.usrRepo.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.RoleTeacher, alice.Role)

	bob, err := cli.usrRepo.GetUserByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, user.RoleTeacher, bob.Role)
	assert.Equal(t, "n3w", bob.Password)
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	usr := testutil.CreateUser(t, cli.usrRepo, "bob", "s3cret", user.RoleStudent)

	tests := []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"resetpassword", "-username", "lol"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-username", "lol"}, pwd: "lol", wantErr: user.ErrNotFound},
		{name: "reset", args: []string{"resetpassword", "-username", usr.Username}, pwd: "lmao"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			readPasswordFunc = mockPassword(tt.pwd)
			tt.check(t, cli.run(append([]string{"admin"}, tt.args...)))
		})
	}

	refreshed, err := cli.usrRepo.GetUserByID(context.Background(), usr.ID)
	require.NoError(t, err)
	assert.Equal(t, "lmao", refreshed.Password)

	_, err = cli.usrSvc.Authenticate(context.Background(), usr.Username, "s3cret")
	assert.Equal(t, user.ErrInvalidCredentials, err)
}
