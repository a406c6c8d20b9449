package gormrepos

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/trezcool/edtrack/core/assignment"
	"github.com/trezcool/edtrack/core/user"
	"github.com/trezcool/edtrack/tests"
)

// prepareDB connects to the MySQL database named by TEST_MYSQL_DSN and empties it.
func prepareDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("TEST_MYSQL_DSN not set")
	}
	db, err := OpenDSN(dsn, false)
	require.NoError(t, err)
	for _, tbl := range []string{"submissions", "assignments", "users"} {
		require.NoError(t, db.Exec("DELETE FROM "+tbl).Error)
	}
	return db
}

func TestUserRepository(t *testing.T) {
	db := prepareDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	alice := testutil.CreateUser(t, repo, "alice", "pw1", user.RoleTeacher)

	assert.Equal(t, user.ErrUsernameExists, repo.CheckUsernameUniqueness(ctx, "alice"))
	assert.NoError(t, repo.CheckUsernameUniqueness(ctx, "Alice"))

	_, err := repo.CreateUser(ctx, user.User{Username: "alice", Password: "x", Role: user.RoleStudent})
	assert.Equal(t, user.ErrUsernameExists, err)

	usr, err := repo.GetUserByCredentials(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, alice, usr)

	_, err = repo.GetUserByCredentials(ctx, "alice", "PW1")
	assert.Equal(t, user.ErrNotFound, err)

	alice.Password = "new"
	_, err = repo.UpdateUser(ctx, alice)
	require.NoError(t, err)
	usr, err = repo.GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", usr.Password)

	_, err = repo.UpdateUser(ctx, user.User{ID: alice.ID + 1000, Username: "ghost"})
	assert.Equal(t, user.ErrNotFound, err)
}

func TestAssignmentRepository(t *testing.T) {
	db := prepareDB(t)
	ctx := context.Background()
	usrRepo := NewUserRepository(db)
	repo := NewAssignmentRepository(db)

	teacher := testutil.CreateUser(t, usrRepo, "alice", "pw1", user.RoleTeacher)
	student := testutil.CreateUser(t, usrRepo, "bob", "pw2", user.RoleStudent)
	asgmt := testutil.CreateAssignment(t, repo, teacher, "HW1")

	now := time.Now().UTC().Truncate(time.Second)
	for _, p := range []string{"p1", "p2"} {
		_, err := repo.CreateSubmission(ctx, assignment.Submission{
			AssignmentID: asgmt.ID,
			StudentID:    student.ID,
			FilePath:     p,
			SubmittedAt:  now,
		})
		require.NoError(t, err)
	}

	subs, err := repo.QuerySubmissions(ctx, asgmt.ID)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "p1", subs[0].FilePath)
	assert.Equal(t, "p2", subs[1].FilePath)
	assert.True(t, testutil.SameInstant(now, subs[0].SubmittedAt))

	subs, err = repo.QuerySubmissions(ctx, asgmt.ID+1)
	require.NoError(t, err)
	assert.NotNil(t, subs)
	assert.Empty(t, subs)
}

func TestRepositories_longText(t *testing.T) {
	db := prepareDB(t)
	ctx := context.Background()
	usrRepo := NewUserRepository(db)
	repo := NewAssignmentRepository(db)

	role := strings.Repeat("r", 300)
	pwd := strings.Repeat("p", 1000)
	usr := testutil.CreateUser(t, usrRepo, strings.Repeat("u", 191), pwd, role)

	got, err := usrRepo.GetUserByCredentials(ctx, usr.Username, pwd)
	require.NoError(t, err)
	assert.Equal(t, role, got.Role)

	title := strings.Repeat("t", 1000)
	asgmt := testutil.CreateAssignment(t, repo, usr, title)
	assert.Equal(t, title, asgmt.Title)
}
