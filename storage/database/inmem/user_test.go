package inmemdb

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/edtrack/core/user"
	"github.com/trezcool/edtrack/tests"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(Open())

	alice := testutil.CreateUser(t, repo, "alice", "pw1", user.RoleTeacher)
	bob := testutil.CreateUser(t, repo, "bob", "pw2", user.RoleStudent)
	assert.NotEqual(t, alice.ID, bob.ID)

	t.Run("uniqueness", func(t *testing.T) {
		assert.Equal(t, user.ErrUsernameExists, repo.CheckUsernameUniqueness(ctx, "alice"))
		assert.Equal(t, user.ErrUsernameExists, repo.CheckUsernameUniqueness(ctx, "bob"))
		assert.NoError(t, repo.CheckUsernameUniqueness(ctx, "Alice")) // case sensitive
		assert.NoError(t, repo.CheckUsernameUniqueness(ctx, "carol"))

		_, err := repo.CreateUser(ctx, user.User{Username: "alice", Password: "x", Role: user.RoleStudent})
		assert.Equal(t, user.ErrUsernameExists, err)
	})

	t.Run("get", func(t *testing.T) {
		usr, err := repo.GetUserByID(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, bob, usr)

		usr, err = repo.GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, alice, usr)

		_, err = repo.GetUserByID(ctx, 404)
		assert.Equal(t, user.ErrNotFound, err)
		_, err = repo.GetUserByUsername(ctx, "lol")
		assert.Equal(t, user.ErrNotFound, err)
	})

	t.Run("credentials", func(t *testing.T) {
		tests := []struct {
			name       string
			uname, pwd string
			wantID     int64
			wantErr    error
		}{
			{name: "match", uname: "alice", pwd: "pw1", wantID: alice.ID},
			{name: "wrong password", uname: "alice", pwd: "pw2", wantErr: user.ErrNotFound},
			{name: "password is case sensitive", uname: "alice", pwd: "PW1", wantErr: user.ErrNotFound},
			{name: "unknown user", uname: "carol", pwd: "pw1", wantErr: user.ErrNotFound},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				usr, err := repo.GetUserByCredentials(ctx, tt.uname, tt.pwd)
				if tt.wantErr != nil {
					assert.Equal(t, tt.wantErr, err)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, usr.ID)
			})
		}
	})

	t.Run("update", func(t *testing.T) {
		upd := bob
		upd.Password = "new"
		_, err := repo.UpdateUser(ctx, upd)
		require.NoError(t, err)

		usr, err := repo.GetUserByCredentials(ctx, "bob", "new")
		require.NoError(t, err)
		assert.Equal(t, bob.ID, usr.ID)

		upd.Username = "alice"
		_, err = repo.UpdateUser(ctx, upd)
		assert.Equal(t, user.ErrUsernameExists, err)

		_, err = repo.UpdateUser(ctx, user.User{ID: 404, Username: "ghost"})
		assert.Equal(t, user.ErrNotFound, err)
	})
}

func TestUserRepository_concurrentSignups(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(Open())

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.CreateUser(ctx, user.User{Username: "dup", Password: fmt.Sprint(i), Role: user.RoleStudent})
			if err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, created)
}
