package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/trezcool/edtrack/core/assignment"
	"github.com/trezcool/edtrack/core/user"
)

func CreateUser(t *testing.T, repo user.Repository, uname, pwd, role string) user.User {
	t.Helper()
	usr, err := repo.CreateUser(context.Background(), user.User{
		Username: uname,
		Password: pwd,
		Role:     role,
	})
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

func CreateAssignment(t *testing.T, repo assignment.Repository, creator user.User, title string, createdAt ...time.Time) assignment.Assignment {
	t.Helper()
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	asgmt, err := repo.CreateAssignment(context.Background(), assignment.Assignment{
		Title:     title,
		CreatedBy: creator.ID,
		CreatedAt: tstamp,
	})
	if err != nil {
		t.Fatalf("createAssignment() failed: %v", err)
	}
	return asgmt
}

// SameInstant compares timestamps at the precision the databases keep.
func SameInstant(a, b time.Time) bool {
	return a.UTC().Truncate(time.Microsecond).Equal(b.UTC().Truncate(time.Microsecond))
}
