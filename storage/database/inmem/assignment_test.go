package inmemdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/edtrack/core/assignment"
	"github.com/trezcool/edtrack/core/user"
	"github.com/trezcool/edtrack/tests"
)

func TestAssignmentRepository(t *testing.T) {
	ctx := context.Background()
	db := Open()
	usrRepo := NewUserRepository(db)
	repo := NewAssignmentRepository(db)

	teacher := testutil.CreateUser(t, usrRepo, "alice", "pw1", user.RoleTeacher)
	student := testutil.CreateUser(t, usrRepo, "bob", "pw2", user.RoleStudent)

	a1 := testutil.CreateAssignment(t, repo, teacher, "HW1")
	a2 := testutil.CreateAssignment(t, repo, teacher, "HW2")
	assert.Equal(t, int64(1), a1.ID)
	assert.Equal(t, int64(2), a2.ID)

	now := time.Now().UTC()
	paths := []string{"p1", "p2", "p3"}
	for i, p := range paths {
		asgmtID := a1.ID
		if i == 1 {
			asgmtID = a2.ID
		}
		_, err := repo.CreateSubmission(ctx, assignment.Submission{
			AssignmentID: asgmtID,
			StudentID:    student.ID,
			FilePath:     p,
			SubmittedAt:  now,
		})
		require.NoError(t, err)
	}
	// no check on the assignment
	_, err := repo.CreateSubmission(ctx, assignment.Submission{AssignmentID: 99, StudentID: student.ID, FilePath: "p4"})
	require.NoError(t, err)

	tests := []struct {
		name      string
		asgmtID   int64
		wantPaths []string
	}{
		{name: "insertion order", asgmtID: a1.ID, wantPaths: []string{"p1", "p3"}},
		{name: "single", asgmtID: a2.ID, wantPaths: []string{"p2"}},
		{name: "unknown assignment", asgmtID: 99, wantPaths: []string{"p4"}},
		{name: "none", asgmtID: 42, wantPaths: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs, err := repo.QuerySubmissions(ctx, tt.asgmtID)
			require.NoError(t, err)
			require.NotNil(t, subs)
			gotPaths := make([]string, 0, len(subs))
			for _, sub := range subs {
				assert.Equal(t, tt.asgmtID, sub.AssignmentID)
				gotPaths = append(gotPaths, sub.FilePath)
			}
			assert.Equal(t, tt.wantPaths, gotPaths)
		})
	}
}
