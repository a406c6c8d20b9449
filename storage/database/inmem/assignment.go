package inmemdb

import (
	"context"

	"github.com/trezcool/edtrack/core/assignment"
)

type assignmentRepository struct {
	asgmt *assignmentTable
	sub   *submissionTable
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *DB) *assignmentRepository {
	return &assignmentRepository{asgmt: db.assignment, sub: db.submission}
}

func (repo *assignmentRepository) CreateAssignment(_ context.Context, asgmt assignment.Assignment) (assignment.Assignment, error) {
	repo.asgmt.mutex.Lock()
	defer repo.asgmt.mutex.Unlock()

	repo.asgmt.pkCount++
	asgmt.ID = repo.asgmt.pkCount
	repo.asgmt.table[asgmt.ID] = &asgmt
	return asgmt, nil
}

func (repo *assignmentRepository) CreateSubmission(_ context.Context, sub assignment.Submission) (assignment.Submission, error) {
	repo.sub.mutex.Lock()
	defer repo.sub.mutex.Unlock()

	repo.sub.pkCount++
	sub.ID = repo.sub.pkCount
	repo.sub.rows = append(repo.sub.rows, sub)
	return sub, nil
}

func (repo *assignmentRepository) QuerySubmissions(_ context.Context, assignmentID int64) ([]assignment.Submission, error) {
	repo.sub.mutex.RLock()
	defer repo.sub.mutex.RUnlock()

	subs := make([]assignment.Submission, 0)
	for _, sub := range repo.sub.rows {
		if sub.AssignmentID == assignmentID {
			subs = append(subs, sub)
		}
	}
	return subs, nil
}
