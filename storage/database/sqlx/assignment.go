package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/edtrack/core/assignment"
)

type assignmentRepository struct {
	db *sqlx.DB
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *sqlx.DB) *assignmentRepository {
	return &assignmentRepository{db: db}
}

func (repo *assignmentRepository) CreateAssignment(ctx context.Context, asgmt assignment.Assignment) (assignment.Assignment, error) {
	err := withConn(ctx, repo.db, func(conn *sqlx.Conn) error {
		return conn.QueryRowxContext(
			ctx,
			`INSERT INTO assignments (title, description, created_by, created_at) VALUES ($1, $2, $3, $4) RETURNING id`,
			asgmt.Title, asgmt.Description, asgmt.CreatedBy, asgmt.CreatedAt.UTC(),
		).Scan(&asgmt.ID)
	})
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "inserting assignment")
	}
	return asgmt, nil
}

func (repo *assignmentRepository) CreateSubmission(ctx context.Context, sub assignment.Submission) (assignment.Submission, error) {
	err := withConn(ctx, repo.db, func(conn *sqlx.Conn) error {
		return conn.QueryRowxContext(
			ctx,
			`INSERT INTO submissions (assignment_id, student_id, file_path, submitted_at) VALUES ($1, $2, $3, $4) RETURNING id`,
			sub.AssignmentID, sub.StudentID, sub.FilePath, sub.SubmittedAt.UTC(),
		).Scan(&sub.ID)
	})
	if err != nil {
		return assignment.Submission{}, errors.Wrap(err, "inserting submission")
	}
	return sub, nil
}

func (repo *assignmentRepository) QuerySubmissions(ctx context.Context, assignmentID int64) ([]assignment.Submission, error) {
	subs := make([]assignment.Submission, 0)
	err := withConn(ctx, repo.db, func(conn *sqlx.Conn) error {
		return conn.SelectContext(
			ctx,
			&subs,
			`SELECT id, assignment_id, student_id, file_path, submitted_at FROM submissions WHERE assignment_id = $1 ORDER BY id`,
			assignmentID,
		)
	})
	if err != nil {
		return nil, errors.Wrap(err, "selecting submissions")
	}
	for i := range subs {
		subs[i].SubmittedAt = subs[i].SubmittedAt.UTC()
	}
	return subs, nil
}
