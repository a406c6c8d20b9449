package gormrepos

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/trezcool/edtrack/core/assignment"
)

type assignmentRepository struct {
	db *gorm.DB
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *gorm.DB) *assignmentRepository {
	return &assignmentRepository{db: db}
}

func (repo *assignmentRepository) CreateAssignment(ctx context.Context, asgmt assignment.Assignment) (assignment.Assignment, error) {
	row := assignmentRow{
		Title:       asgmt.Title,
		Description: asgmt.Description,
		CreatedBy:   asgmt.CreatedBy,
		CreatedAt:   asgmt.CreatedAt.UTC(),
	}
	if err := repo.db.WithContext(ctx).Create(&row).Error; err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "inserting assignment")
	}
	asgmt.ID = row.ID
	return asgmt, nil
}

func (repo *assignmentRepository) CreateSubmission(ctx context.Context, sub assignment.Submission) (assignment.Submission, error) {
	row := submissionRow{
		AssignmentID: sub.AssignmentID,
		StudentID:    sub.StudentID,
		FilePath:     sub.FilePath,
		SubmittedAt:  sub.SubmittedAt.UTC(),
	}
	if err := repo.db.WithContext(ctx).Create(&row).Error; err != nil {
		return assignment.Submission{}, errors.Wrap(err, "inserting submission")
	}
	sub.ID = row.ID
	return sub, nil
}

func (repo *assignmentRepository) QuerySubmissions(ctx context.Context, assignmentID int64) ([]assignment.Submission, error) {
	var rows []submissionRow
	err := repo.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "selecting submissions")
	}

	subs := make([]assignment.Submission, 0, len(rows))
	for _, row := range rows {
		subs = append(subs, assignment.Submission{
			ID:           row.ID,
			AssignmentID: row.AssignmentID,
			StudentID:    row.StudentID,
			FilePath:     row.FilePath,
			SubmittedAt:  row.SubmittedAt.UTC(),
		})
	}
	return subs, nil
}
