package assignment

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
)

var NowFunc = time.Now // mockable

type (
	Repository interface {
		CreateAssignment(ctx context.Context, asgmt Assignment) (Assignment, error)
		CreateSubmission(ctx context.Context, sub Submission) (Submission, error)
		// QuerySubmissions returns the submissions of an assignment in insertion order.
		QuerySubmissions(ctx context.Context, assignmentID int64) ([]Submission, error)
	}

	// FileStore is the submission store.
	FileStore interface {
		// Save writes all of r under name, replacing any previous content,
		// and returns the path recorded on the Submission.
		Save(ctx context.Context, name string, r io.Reader) (string, error)
	}

	Service struct {
		repo  Repository
		files FileStore
	}
)

func NewService(repo Repository, files FileStore) *Service {
	return &Service{repo: repo, files: files}
}

// Create stores a new assignment authored by creatorID.
func (svc *Service) Create(ctx context.Context, creatorID int64, na NewAssignment) (Assignment, error) {
	return svc.repo.CreateAssignment(ctx, Assignment{
		Title:       na.Title,
		Description: na.Description,
		CreatedBy:   creatorID,
		CreatedAt:   NowFunc().UTC(),
	})
}

// Submit saves the uploaded file then records the submission.
// assignmentID is not checked against existing assignments.
// A failed write leaves no row; a failed insert leaves the written file.
func (svc *Service) Submit(ctx context.Context, assignmentID, studentID int64, filename string, r io.Reader) (Submission, error) {
	path, err := svc.files.Save(ctx, SubmissionFileName(assignmentID, studentID, filename), r)
	if err != nil {
		return Submission{}, errors.Wrap(err, "saving submission file")
	}
	sub, err := svc.repo.CreateSubmission(ctx, Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		FilePath:     path,
		SubmittedAt:  NowFunc().UTC(),
	})
	if err != nil {
		return Submission{}, errors.Wrap(err, "creating submission")
	}
	return sub, nil
}

// QuerySubmissions lists every submission of an assignment, whoever created it.
func (svc *Service) QuerySubmissions(ctx context.Context, assignmentID int64) ([]Submission, error) {
	return svc.repo.QuerySubmissions(ctx, assignmentID)
}
