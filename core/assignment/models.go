package assignment

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

type Assignment struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	CreatedBy   int64     `json:"created_by" db:"created_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // UTC
}

// NewAssignment contains information needed to create a new Assignment. Any title is accepted.
type NewAssignment struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	return validate.Struct(na)
}

// Submission is one uploaded file. Each submit call creates a new one.
type Submission struct {
	ID           int64     `json:"id" db:"id"`
	AssignmentID int64     `json:"assignment_id" db:"assignment_id"`
	StudentID    int64     `json:"student_id" db:"student_id"`
	FilePath     string    `json:"file_path" db:"file_path"`
	SubmittedAt  time.Time `json:"submitted_at" db:"submitted_at"` // UTC
}

// SubmissionFileName names the stored file of a submission.
// The same (assignment, student, filename) always yields the same name; only the
// base of filename is kept so uploads cannot escape the submission store.
func SubmissionFileName(assignmentID, studentID int64, filename string) string {
	return fmt.Sprintf("assignment_%d_student_%d_%s", assignmentID, studentID, filepath.Base(filename))
}
