package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"campus/internal/domain/internship"
)

// SubmitProjectInput carries a student's project submission. FileRef is the
// stored media name of an already persisted upload.
type SubmitProjectInput struct {
	StudentID    string
	InternshipID string
	FileRef      string
}

// SubmitProjectDeps holds dependencies for project submission.
type SubmitProjectDeps struct {
	EnrollmentStore InternshipEnrollmentStore
}

// ErrNotEnrolled is returned when a student acts on an internship they are
// not enrolled in.
var ErrNotEnrolled = errors.New("you are not enrolled in this internship")

// ExecuteSubmitProject records a project submission on the student's
// enrollment. Resubmission is allowed from any state: after a rejection it
// moves the project back to Submitted, and after an approval it revokes the
// certificate until the new submission is approved again.
// PRE: the upload referenced by FileRef is already saved
// POST: ProjectStatus=Submitted with the new file reference
func ExecuteSubmitProject(ctx context.Context, input SubmitProjectInput, deps SubmitProjectDeps) (internship.Enrollment, error) {
	e, err := deps.EnrollmentStore.GetByStudentAndInternship(ctx, input.StudentID, input.InternshipID)
	if err != nil {
		return internship.Enrollment{}, ErrNotEnrolled
	}

	if err := e.SubmitProject(input.FileRef); err != nil {
		return internship.Enrollment{}, err
	}
	if err := deps.EnrollmentStore.Save(ctx, e); err != nil {
		return internship.Enrollment{}, fmt.Errorf("save enrollment: %w", err)
	}

	slog.Info("internship_event", "event", "project_submitted", "student_id", input.StudentID,
		"internship_id", input.InternshipID, "file", input.FileRef)
	return e, nil
}
