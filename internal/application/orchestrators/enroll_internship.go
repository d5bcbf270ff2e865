package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	internshipStore "campus/internal/adapters/storage/internship"
	"campus/internal/domain/internship"
)

// InternshipEnrollmentStore defines the enrollment store operations the
// internship workflow needs.
type InternshipEnrollmentStore interface {
	GetByID(ctx context.Context, id string) (internship.Enrollment, error)
	GetByStudentAndInternship(ctx context.Context, studentID, internshipID string) (internship.Enrollment, error)
	Save(ctx context.Context, e internship.Enrollment) error
}

// InternshipStoreForEnroll defines the internship lookup needed by enrollment.
type InternshipStoreForEnroll interface {
	GetByID(ctx context.Context, id string) (internship.Internship, error)
}

// EnrollInternshipInput carries input for internship enrollment.
type EnrollInternshipInput struct {
	StudentID    string
	InternshipID string
}

// EnrollInternshipResult reports the enrollment and whether it already existed.
type EnrollInternshipResult struct {
	Enrollment      internship.Enrollment
	AlreadyEnrolled bool
}

// EnrollInternshipDeps holds dependencies for internship enrollment.
type EnrollInternshipDeps struct {
	EnrollmentStore InternshipEnrollmentStore
	InternshipStore InternshipStoreForEnroll
	GenerateID      func() string
	Now             func() time.Time
}

// ExecuteEnrollInternship enrolls a student in an internship. The operation
// is idempotent: a second enrollment attempt returns the existing enrollment
// with AlreadyEnrolled set, so the caller informs rather than fails.
// PRE: caller is a student; InternshipID references an existing internship
// POST: Exactly one enrollment exists for the (student, internship) pair,
// starting at Status=Active, ProjectStatus=Pending
func ExecuteEnrollInternship(ctx context.Context, input EnrollInternshipInput, deps EnrollInternshipDeps) (EnrollInternshipResult, error) {
	if _, err := deps.InternshipStore.GetByID(ctx, input.InternshipID); err != nil {
		return EnrollInternshipResult{}, fmt.Errorf("load internship: %w", err)
	}

	if existing, err := deps.EnrollmentStore.GetByStudentAndInternship(ctx, input.StudentID, input.InternshipID); err == nil {
		slog.Info("internship_event", "event", "enroll_duplicate", "student_id", input.StudentID, "internship_id", input.InternshipID)
		return EnrollInternshipResult{Enrollment: existing, AlreadyEnrolled: true}, nil
	}

	e := internship.NewEnrollment(deps.GenerateID(), input.StudentID, input.InternshipID, deps.Now())
	if err := e.Validate(); err != nil {
		return EnrollInternshipResult{}, err
	}
	if err := deps.EnrollmentStore.Save(ctx, e); err != nil {
		// A concurrent enrollment can slip past the existence check; the
		// unique (student, internship) constraint decides, and the row
		// that won is returned.
		if internshipStore.IsDuplicate(err) {
			existing, getErr := deps.EnrollmentStore.GetByStudentAndInternship(ctx, input.StudentID, input.InternshipID)
			if getErr == nil {
				return EnrollInternshipResult{Enrollment: existing, AlreadyEnrolled: true}, nil
			}
		}
		return EnrollInternshipResult{}, fmt.Errorf("save enrollment: %w", err)
	}

	slog.Info("internship_event", "event", "enrolled", "student_id", input.StudentID, "internship_id", input.InternshipID)
	return EnrollInternshipResult{Enrollment: e}, nil
}
