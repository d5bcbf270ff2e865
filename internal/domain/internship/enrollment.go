package internship

import (
	"errors"
	"time"
)

// Enrollment statuses.
const (
	StatusActive    = "Active"
	StatusCompleted = "Completed"
)

// Project submission statuses. Pending -> Submitted -> Approved/Rejected.
// Rejected is not terminal: a resubmission moves back to Submitted.
const (
	ProjectPending   = "Pending"
	ProjectSubmitted = "Submitted"
	ProjectApproved  = "Approved"
	ProjectRejected  = "Rejected"
)

// Domain errors
var (
	ErrEmptyStudent       = errors.New("enrollment student is required")
	ErrEmptySubmission    = errors.New("a project file is required to submit")
	ErrNothingToReview    = errors.New("no submission to review")
	ErrEmptyCertificateID = errors.New("a certificate ID is required to approve")
	ErrInvalidStatus      = errors.New("enrollment status must be Active or Completed")
	ErrInvalidProjStatus  = errors.New("project status must be one of: Pending, Submitted, Approved, Rejected")
)

// Enrollment links a student to an internship and carries the project
// submission workflow. At most one exists per (student, internship) pair.
//
// Invariants:
//   - CertificateID is set iff ProjectStatus == Approved
//   - CompletedAt is set iff Status == Completed, which only approval causes
//   - ProjectSubmission is non-empty whenever ProjectStatus is
//     Submitted, Approved, or Rejected
type Enrollment struct {
	ID                string
	StudentID         string
	InternshipID      string
	Status            string
	ProjectSubmission string // media-dir file reference
	ProjectStatus     string
	CertificateID     string
	CreatedAt         time.Time
	CompletedAt       time.Time
}

// NewEnrollment creates an enrollment in its default state.
// POST: Status=Active, ProjectStatus=Pending
func NewEnrollment(id, studentID, internshipID string, now time.Time) Enrollment {
	return Enrollment{
		ID:            id,
		StudentID:     studentID,
		InternshipID:  internshipID,
		Status:        StatusActive,
		ProjectStatus: ProjectPending,
		CreatedAt:     now,
	}
}

// Validate checks if the Enrollment has valid data.
// PRE: Enrollment struct is populated
// POST: Returns nil if valid, error otherwise
func (e *Enrollment) Validate() error {
	if e.StudentID == "" {
		return ErrEmptyStudent
	}
	if e.InternshipID == "" {
		return ErrEmptyInternship
	}
	if e.Status != StatusActive && e.Status != StatusCompleted {
		return ErrInvalidStatus
	}
	switch e.ProjectStatus {
	case ProjectPending, ProjectSubmitted, ProjectApproved, ProjectRejected:
	default:
		return ErrInvalidProjStatus
	}
	if e.ProjectStatus != ProjectPending && e.ProjectSubmission == "" {
		return ErrEmptySubmission
	}
	if (e.CertificateID != "") != (e.ProjectStatus == ProjectApproved) {
		return errors.New("certificate ID is set iff the project is approved")
	}
	return nil
}

// SubmitProject records a stored file reference and moves the project to
// Submitted. Resubmission is allowed from any state, including after a
// rejection, and overwrites the previous file reference.
// PRE: fileRef is the media-dir name of an already persisted file
// POST: ProjectSubmission=fileRef, ProjectStatus=Submitted
func (e *Enrollment) SubmitProject(fileRef string) error {
	if fileRef == "" {
		return ErrEmptySubmission
	}
	e.ProjectSubmission = fileRef
	e.ProjectStatus = ProjectSubmitted
	// An approved-then-resubmitted enrollment loses its certificate until
	// the new submission is approved again.
	e.CertificateID = ""
	if e.Status == StatusCompleted {
		e.Status = StatusActive
		e.CompletedAt = time.Time{}
	}
	return nil
}

// Approve accepts the submission, completes the enrollment, and assigns the
// certificate.
// PRE: a submission exists; certificateID is non-empty
// POST: ProjectStatus=Approved, Status=Completed, CompletedAt=now
func (e *Enrollment) Approve(certificateID string, now time.Time) error {
	if e.ProjectSubmission == "" {
		return ErrNothingToReview
	}
	if certificateID == "" {
		return ErrEmptyCertificateID
	}
	e.ProjectStatus = ProjectApproved
	e.Status = StatusCompleted
	e.CompletedAt = now
	e.CertificateID = certificateID
	return nil
}

// Reject declines the submission. The enrollment stays Active and keeps the
// stored file so the student can see what was rejected and try again.
// PRE: a submission exists
// POST: ProjectStatus=Rejected; Status, CertificateID, CompletedAt unchanged
func (e *Enrollment) Reject() error {
	if e.ProjectSubmission == "" {
		return ErrNothingToReview
	}
	e.ProjectStatus = ProjectRejected
	return nil
}

// HasSubmission returns true once a project file has been recorded.
// INVARIANT: Enrollment fields are not mutated
func (e *Enrollment) HasSubmission() bool {
	return e.ProjectSubmission != ""
}

// CertificateAvailable returns true when the certificate page may be shown.
// INVARIANT: Enrollment fields are not mutated
func (e *Enrollment) CertificateAvailable() bool {
	return e.ProjectStatus == ProjectApproved
}
