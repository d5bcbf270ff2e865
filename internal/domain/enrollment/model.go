package enrollment

import (
	"errors"
	"time"
)

// Enrollment statuses.
const (
	StatusActive    = "Active"
	StatusCompleted = "Completed"
)

// Domain errors
var (
	ErrEmptyStudent  = errors.New("enrollment student is required")
	ErrEmptyCourse   = errors.New("enrollment course is required")
	ErrInvalidStatus = errors.New("enrollment status must be Active or Completed")
)

// Enrollment links a student to a course and tracks progress. At most one
// exists per (student, course) pair.
type Enrollment struct {
	ID            string
	StudentID     string
	CourseID      string
	Status        string
	Progress      float64 // 0..100, completed lessons over total lessons
	CertificateID string
	CreatedAt     time.Time
	CompletedAt   time.Time
}

// Validate checks if the Enrollment has valid data.
// PRE: Enrollment struct is populated
// POST: Returns nil if valid, error otherwise
func (e *Enrollment) Validate() error {
	if e.StudentID == "" {
		return ErrEmptyStudent
	}
	if e.CourseID == "" {
		return ErrEmptyCourse
	}
	if e.Status != StatusActive && e.Status != StatusCompleted {
		return ErrInvalidStatus
	}
	if e.Progress < 0 || e.Progress > 100 {
		return errors.New("progress must be between 0 and 100")
	}
	return nil
}

// UpdateProgress recomputes progress from lesson completion counts and marks
// the enrollment Completed when every lesson is done.
// PRE: totalLessons >= 0, completedLessons >= 0
// POST: Progress in [0,100]; Status=Completed and CompletedAt set at 100%
func (e *Enrollment) UpdateProgress(completedLessons, totalLessons int, now time.Time) {
	if totalLessons <= 0 {
		e.Progress = 0
		return
	}
	if completedLessons > totalLessons {
		completedLessons = totalLessons
	}
	e.Progress = float64(completedLessons) / float64(totalLessons) * 100
	if e.Progress >= 100 && e.Status != StatusCompleted {
		e.Status = StatusCompleted
		e.CompletedAt = now
	}
}

// IsCompleted returns true once every lesson is done.
// INVARIANT: Enrollment fields are not mutated
func (e *Enrollment) IsCompleted() bool {
	return e.Status == StatusCompleted
}

// LessonCompletion records that a student finished a lesson.
type LessonCompletion struct {
	ID          string
	StudentID   string
	LessonID    string
	CompletedAt time.Time
}
