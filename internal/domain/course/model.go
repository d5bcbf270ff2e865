package course

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxTitleLength = 120
)

// Course statuses. Instructor-created courses start Proposed and wait for an
// admin decision; admin-created courses are Approved immediately.
const (
	StatusProposed = "Proposed"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// DefaultImage is the image file used when no upload is provided.
const DefaultImage = "default.jpg"

// ValidStatuses contains all valid course statuses.
var ValidStatuses = []string{StatusProposed, StatusApproved, StatusRejected}

// Domain errors
var (
	ErrEmptyTitle     = errors.New("course title cannot be empty")
	ErrEmptyCategory  = errors.New("course category is required")
	ErrInvalidStatus  = errors.New("course status must be one of: Proposed, Approved, Rejected")
	ErrAlreadyDecided = errors.New("course has already been decided")
)

// Course is a catalog entry owned by an instructor. InstructorID may be empty
// after the owning instructor is deleted (set-null-on-delete).
type Course struct {
	ID           string
	Title        string
	CategoryID   string
	Description  string // Markdown
	ImageFile    string
	InstructorID string
	Status       string
	CreatedAt    time.Time
}

// Validate checks if the Course has valid data.
// PRE: Course struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Course) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return ErrEmptyTitle
	}
	if len(c.Title) > MaxTitleLength {
		return errors.New("course title cannot exceed 120 characters")
	}
	if c.CategoryID == "" {
		return ErrEmptyCategory
	}
	if !isValidStatus(c.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// IsApproved returns true if the course is visible in the public catalog.
// INVARIANT: Course fields are not mutated
func (c *Course) IsApproved() bool {
	return c.Status == StatusApproved
}

// Approve marks a proposed course as approved.
// PRE: Status is Proposed
// POST: Status is Approved
func (c *Course) Approve() error {
	if c.Status != StatusProposed {
		return ErrAlreadyDecided
	}
	c.Status = StatusApproved
	return nil
}

// Reject marks a proposed course as rejected.
// PRE: Status is Proposed
// POST: Status is Rejected
func (c *Course) Reject() error {
	if c.Status != StatusProposed {
		return ErrAlreadyDecided
	}
	c.Status = StatusRejected
	return nil
}

func isValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}
