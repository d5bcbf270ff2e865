package notification

import (
	"errors"
	"strings"
	"time"
)

// MaxMessageLength caps the notification message.
const MaxMessageLength = 500

// Domain errors
var (
	ErrEmptyStudent = errors.New("notification student is required")
	ErrEmptyMessage = errors.New("notification message cannot be empty")
)

// Notification is an in-app message shown on the student dashboard until read.
type Notification struct {
	ID        string
	StudentID string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}

// Validate checks if the Notification has valid data.
// PRE: Notification struct is populated
// POST: Returns nil if valid, error otherwise
func (n *Notification) Validate() error {
	if n.StudentID == "" {
		return ErrEmptyStudent
	}
	if strings.TrimSpace(n.Message) == "" {
		return ErrEmptyMessage
	}
	if len(n.Message) > MaxMessageLength {
		return errors.New("notification message cannot exceed 500 characters")
	}
	return nil
}

// MarkRead flags the notification as read.
// POST: IsRead is true
func (n *Notification) MarkRead() {
	n.IsRead = true
}
