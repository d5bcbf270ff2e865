package lesson

import (
	"errors"
	"strings"
	"time"
)

// MaxTitleLength caps the lesson title.
const MaxTitleLength = 150

// Domain errors
var (
	ErrEmptyTitle  = errors.New("lesson title cannot be empty")
	ErrEmptyCourse = errors.New("lesson must belong to a course")
)

// Lesson is a unit of course content. Content is markdown; VideoFile and
// NotesFile are optional media-dir references.
type Lesson struct {
	ID        string
	CourseID  string
	Title     string
	Content   string
	VideoFile string
	NotesFile string
	Order     int
	CreatedAt time.Time
}

// Validate checks if the Lesson has valid data.
// PRE: Lesson struct is populated
// POST: Returns nil if valid, error otherwise
func (l *Lesson) Validate() error {
	if l.CourseID == "" {
		return ErrEmptyCourse
	}
	if strings.TrimSpace(l.Title) == "" {
		return ErrEmptyTitle
	}
	if len(l.Title) > MaxTitleLength {
		return errors.New("lesson title cannot exceed 150 characters")
	}
	if l.Order < 0 {
		return errors.New("lesson order cannot be negative")
	}
	return nil
}
