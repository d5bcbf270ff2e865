package internship

import (
	"errors"
	"strings"
	"time"

	"campus/internal/domain/quiz"
)

// Max length constants for user-editable fields.
const (
	MaxTitleLength = 150
)

// Material resource types.
const (
	ResourcePDF   = "pdf"
	ResourceVideo = "video"
)

// Domain errors
var (
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrEmptyInternship = errors.New("internship reference is required")
	ErrEmptyFile       = errors.New("material file is required")
)

// Internship is a program owned by an instructor. InstructorID may be empty
// after the owning instructor is deleted (set-null-on-delete).
type Internship struct {
	ID           string
	Title        string
	Description  string
	Duration     string // e.g. "3 Months"
	InstructorID string
	CreatedAt    time.Time
}

// Validate checks if the Internship has valid data.
// PRE: Internship struct is populated
// POST: Returns nil if valid, error otherwise
func (i *Internship) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return ErrEmptyTitle
	}
	if len(i.Title) > MaxTitleLength {
		return errors.New("title cannot exceed 150 characters")
	}
	return nil
}

// Material is a learning resource attached to an internship.
type Material struct {
	ID           string
	InternshipID string
	Title        string
	ResourceType string // pdf, video
	FilePath     string
	CreatedAt    time.Time
}

// Validate checks if the Material has valid data.
// PRE: Material struct is populated
// POST: Returns nil if valid, error otherwise
func (m *Material) Validate() error {
	if m.InternshipID == "" {
		return ErrEmptyInternship
	}
	if strings.TrimSpace(m.Title) == "" {
		return ErrEmptyTitle
	}
	if m.FilePath == "" {
		return ErrEmptyFile
	}
	return nil
}

// Quiz is an internship quiz. Question payload and scoring semantics are
// shared with course quizzes; internship quiz scores are informational and
// never persisted.
type Quiz struct {
	ID            string
	InternshipID  string
	Title         string
	QuestionsData string
	CreatedAt     time.Time
}

// Validate checks if the Quiz has valid data.
// PRE: Quiz struct is populated
// POST: Returns nil if valid, error otherwise
func (q *Quiz) Validate() error {
	if q.InternshipID == "" {
		return ErrEmptyInternship
	}
	if strings.TrimSpace(q.Title) == "" {
		return ErrEmptyTitle
	}
	if q.QuestionsData != "" {
		if _, err := quiz.ParseQuestions(q.QuestionsData); err != nil {
			return err
		}
	}
	return nil
}

// Questions returns the parsed question list.
// INVARIANT: QuestionsData is never mutated by reads or scoring
func (q *Quiz) Questions() ([]quiz.Question, error) {
	if q.QuestionsData == "" {
		return nil, nil
	}
	return quiz.ParseQuestions(q.QuestionsData)
}

// Project is the deliverable definition for an internship. Each internship
// holds at most one; setting it again overwrites title and description.
type Project struct {
	ID           string
	InternshipID string
	Title        string
	Description  string
	CreatedAt    time.Time
}

// Validate checks if the Project has valid data.
// PRE: Project struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Project) Validate() error {
	if p.InternshipID == "" {
		return ErrEmptyInternship
	}
	if strings.TrimSpace(p.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}
