package quiz

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// MaxTitleLength caps the quiz title.
const MaxTitleLength = 150

// PassThreshold is the minimum percentage for a passing course quiz result.
const PassThreshold = 50.0

// Domain errors
var (
	ErrEmptyTitle   = errors.New("quiz title cannot be empty")
	ErrEmptyCourse  = errors.New("quiz must belong to a course")
	ErrBadQuestions = errors.New("quiz questions must be a JSON array of {text, options, correct}")
)

// Question is a single multiple-choice question. Options are ordered;
// Correct matches one option exactly.
type Question struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Correct string   `json:"correct"`
}

// Quiz is a course quiz. QuestionsData holds the serialized question list;
// it is read-only at scoring time.
type Quiz struct {
	ID            string
	CourseID      string
	Title         string
	QuestionsData string
	CreatedAt     time.Time
}

// Validate checks if the Quiz has valid data.
// PRE: Quiz struct is populated
// POST: Returns nil if valid, error otherwise
func (q *Quiz) Validate() error {
	if q.CourseID == "" {
		return ErrEmptyCourse
	}
	if strings.TrimSpace(q.Title) == "" {
		return ErrEmptyTitle
	}
	if len(q.Title) > MaxTitleLength {
		return errors.New("quiz title cannot exceed 150 characters")
	}
	if q.QuestionsData != "" {
		if _, err := ParseQuestions(q.QuestionsData); err != nil {
			return err
		}
	}
	return nil
}

// Questions returns the parsed question list. An empty payload is an empty
// quiz, not an error.
func (q *Quiz) Questions() ([]Question, error) {
	if q.QuestionsData == "" {
		return nil, nil
	}
	return ParseQuestions(q.QuestionsData)
}

// ParseQuestions decodes a serialized question list.
// PRE: data is non-empty
// POST: Returns the ordered questions or ErrBadQuestions
func ParseQuestions(data string) ([]Question, error) {
	var questions []Question
	if err := json.Unmarshal([]byte(data), &questions); err != nil {
		return nil, ErrBadQuestions
	}
	return questions, nil
}

// Score grades submitted answers against the question list. Answers are keyed
// by question index; comparison is exact string equality with the recorded
// correct value. Returns the percentage of correct answers, 0 for an empty
// quiz (division-by-zero guard).
// INVARIANT: questions are never mutated
func Score(questions []Question, answers map[int]string) float64 {
	if len(questions) == 0 {
		return 0
	}
	correct := 0
	for i, q := range questions {
		if answers[i] == q.Correct {
			correct++
		}
	}
	return float64(correct) / float64(len(questions)) * 100
}

// Result records a student's graded attempt at a course quiz.
type Result struct {
	ID          string
	StudentID   string
	QuizID      string
	Score       float64
	Passed      bool
	AttemptedAt time.Time
}

// NewResult builds a Result from a computed score.
// POST: Passed is true iff score >= PassThreshold
func NewResult(id, studentID, quizID string, score float64, attemptedAt time.Time) Result {
	return Result{
		ID:          id,
		StudentID:   studentID,
		QuizID:      quizID,
		Score:       score,
		Passed:      score >= PassThreshold,
		AttemptedAt: attemptedAt,
	}
}
