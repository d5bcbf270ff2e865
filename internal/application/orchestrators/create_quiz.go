package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"campus/internal/domain/quiz"
)

// QuizStoreForCreate defines the store interface needed by quiz creation.
type QuizStoreForCreate interface {
	Save(ctx context.Context, q quiz.Quiz) error
}

// CreateQuizInput carries input for creating a course quiz.
type CreateQuizInput struct {
	CourseID      string
	Title         string
	QuestionsData string // JSON array of {text, options, correct}
}

// CreateQuizDeps holds dependencies for quiz creation.
type CreateQuizDeps struct {
	QuizStore  QuizStoreForCreate
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteCreateQuiz creates a quiz on a course. The question payload is
// validated up front so scoring never sees malformed data.
// PRE: caller owns the course or is an admin
// POST: Quiz is persisted with a parseable question list
func ExecuteCreateQuiz(ctx context.Context, input CreateQuizInput, deps CreateQuizDeps) (quiz.Quiz, error) {
	q := quiz.Quiz{
		ID:            deps.GenerateID(),
		CourseID:      input.CourseID,
		Title:         input.Title,
		QuestionsData: input.QuestionsData,
		CreatedAt:     deps.Now(),
	}
	if err := q.Validate(); err != nil {
		return quiz.Quiz{}, err
	}
	if err := deps.QuizStore.Save(ctx, q); err != nil {
		return quiz.Quiz{}, fmt.Errorf("save quiz: %w", err)
	}

	slog.Info("catalog_event", "event", "quiz_created", "quiz_id", q.ID, "course_id", q.CourseID)
	return q, nil
}
