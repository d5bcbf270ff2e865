package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"campus/internal/domain/internship"
	"campus/internal/domain/quiz"
)

// QuizStoreForTake defines the quiz lookup needed by course quiz attempts.
type QuizStoreForTake interface {
	GetByID(ctx context.Context, id string) (quiz.Quiz, error)
}

// ResultStoreForTake persists graded course quiz attempts.
type ResultStoreForTake interface {
	Save(ctx context.Context, r quiz.Result) error
}

// TakeQuizInput carries a student's submitted answers, keyed by question index.
type TakeQuizInput struct {
	StudentID string
	QuizID    string
	Answers   map[int]string
}

// TakeQuizDeps holds dependencies for course quiz attempts.
type TakeQuizDeps struct {
	QuizStore   QuizStoreForTake
	ResultStore ResultStoreForTake
	GenerateID  func() string
	Now         func() time.Time
}

// ExecuteTakeQuiz grades a course quiz attempt and persists the result.
// An empty quiz scores 0.
// PRE: the student can see the quiz's course
// POST: A Result row records the score and pass flag
func ExecuteTakeQuiz(ctx context.Context, input TakeQuizInput, deps TakeQuizDeps) (quiz.Result, error) {
	q, err := deps.QuizStore.GetByID(ctx, input.QuizID)
	if err != nil {
		return quiz.Result{}, fmt.Errorf("load quiz: %w", err)
	}

	questions, err := q.Questions()
	if err != nil {
		return quiz.Result{}, err
	}

	score := quiz.Score(questions, input.Answers)
	result := quiz.NewResult(deps.GenerateID(), input.StudentID, input.QuizID, score, deps.Now())
	if err := deps.ResultStore.Save(ctx, result); err != nil {
		return quiz.Result{}, fmt.Errorf("save result: %w", err)
	}

	slog.Info("quiz_event", "event", "quiz_taken", "student_id", input.StudentID,
		"quiz_id", input.QuizID, "score", score, "passed", result.Passed)
	return result, nil
}

// InternshipQuizStoreForTake defines the quiz lookup needed by internship
// quiz attempts.
type InternshipQuizStoreForTake interface {
	GetByID(ctx context.Context, id string) (internship.Quiz, error)
}

// TakeInternshipQuizDeps holds dependencies for internship quiz attempts.
type TakeInternshipQuizDeps struct {
	QuizStore InternshipQuizStoreForTake
}

// TakeInternshipQuizResult carries the informational score shown to the
// student. Internship quiz scores are never persisted and play no part in
// certification.
type TakeInternshipQuizResult struct {
	QuizTitle string
	Score     float64
}

// ExecuteTakeInternshipQuiz grades an internship quiz attempt for immediate
// display only.
// PRE: the student is enrolled in the quiz's internship
// POST: No state changes
func ExecuteTakeInternshipQuiz(ctx context.Context, input TakeQuizInput, deps TakeInternshipQuizDeps) (TakeInternshipQuizResult, error) {
	q, err := deps.QuizStore.GetByID(ctx, input.QuizID)
	if err != nil {
		return TakeInternshipQuizResult{}, fmt.Errorf("load internship quiz: %w", err)
	}

	questions, err := q.Questions()
	if err != nil {
		return TakeInternshipQuizResult{}, err
	}

	score := quiz.Score(questions, input.Answers)
	slog.Info("quiz_event", "event", "internship_quiz_taken", "student_id", input.StudentID,
		"quiz_id", input.QuizID, "score", score)
	return TakeInternshipQuizResult{QuizTitle: q.Title, Score: score}, nil
}
