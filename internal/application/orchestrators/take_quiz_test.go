package orchestrators

import (
	"context"
	"testing"

	"campus/internal/domain/internship"
	"campus/internal/domain/quiz"
)

const twoQuestions = `[
	{"text": "2+2?", "options": ["3", "4"], "correct": "4"},
	{"text": "Capital of France?", "options": ["Paris", "Rome"], "correct": "Paris"}
]`

func TestExecuteTakeQuiz_PersistsResult(t *testing.T) {
	quizzes := &mockQuizStore{quizzes: map[string]quiz.Quiz{
		"q1": {ID: "q1", CourseID: "c1", Title: "Basics", QuestionsData: twoQuestions},
	}}
	results := &mockResultStore{}

	result, err := ExecuteTakeQuiz(context.Background(), TakeQuizInput{
		StudentID: "stu-1",
		QuizID:    "q1",
		Answers:   map[int]string{0: "4", 1: "Rome"},
	}, TakeQuizDeps{
		QuizStore:   quizzes,
		ResultStore: results,
		GenerateID:  seqID(),
		Now:         fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 50 {
		t.Errorf("score = %v, want 50", result.Score)
	}
	if !result.Passed {
		t.Error("50%% should pass at the default threshold")
	}
	if len(results.saved) != 1 {
		t.Fatalf("results saved = %d, want 1", len(results.saved))
	}
}

func TestExecuteTakeQuiz_EmptyQuizScoresZero(t *testing.T) {
	quizzes := &mockQuizStore{quizzes: map[string]quiz.Quiz{
		"q1": {ID: "q1", CourseID: "c1", Title: "Empty"},
	}}
	results := &mockResultStore{}

	result, err := ExecuteTakeQuiz(context.Background(), TakeQuizInput{
		StudentID: "stu-1",
		QuizID:    "q1",
		Answers:   map[int]string{0: "anything"},
	}, TakeQuizDeps{
		QuizStore:   quizzes,
		ResultStore: results,
		GenerateID:  seqID(),
		Now:         fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 0 {
		t.Errorf("score = %v, want 0 for empty quiz", result.Score)
	}
	if result.Passed {
		t.Error("empty quiz should not pass")
	}
}

func TestExecuteTakeInternshipQuiz_NothingPersisted(t *testing.T) {
	quizzes := &mockInternshipQuizStore{quizzes: map[string]internship.Quiz{
		"iq1": {ID: "iq1", InternshipID: "int-1", Title: "Checkpoint", QuestionsData: twoQuestions},
	}}

	result, err := ExecuteTakeInternshipQuiz(context.Background(), TakeQuizInput{
		StudentID: "stu-1",
		QuizID:    "iq1",
		Answers:   map[int]string{0: "4", 1: "Paris"},
	}, TakeInternshipQuizDeps{QuizStore: quizzes})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 100 {
		t.Errorf("score = %v, want 100", result.Score)
	}
	if result.QuizTitle != "Checkpoint" {
		t.Errorf("title = %q", result.QuizTitle)
	}
}
