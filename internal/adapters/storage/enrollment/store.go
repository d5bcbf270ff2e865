package enrollment

import (
	"context"

	domain "campus/internal/domain/enrollment"
)

// Store persists course Enrollment state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Enrollment, error)
	GetByStudentAndCourse(ctx context.Context, studentID, courseID string) (domain.Enrollment, error)
	Save(ctx context.Context, value domain.Enrollment) error
	Delete(ctx context.Context, id string) error
	ListByStudent(ctx context.Context, studentID string) ([]domain.Enrollment, error)
	ListByCourse(ctx context.Context, courseID string) ([]domain.Enrollment, error)
	ListAll(ctx context.Context, limit int) ([]domain.Enrollment, error)
	Count(ctx context.Context) (int, error)
}

// CompletionStore persists per-lesson completion marks.
type CompletionStore interface {
	Save(ctx context.Context, value domain.LessonCompletion) error
	HasCompleted(ctx context.Context, studentID, lessonID string) (bool, error)
	ListByStudentAndCourse(ctx context.Context, studentID, courseID string) ([]domain.LessonCompletion, error)
	CountByStudentAndCourse(ctx context.Context, studentID, courseID string) (int, error)
}
