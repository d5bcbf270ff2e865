package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"campus/internal/domain/enrollment"
	"campus/internal/domain/lesson"
	"campus/internal/domain/notification"
)

// LessonStoreForComplete defines the lesson lookups needed by completion.
type LessonStoreForComplete interface {
	GetByID(ctx context.Context, id string) (lesson.Lesson, error)
	CountByCourse(ctx context.Context, courseID string) (int, error)
}

// CompletionStoreForComplete defines the completion writes needed.
type CompletionStoreForComplete interface {
	Save(ctx context.Context, c enrollment.LessonCompletion) error
	CountByStudentAndCourse(ctx context.Context, studentID, courseID string) (int, error)
}

// NotificationStoreForComplete records the course completion notice.
type NotificationStoreForComplete interface {
	Save(ctx context.Context, n notification.Notification) error
}

// CompleteLessonInput carries input for marking a lesson done.
type CompleteLessonInput struct {
	StudentID string
	LessonID  string
}

// CompleteLessonResult reports the recomputed progress.
type CompleteLessonResult struct {
	Enrollment      enrollment.Enrollment
	CourseCompleted bool
}

// CompleteLessonDeps holds dependencies for lesson completion.
type CompleteLessonDeps struct {
	LessonStore       LessonStoreForComplete
	CompletionStore   CompletionStoreForComplete
	EnrollmentStore   EnrollmentStoreForEnroll
	NotificationStore NotificationStoreForComplete
	GenerateID        func() string
	Now               func() time.Time
}

// ExecuteCompleteLesson marks a lesson done and recomputes the enrollment's
// progress. Marking the same lesson twice is a no-op. Reaching 100% completes
// the enrollment and notifies the student.
// PRE: the student is enrolled in the lesson's course
// POST: Progress reflects the completion count; status flips at 100%
func ExecuteCompleteLesson(ctx context.Context, input CompleteLessonInput, deps CompleteLessonDeps) (CompleteLessonResult, error) {
	l, err := deps.LessonStore.GetByID(ctx, input.LessonID)
	if err != nil {
		return CompleteLessonResult{}, fmt.Errorf("load lesson: %w", err)
	}

	e, err := deps.EnrollmentStore.GetByStudentAndCourse(ctx, input.StudentID, l.CourseID)
	if err != nil {
		return CompleteLessonResult{}, fmt.Errorf("load enrollment: %w", err)
	}

	now := deps.Now()
	completion := enrollment.LessonCompletion{
		ID:          deps.GenerateID(),
		StudentID:   input.StudentID,
		LessonID:    input.LessonID,
		CompletedAt: now,
	}
	if err := deps.CompletionStore.Save(ctx, completion); err != nil {
		return CompleteLessonResult{}, fmt.Errorf("save completion: %w", err)
	}

	total, err := deps.LessonStore.CountByCourse(ctx, l.CourseID)
	if err != nil {
		return CompleteLessonResult{}, fmt.Errorf("count lessons: %w", err)
	}
	done, err := deps.CompletionStore.CountByStudentAndCourse(ctx, input.StudentID, l.CourseID)
	if err != nil {
		return CompleteLessonResult{}, fmt.Errorf("count completions: %w", err)
	}

	wasCompleted := e.IsCompleted()
	e.UpdateProgress(done, total, now)
	if err := deps.EnrollmentStore.Save(ctx, e); err != nil {
		return CompleteLessonResult{}, fmt.Errorf("save enrollment: %w", err)
	}

	courseCompleted := e.IsCompleted() && !wasCompleted
	if courseCompleted && deps.NotificationStore != nil {
		n := notification.Notification{
			ID:        deps.GenerateID(),
			StudentID: input.StudentID,
			Message:   "Congratulations, you completed all lessons in the course.",
			CreatedAt: now,
		}
		if err := deps.NotificationStore.Save(ctx, n); err != nil {
			slog.Error("notification_save_failed", "error", err.Error(), "student_id", input.StudentID)
		}
	}

	slog.Info("enrollment_event", "event", "lesson_completed", "student_id", input.StudentID,
		"lesson_id", input.LessonID, "progress", e.Progress)

	return CompleteLessonResult{Enrollment: e, CourseCompleted: courseCompleted}, nil
}
