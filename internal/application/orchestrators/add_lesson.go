package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"campus/internal/domain/lesson"
)

// LessonStoreForAdd defines the store interface needed by lesson management.
type LessonStoreForAdd interface {
	GetByID(ctx context.Context, id string) (lesson.Lesson, error)
	Save(ctx context.Context, l lesson.Lesson) error
	Delete(ctx context.Context, id string) error
	CountByCourse(ctx context.Context, courseID string) (int, error)
}

// AddLessonInput carries input for adding a lesson to a course.
type AddLessonInput struct {
	CourseID  string
	Title     string
	Content   string // Markdown
	VideoFile string // stored media name, optional
	NotesFile string // stored media name, optional
	Order     int    // 0 appends after the existing lessons
}

// AddLessonDeps holds dependencies for lesson management.
type AddLessonDeps struct {
	LessonStore LessonStoreForAdd
	GenerateID  func() string
	Now         func() time.Time
}

// ExecuteAddLesson adds a lesson to a course.
// PRE: caller owns the course or is an admin
// POST: Lesson is persisted; order defaults to the end of the course
func ExecuteAddLesson(ctx context.Context, input AddLessonInput, deps AddLessonDeps) (lesson.Lesson, error) {
	order := input.Order
	if order <= 0 {
		count, err := deps.LessonStore.CountByCourse(ctx, input.CourseID)
		if err != nil {
			return lesson.Lesson{}, fmt.Errorf("count lessons: %w", err)
		}
		order = count + 1
	}

	l := lesson.Lesson{
		ID:        deps.GenerateID(),
		CourseID:  input.CourseID,
		Title:     input.Title,
		Content:   input.Content,
		VideoFile: input.VideoFile,
		NotesFile: input.NotesFile,
		Order:     order,
		CreatedAt: deps.Now(),
	}
	if err := l.Validate(); err != nil {
		return lesson.Lesson{}, err
	}
	if err := deps.LessonStore.Save(ctx, l); err != nil {
		return lesson.Lesson{}, fmt.Errorf("save lesson: %w", err)
	}

	slog.Info("catalog_event", "event", "lesson_added", "lesson_id", l.ID, "course_id", l.CourseID, "order", l.Order)
	return l, nil
}
