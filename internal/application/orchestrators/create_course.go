package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"campus/internal/domain/account"
	"campus/internal/domain/course"
)

// CourseStoreForCreate defines the store interface needed by course creation.
type CourseStoreForCreate interface {
	GetByID(ctx context.Context, id string) (course.Course, error)
	Save(ctx context.Context, c course.Course) error
	Delete(ctx context.Context, id string) error
}

// CreateCourseInput carries input for course creation.
type CreateCourseInput struct {
	Title       string
	CategoryID  string
	Description string
	ImageFile   string // stored media name, empty for the default image
	CreatorID   string
	CreatorRole string
}

// CreateCourseDeps holds dependencies for course creation.
type CreateCourseDeps struct {
	CourseStore CourseStoreForCreate
	GenerateID  func() string
	Now         func() time.Time
}

// ExecuteCreateCourse creates a course. Instructor proposals start in the
// Proposed state and wait for an admin decision; admin-created courses are
// approved immediately.
// PRE: caller is an instructor or admin
// POST: Course is persisted with the role-appropriate status
func ExecuteCreateCourse(ctx context.Context, input CreateCourseInput, deps CreateCourseDeps) (course.Course, error) {
	status := course.StatusProposed
	if input.CreatorRole == account.RoleAdmin {
		status = course.StatusApproved
	}

	image := input.ImageFile
	if image == "" {
		image = course.DefaultImage
	}

	c := course.Course{
		ID:           deps.GenerateID(),
		Title:        input.Title,
		CategoryID:   input.CategoryID,
		Description:  input.Description,
		ImageFile:    image,
		InstructorID: input.CreatorID,
		Status:       status,
		CreatedAt:    deps.Now(),
	}
	if err := c.Validate(); err != nil {
		return course.Course{}, err
	}
	if err := deps.CourseStore.Save(ctx, c); err != nil {
		return course.Course{}, fmt.Errorf("save course: %w", err)
	}

	slog.Info("catalog_event", "event", "course_created", "course_id", c.ID, "status", c.Status, "creator", input.CreatorID)
	return c, nil
}

// ExecuteUpdateCourse updates a course's editable fields.
// PRE: caller owns the course or is an admin
// POST: Course is persisted with the new fields
func ExecuteUpdateCourse(ctx context.Context, input UpdateCourseInput, deps CreateCourseDeps) (course.Course, error) {
	c, err := deps.CourseStore.GetByID(ctx, input.CourseID)
	if err != nil {
		return course.Course{}, fmt.Errorf("load course: %w", err)
	}

	if input.Title != "" {
		c.Title = input.Title
	}
	if input.CategoryID != "" {
		c.CategoryID = input.CategoryID
	}
	if input.Description != "" {
		c.Description = input.Description
	}
	if input.ImageFile != "" {
		c.ImageFile = input.ImageFile
	}
	if err := c.Validate(); err != nil {
		return course.Course{}, err
	}
	if err := deps.CourseStore.Save(ctx, c); err != nil {
		return course.Course{}, fmt.Errorf("save course: %w", err)
	}

	slog.Info("catalog_event", "event", "course_updated", "course_id", c.ID)
	return c, nil
}

// UpdateCourseInput carries the editable course fields. Empty fields are
// left unchanged.
type UpdateCourseInput struct {
	CourseID    string
	Title       string
	CategoryID  string
	Description string
	ImageFile   string
}
