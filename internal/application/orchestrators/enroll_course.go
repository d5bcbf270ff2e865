package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"campus/internal/domain/course"
	"campus/internal/domain/enrollment"
)

// EnrollmentStoreForEnroll defines the store interface needed by course enrollment.
type EnrollmentStoreForEnroll interface {
	GetByStudentAndCourse(ctx context.Context, studentID, courseID string) (enrollment.Enrollment, error)
	Save(ctx context.Context, e enrollment.Enrollment) error
}

// CourseStoreForEnroll defines the course lookup needed by enrollment.
type CourseStoreForEnroll interface {
	GetByID(ctx context.Context, id string) (course.Course, error)
}

// EnrollCourseInput carries input for course enrollment.
type EnrollCourseInput struct {
	StudentID string
	CourseID  string
}

// EnrollCourseResult reports the enrollment and whether it already existed.
type EnrollCourseResult struct {
	Enrollment      enrollment.Enrollment
	AlreadyEnrolled bool
}

// EnrollCourseDeps holds dependencies for course enrollment.
type EnrollCourseDeps struct {
	EnrollmentStore EnrollmentStoreForEnroll
	CourseStore     CourseStoreForEnroll
	GenerateID      func() string
	Now             func() time.Time
}

// ErrCourseNotApproved is returned when a student enrolls in a course that
// is not visible in the catalog.
var ErrCourseNotApproved = errors.New("course is not open for enrollment")

// ExecuteEnrollCourse enrolls a student in an approved course. Enrolling
// twice is not an error; the existing enrollment is returned with
// AlreadyEnrolled set so the caller can inform rather than fail.
// PRE: caller is a student
// POST: Exactly one enrollment exists for the (student, course) pair
func ExecuteEnrollCourse(ctx context.Context, input EnrollCourseInput, deps EnrollCourseDeps) (EnrollCourseResult, error) {
	c, err := deps.CourseStore.GetByID(ctx, input.CourseID)
	if err != nil {
		return EnrollCourseResult{}, fmt.Errorf("load course: %w", err)
	}
	if !c.IsApproved() {
		return EnrollCourseResult{}, ErrCourseNotApproved
	}

	if existing, err := deps.EnrollmentStore.GetByStudentAndCourse(ctx, input.StudentID, input.CourseID); err == nil {
		slog.Info("enrollment_event", "event", "course_enroll_duplicate", "student_id", input.StudentID, "course_id", input.CourseID)
		return EnrollCourseResult{Enrollment: existing, AlreadyEnrolled: true}, nil
	}

	e := enrollment.Enrollment{
		ID:        deps.GenerateID(),
		StudentID: input.StudentID,
		CourseID:  input.CourseID,
		Status:    enrollment.StatusActive,
		CreatedAt: deps.Now(),
	}
	if err := e.Validate(); err != nil {
		return EnrollCourseResult{}, err
	}
	if err := deps.EnrollmentStore.Save(ctx, e); err != nil {
		return EnrollCourseResult{}, fmt.Errorf("save enrollment: %w", err)
	}

	slog.Info("enrollment_event", "event", "course_enrolled", "student_id", input.StudentID, "course_id", input.CourseID)
	return EnrollCourseResult{Enrollment: e}, nil
}
