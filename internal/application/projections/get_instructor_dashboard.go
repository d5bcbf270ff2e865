package projections

import (
	"context"

	"campus/internal/adapters/storage/course"
	"campus/internal/adapters/storage/internship"
	domainCourse "campus/internal/domain/course"
	domainInternship "campus/internal/domain/internship"
)

// GetInstructorDashboardQuery carries query parameters.
type GetInstructorDashboardQuery struct {
	InstructorID string
}

// InstructorCourse pairs an owned course with its audience size.
type InstructorCourse struct {
	Course        domainCourse.Course
	EnrolledCount int
	LessonCount   int
}

// GetInstructorDashboardResult carries the query result.
type GetInstructorDashboardResult struct {
	Courses       []InstructorCourse
	Internships   []domainInternship.Internship
	ProposedCount int
}

// GetInstructorDashboardDeps holds dependencies for GetInstructorDashboard.
type GetInstructorDashboardDeps struct {
	CourseStore     CourseStore
	LessonStore     LessonStore
	EnrollmentStore EnrollmentStore
	InternshipStore InternshipStore
}

// QueryGetInstructorDashboard lists the instructor's own courses and
// internships. ProposedCount tells the instructor how many of their
// proposals still await an admin decision.
// PRE: Valid instructor ID
func QueryGetInstructorDashboard(ctx context.Context, query GetInstructorDashboardQuery, deps GetInstructorDashboardDeps) (GetInstructorDashboardResult, error) {
	var result GetInstructorDashboardResult

	courses, err := deps.CourseStore.List(ctx, course.ListFilter{
		Limit:        200,
		InstructorID: query.InstructorID,
	})
	if err != nil {
		return GetInstructorDashboardResult{}, err
	}
	for _, c := range courses {
		entry := InstructorCourse{Course: c}
		if enrolled, err := deps.EnrollmentStore.ListByCourse(ctx, c.ID); err == nil {
			entry.EnrolledCount = len(enrolled)
		}
		if count, err := deps.LessonStore.CountByCourse(ctx, c.ID); err == nil {
			entry.LessonCount = count
		}
		if c.Status == domainCourse.StatusProposed {
			result.ProposedCount++
		}
		result.Courses = append(result.Courses, entry)
	}

	internships, err := deps.InternshipStore.List(ctx, internship.ListFilter{
		Limit:        200,
		InstructorID: query.InstructorID,
	})
	if err != nil {
		return GetInstructorDashboardResult{}, err
	}
	result.Internships = internships

	return result, nil
}
