package projections

import (
	"context"

	"campus/internal/adapters/storage/account"
	"campus/internal/adapters/storage/course"
	domainAccount "campus/internal/domain/account"
	domainCourse "campus/internal/domain/course"
	domainInternship "campus/internal/domain/internship"
)

// GetReportsResult carries the admin overview counts.
type GetReportsResult struct {
	StudentCount          int
	InstructorCount       int
	CourseCount           int
	ProposedCourseCount   int
	EnrollmentCount       int
	InternshipCount       int
	InternEnrollmentCount int
	PendingReviewCount    int
}

// GetReportsDeps holds dependencies for GetReports.
type GetReportsDeps struct {
	AccountStore              AccountStore
	CourseStore               CourseStore
	EnrollmentStore           EnrollmentStore
	InternshipStore           InternshipStore
	InternshipEnrollmentStore InternshipEnrollmentStore
}

// QueryGetReports assembles the admin dashboard counters. Count failures on
// individual stores leave that counter at zero rather than failing the page.
func QueryGetReports(ctx context.Context, deps GetReportsDeps) (GetReportsResult, error) {
	var result GetReportsResult

	if n, err := deps.AccountStore.Count(ctx, account.ListFilter{Role: domainAccount.RoleStudent}); err == nil {
		result.StudentCount = n
	}
	if n, err := deps.AccountStore.Count(ctx, account.ListFilter{Role: domainAccount.RoleInstructor}); err == nil {
		result.InstructorCount = n
	}
	if n, err := deps.CourseStore.Count(ctx, course.ListFilter{}); err == nil {
		result.CourseCount = n
	}
	if n, err := deps.CourseStore.Count(ctx, course.ListFilter{Status: domainCourse.StatusProposed}); err == nil {
		result.ProposedCourseCount = n
	}
	if n, err := deps.EnrollmentStore.Count(ctx); err == nil {
		result.EnrollmentCount = n
	}
	if n, err := deps.InternshipStore.Count(ctx); err == nil {
		result.InternshipCount = n
	}
	if n, err := deps.InternshipEnrollmentStore.Count(ctx); err == nil {
		result.InternEnrollmentCount = n
	}
	if queue, err := deps.InternshipEnrollmentStore.ListByProjectStatus(ctx, domainInternship.ProjectSubmitted); err == nil {
		result.PendingReviewCount = len(queue)
	}

	return result, nil
}
