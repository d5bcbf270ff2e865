package projections

import (
	"context"

	domainEnrollment "campus/internal/domain/enrollment"
)

// GetEnrollmentsQuery carries query parameters. Limit caps the page size.
type GetEnrollmentsQuery struct {
	Limit int
}

// EnrollmentEntry is one admin-overview row with resolved display names.
type EnrollmentEntry struct {
	Enrollment   domainEnrollment.Enrollment
	StudentName  string
	StudentEmail string
	CourseTitle  string
}

// GetEnrollmentsResult carries the query result.
type GetEnrollmentsResult struct {
	Enrollments []EnrollmentEntry
	Total       int
}

// GetEnrollmentsDeps holds dependencies for GetEnrollments.
type GetEnrollmentsDeps struct {
	EnrollmentStore EnrollmentStore
	AccountStore    AccountStore
	CourseStore     CourseStore
}

// QueryGetEnrollments lists course enrollments across all students for the
// admin overview, newest first.
// POST: Every entry carries the student and course names for display
func QueryGetEnrollments(ctx context.Context, query GetEnrollmentsQuery, deps GetEnrollmentsDeps) (GetEnrollmentsResult, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 200
	}

	enrollments, err := deps.EnrollmentStore.ListAll(ctx, limit)
	if err != nil {
		return GetEnrollmentsResult{}, err
	}
	total, err := deps.EnrollmentStore.Count(ctx)
	if err != nil {
		return GetEnrollmentsResult{}, err
	}

	result := GetEnrollmentsResult{Total: total}
	courseTitles := make(map[string]string)
	for _, e := range enrollments {
		entry := EnrollmentEntry{Enrollment: e}
		if a, err := deps.AccountStore.GetByID(ctx, e.StudentID); err == nil {
			entry.StudentName = a.FullName
			entry.StudentEmail = a.Email
		}
		title, ok := courseTitles[e.CourseID]
		if !ok {
			if c, err := deps.CourseStore.GetByID(ctx, e.CourseID); err == nil {
				title = c.Title
			}
			courseTitles[e.CourseID] = title
		}
		entry.CourseTitle = title
		result.Enrollments = append(result.Enrollments, entry)
	}

	return result, nil
}
