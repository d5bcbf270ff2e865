package projections

import (
	"context"

	domainEnrollment "campus/internal/domain/enrollment"
	domainInternship "campus/internal/domain/internship"
	domainNotification "campus/internal/domain/notification"
	domainQuiz "campus/internal/domain/quiz"
)

// GetStudentDashboardQuery carries query parameters.
type GetStudentDashboardQuery struct {
	StudentID string
}

// DashboardEnrollment pairs a course enrollment with its course title.
type DashboardEnrollment struct {
	Enrollment  domainEnrollment.Enrollment
	CourseTitle string
}

// DashboardInternship pairs an internship enrollment with its internship title.
type DashboardInternship struct {
	Enrollment      domainInternship.Enrollment
	InternshipTitle string
}

// GetStudentDashboardResult carries the query result.
type GetStudentDashboardResult struct {
	Enrollments   []DashboardEnrollment
	Internships   []DashboardInternship
	QuizResults   []domainQuiz.Result
	Notifications []domainNotification.Notification
	UnreadCount   int
}

// GetStudentDashboardDeps holds dependencies for GetStudentDashboard.
type GetStudentDashboardDeps struct {
	EnrollmentStore           EnrollmentStore
	CourseStore               CourseStore
	InternshipEnrollmentStore InternshipEnrollmentStore
	InternshipStore           InternshipStore
	QuizResultStore           QuizResultStore
	NotificationStore         NotificationStore
}

// QueryGetStudentDashboard assembles the student landing page: current
// enrollments, internship workflow state, quiz history, and unread notices.
// PRE: Valid student ID
func QueryGetStudentDashboard(ctx context.Context, query GetStudentDashboardQuery, deps GetStudentDashboardDeps) (GetStudentDashboardResult, error) {
	var result GetStudentDashboardResult

	enrollments, err := deps.EnrollmentStore.ListByStudent(ctx, query.StudentID)
	if err != nil {
		return GetStudentDashboardResult{}, err
	}
	for _, e := range enrollments {
		entry := DashboardEnrollment{Enrollment: e}
		if c, err := deps.CourseStore.GetByID(ctx, e.CourseID); err == nil {
			entry.CourseTitle = c.Title
		}
		result.Enrollments = append(result.Enrollments, entry)
	}

	internEnrollments, err := deps.InternshipEnrollmentStore.ListByStudent(ctx, query.StudentID)
	if err != nil {
		return GetStudentDashboardResult{}, err
	}
	for _, e := range internEnrollments {
		entry := DashboardInternship{Enrollment: e}
		if i, err := deps.InternshipStore.GetByID(ctx, e.InternshipID); err == nil {
			entry.InternshipTitle = i.Title
		}
		result.Internships = append(result.Internships, entry)
	}

	if results, err := deps.QuizResultStore.ListByStudent(ctx, query.StudentID); err == nil {
		result.QuizResults = results
	}
	if notices, err := deps.NotificationStore.ListByStudent(ctx, query.StudentID, false); err == nil {
		result.Notifications = notices
	}
	if unread, err := deps.NotificationStore.CountUnread(ctx, query.StudentID); err == nil {
		result.UnreadCount = unread
	}

	return result, nil
}
