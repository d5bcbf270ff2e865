package projections

import (
	"context"

	domainInternship "campus/internal/domain/internship"
)

// GetSubmissionsQuery carries query parameters. ProjectStatus defaults to
// Submitted, the admin review queue.
type GetSubmissionsQuery struct {
	ProjectStatus string
}

// SubmissionEntry is one review-queue row with resolved display names.
type SubmissionEntry struct {
	Enrollment      domainInternship.Enrollment
	StudentName     string
	StudentEmail    string
	InternshipTitle string
}

// GetSubmissionsResult carries the query result.
type GetSubmissionsResult struct {
	Submissions []SubmissionEntry
}

// GetSubmissionsDeps holds dependencies for GetSubmissions.
type GetSubmissionsDeps struct {
	EnrollmentStore InternshipEnrollmentStore
	AccountStore    AccountStore
	InternshipStore InternshipStore
}

// QueryGetSubmissions lists internship enrollments by project status for the
// admin review screen. With the default status this is the queue of
// submissions awaiting a decision.
// POST: Every entry carries the student and internship names for display
func QueryGetSubmissions(ctx context.Context, query GetSubmissionsQuery, deps GetSubmissionsDeps) (GetSubmissionsResult, error) {
	status := query.ProjectStatus
	if status == "" {
		status = domainInternship.ProjectSubmitted
	}

	enrollments, err := deps.EnrollmentStore.ListByProjectStatus(ctx, status)
	if err != nil {
		return GetSubmissionsResult{}, err
	}

	var result GetSubmissionsResult
	internshipTitles := make(map[string]string)
	for _, e := range enrollments {
		entry := SubmissionEntry{Enrollment: e}
		if a, err := deps.AccountStore.GetByID(ctx, e.StudentID); err == nil {
			entry.StudentName = a.FullName
			entry.StudentEmail = a.Email
		}
		title, ok := internshipTitles[e.InternshipID]
		if !ok {
			if i, err := deps.InternshipStore.GetByID(ctx, e.InternshipID); err == nil {
				title = i.Title
			}
			internshipTitles[e.InternshipID] = title
		}
		entry.InternshipTitle = title
		result.Submissions = append(result.Submissions, entry)
	}

	return result, nil
}
