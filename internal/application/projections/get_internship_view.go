package projections

import (
	"context"

	domainInternship "campus/internal/domain/internship"
)

// GetInternshipViewQuery carries query parameters. StudentID is empty when
// the viewer is not an enrolled student.
type GetInternshipViewQuery struct {
	InternshipID string
	StudentID    string
}

// GetInternshipViewResult carries the query result.
type GetInternshipViewResult struct {
	Internship     domainInternship.Internship
	InstructorName string
	Materials      []domainInternship.Material
	Quizzes        []domainInternship.Quiz
	HasProject     bool
	Project        domainInternship.Project
	Enrolled       bool
	Enrollment     domainInternship.Enrollment
}

// GetInternshipViewDeps holds dependencies for GetInternshipView.
type GetInternshipViewDeps struct {
	InternshipStore InternshipStore
	MaterialStore   InternshipMaterialStore
	QuizStore       InternshipQuizStore
	ProjectStore    InternshipProjectStore
	EnrollmentStore InternshipEnrollmentStore
	AccountStore    AccountStore // optional: nil skips instructor name
}

// QueryGetInternshipView retrieves one internship with its materials,
// quizzes, and project brief, plus the viewing student's enrollment and
// submission state when StudentID is set.
// PRE: Valid internship ID
// POST: Enrollment is populated only when the student is enrolled
func QueryGetInternshipView(ctx context.Context, query GetInternshipViewQuery, deps GetInternshipViewDeps) (GetInternshipViewResult, error) {
	i, err := deps.InternshipStore.GetByID(ctx, query.InternshipID)
	if err != nil {
		return GetInternshipViewResult{}, err
	}

	result := GetInternshipViewResult{Internship: i}

	if deps.AccountStore != nil && i.InstructorID != "" {
		if a, err := deps.AccountStore.GetByID(ctx, i.InstructorID); err == nil {
			result.InstructorName = a.FullName
		}
	}

	materials, err := deps.MaterialStore.ListByInternship(ctx, query.InternshipID)
	if err != nil {
		return GetInternshipViewResult{}, err
	}
	result.Materials = materials

	quizzes, err := deps.QuizStore.ListByInternship(ctx, query.InternshipID)
	if err != nil {
		return GetInternshipViewResult{}, err
	}
	result.Quizzes = quizzes

	if p, err := deps.ProjectStore.GetByInternship(ctx, query.InternshipID); err == nil {
		result.HasProject = true
		result.Project = p
	}

	if query.StudentID != "" {
		if e, err := deps.EnrollmentStore.GetByStudentAndInternship(ctx, query.StudentID, query.InternshipID); err == nil {
			result.Enrolled = true
			result.Enrollment = e
		}
	}

	return result, nil
}
