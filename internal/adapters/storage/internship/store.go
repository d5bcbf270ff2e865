package internship

import (
	"context"

	domain "campus/internal/domain/internship"
)

// Store persists Internship state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Internship, error)
	Save(ctx context.Context, value domain.Internship) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Internship, error)
	Count(ctx context.Context) (int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit        int
	Offset       int
	InstructorID string
	Search       string
}

// MaterialStore persists internship learning materials.
type MaterialStore interface {
	GetByID(ctx context.Context, id string) (domain.Material, error)
	Save(ctx context.Context, value domain.Material) error
	Delete(ctx context.Context, id string) error
	ListByInternship(ctx context.Context, internshipID string) ([]domain.Material, error)
}

// QuizStore persists internship quizzes.
type QuizStore interface {
	GetByID(ctx context.Context, id string) (domain.Quiz, error)
	Save(ctx context.Context, value domain.Quiz) error
	Delete(ctx context.Context, id string) error
	ListByInternship(ctx context.Context, internshipID string) ([]domain.Quiz, error)
}

// ProjectStore persists internship project definitions. Each internship has
// at most one project.
type ProjectStore interface {
	GetByInternship(ctx context.Context, internshipID string) (domain.Project, error)
	Save(ctx context.Context, value domain.Project) error
	Delete(ctx context.Context, id string) error
}

// EnrollmentStore persists internship enrollments and their project
// submission state.
type EnrollmentStore interface {
	GetByID(ctx context.Context, id string) (domain.Enrollment, error)
	GetByStudentAndInternship(ctx context.Context, studentID, internshipID string) (domain.Enrollment, error)
	GetByCertificateID(ctx context.Context, certificateID string) (domain.Enrollment, error)
	Save(ctx context.Context, value domain.Enrollment) error
	Delete(ctx context.Context, id string) error
	ListByStudent(ctx context.Context, studentID string) ([]domain.Enrollment, error)
	ListByInternship(ctx context.Context, internshipID string) ([]domain.Enrollment, error)
	ListByProjectStatus(ctx context.Context, projectStatus string) ([]domain.Enrollment, error)
	Count(ctx context.Context) (int, error)
}
