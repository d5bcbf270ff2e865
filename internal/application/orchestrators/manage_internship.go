package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"campus/internal/domain/internship"
)

// InternshipStoreForManage defines the store interface needed by internship
// management.
type InternshipStoreForManage interface {
	GetByID(ctx context.Context, id string) (internship.Internship, error)
	Save(ctx context.Context, i internship.Internship) error
	Delete(ctx context.Context, id string) error
}

// MaterialStoreForManage persists internship materials.
type MaterialStoreForManage interface {
	Save(ctx context.Context, m internship.Material) error
	Delete(ctx context.Context, id string) error
}

// InternshipQuizStoreForManage persists internship quizzes.
type InternshipQuizStoreForManage interface {
	Save(ctx context.Context, q internship.Quiz) error
	Delete(ctx context.Context, id string) error
}

// ProjectStoreForManage persists internship project definitions.
type ProjectStoreForManage interface {
	GetByInternship(ctx context.Context, internshipID string) (internship.Project, error)
	Save(ctx context.Context, p internship.Project) error
}

// ManageInternshipDeps holds dependencies for internship management.
type ManageInternshipDeps struct {
	InternshipStore InternshipStoreForManage
	MaterialStore   MaterialStoreForManage
	QuizStore       InternshipQuizStoreForManage
	ProjectStore    ProjectStoreForManage
	GenerateID      func() string
	Now             func() time.Time
}

// CreateInternshipInput carries input for internship creation.
type CreateInternshipInput struct {
	Title        string
	Description  string
	Duration     string
	InstructorID string
}

// ExecuteCreateInternship creates an internship program.
// PRE: caller is an instructor or admin
// POST: Internship is persisted
func ExecuteCreateInternship(ctx context.Context, input CreateInternshipInput, deps ManageInternshipDeps) (internship.Internship, error) {
	i := internship.Internship{
		ID:           deps.GenerateID(),
		Title:        input.Title,
		Description:  input.Description,
		Duration:     input.Duration,
		InstructorID: input.InstructorID,
		CreatedAt:    deps.Now(),
	}
	if err := i.Validate(); err != nil {
		return internship.Internship{}, err
	}
	if err := deps.InternshipStore.Save(ctx, i); err != nil {
		return internship.Internship{}, fmt.Errorf("save internship: %w", err)
	}

	slog.Info("internship_event", "event", "internship_created", "internship_id", i.ID, "instructor", input.InstructorID)
	return i, nil
}

// UpdateInternshipInput carries the editable internship fields. Empty fields
// are left unchanged.
type UpdateInternshipInput struct {
	InternshipID string
	Title        string
	Description  string
	Duration     string
}

// ExecuteUpdateInternship updates an internship's editable fields.
// PRE: caller owns the internship or is an admin
// POST: Internship is persisted with the new fields
func ExecuteUpdateInternship(ctx context.Context, input UpdateInternshipInput, deps ManageInternshipDeps) (internship.Internship, error) {
	i, err := deps.InternshipStore.GetByID(ctx, input.InternshipID)
	if err != nil {
		return internship.Internship{}, fmt.Errorf("load internship: %w", err)
	}

	if input.Title != "" {
		i.Title = input.Title
	}
	if input.Description != "" {
		i.Description = input.Description
	}
	if input.Duration != "" {
		i.Duration = input.Duration
	}
	if err := i.Validate(); err != nil {
		return internship.Internship{}, err
	}
	if err := deps.InternshipStore.Save(ctx, i); err != nil {
		return internship.Internship{}, fmt.Errorf("save internship: %w", err)
	}

	slog.Info("internship_event", "event", "internship_updated", "internship_id", i.ID)
	return i, nil
}

// AddMaterialInput carries input for attaching a learning resource.
type AddMaterialInput struct {
	InternshipID string
	Title        string
	ResourceType string // pdf or video
	FilePath     string // stored media name
}

// ExecuteAddMaterial attaches a learning resource to an internship.
// PRE: the upload referenced by FilePath is already saved
// POST: Material is persisted
func ExecuteAddMaterial(ctx context.Context, input AddMaterialInput, deps ManageInternshipDeps) (internship.Material, error) {
	m := internship.Material{
		ID:           deps.GenerateID(),
		InternshipID: input.InternshipID,
		Title:        input.Title,
		ResourceType: input.ResourceType,
		FilePath:     input.FilePath,
		CreatedAt:    deps.Now(),
	}
	if err := m.Validate(); err != nil {
		return internship.Material{}, err
	}
	if err := deps.MaterialStore.Save(ctx, m); err != nil {
		return internship.Material{}, fmt.Errorf("save material: %w", err)
	}

	slog.Info("internship_event", "event", "material_added", "material_id", m.ID, "internship_id", m.InternshipID)
	return m, nil
}

// AddInternshipQuizInput carries input for attaching a quiz.
type AddInternshipQuizInput struct {
	InternshipID  string
	Title         string
	QuestionsData string // JSON array of {text, options, correct}
}

// ExecuteAddInternshipQuiz attaches a quiz to an internship. The question
// payload is validated up front.
// PRE: caller owns the internship or is an admin
// POST: Quiz is persisted with a parseable question list
func ExecuteAddInternshipQuiz(ctx context.Context, input AddInternshipQuizInput, deps ManageInternshipDeps) (internship.Quiz, error) {
	q := internship.Quiz{
		ID:            deps.GenerateID(),
		InternshipID:  input.InternshipID,
		Title:         input.Title,
		QuestionsData: input.QuestionsData,
		CreatedAt:     deps.Now(),
	}
	if err := q.Validate(); err != nil {
		return internship.Quiz{}, err
	}
	if err := deps.QuizStore.Save(ctx, q); err != nil {
		return internship.Quiz{}, fmt.Errorf("save internship quiz: %w", err)
	}

	slog.Info("internship_event", "event", "quiz_added", "quiz_id", q.ID, "internship_id", q.InternshipID)
	return q, nil
}

// SetProjectInput carries the deliverable definition.
type SetProjectInput struct {
	InternshipID string
	Title        string
	Description  string
}

// ExecuteSetProject sets or replaces an internship's project definition.
// Each internship holds at most one; setting it again overwrites the title
// and description.
// PRE: caller owns the internship or is an admin
// POST: The internship has exactly one project definition
func ExecuteSetProject(ctx context.Context, input SetProjectInput, deps ManageInternshipDeps) (internship.Project, error) {
	p := internship.Project{
		ID:           deps.GenerateID(),
		InternshipID: input.InternshipID,
		Title:        input.Title,
		Description:  input.Description,
		CreatedAt:    deps.Now(),
	}
	if existing, err := deps.ProjectStore.GetByInternship(ctx, input.InternshipID); err == nil {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	}
	if err := p.Validate(); err != nil {
		return internship.Project{}, err
	}
	if err := deps.ProjectStore.Save(ctx, p); err != nil {
		return internship.Project{}, fmt.Errorf("save project: %w", err)
	}

	slog.Info("internship_event", "event", "project_set", "internship_id", p.InternshipID)
	return p, nil
}
