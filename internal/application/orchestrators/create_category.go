package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"campus/internal/domain/category"
)

// CategoryStoreForCreate defines the store interface needed by category management.
type CategoryStoreForCreate interface {
	GetByName(ctx context.Context, name string) (category.Category, error)
	Save(ctx context.Context, c category.Category) error
	Delete(ctx context.Context, id string) error
}

// CreateCategoryInput carries input for category creation.
type CreateCategoryInput struct {
	Name string
}

// CreateCategoryDeps holds dependencies for category creation.
type CreateCategoryDeps struct {
	CategoryStore CategoryStoreForCreate
	GenerateID    func() string
	Now           func() time.Time
}

// ErrCategoryExists is returned when a category with the same name exists.
var ErrCategoryExists = errors.New("a category with that name already exists")

// ExecuteCreateCategory creates a new catalog category.
// PRE: caller is an admin
// POST: Category is persisted with a unique name
func ExecuteCreateCategory(ctx context.Context, input CreateCategoryInput, deps CreateCategoryDeps) (category.Category, error) {
	if _, err := deps.CategoryStore.GetByName(ctx, input.Name); err == nil {
		return category.Category{}, ErrCategoryExists
	}

	c := category.Category{
		ID:        deps.GenerateID(),
		Name:      input.Name,
		CreatedAt: deps.Now(),
	}
	if err := c.Validate(); err != nil {
		return category.Category{}, err
	}
	if err := deps.CategoryStore.Save(ctx, c); err != nil {
		return category.Category{}, fmt.Errorf("save category: %w", err)
	}

	slog.Info("catalog_event", "event", "category_created", "category_id", c.ID, "name", c.Name)
	return c, nil
}

// ExecuteDeleteCategory removes a category. Courses under it cascade away.
// PRE: caller is an admin; id references an existing category
// POST: Category and its courses are removed
func ExecuteDeleteCategory(ctx context.Context, id string, deps CreateCategoryDeps) error {
	if err := deps.CategoryStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	slog.Info("catalog_event", "event", "category_deleted", "category_id", id)
	return nil
}
