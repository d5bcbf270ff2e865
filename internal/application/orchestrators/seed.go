package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"campus/internal/domain/account"
	"campus/internal/domain/category"
)

// CategoryStoreForSeed defines the store interface needed by seeding.
type CategoryStoreForSeed interface {
	GetByName(ctx context.Context, name string) (category.Category, error)
	Save(ctx context.Context, c category.Category) error
}

// SeedInput carries bootstrap configuration.
type SeedInput struct {
	AdminUsername string
	AdminEmail    string
	AdminPassword string
	Categories    []string
}

// SeedDeps holds dependencies for seeding.
type SeedDeps struct {
	AccountStore  AccountStoreForRegister
	CategoryStore CategoryStoreForSeed
	GenerateID    func() string
	Now           func() time.Time
}

// DefaultCategories are created on first boot so the catalog is usable
// before an admin curates it.
var DefaultCategories = []string{
	"Programming",
	"Data Science",
	"Design",
	"Business",
}

// ExecuteSeed ensures the admin account and the default categories exist.
// Running it on every boot is safe; existing rows are left alone.
// PRE: AdminUsername and AdminPassword are non-empty
// POST: Admin account and all named categories exist
func ExecuteSeed(ctx context.Context, input SeedInput, deps SeedDeps) error {
	if _, err := deps.AccountStore.GetByUsername(ctx, input.AdminUsername); err != nil {
		admin := account.Account{
			ID:        deps.GenerateID(),
			Username:  input.AdminUsername,
			Email:     input.AdminEmail,
			FullName:  "Administrator",
			Role:      account.RoleAdmin,
			CreatedAt: deps.Now(),
		}
		if err := admin.Validate(); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		if err := admin.SetPassword(input.AdminPassword); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		if err := deps.AccountStore.Save(ctx, admin); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		slog.Info("seed_event", "event", "admin_created", "username", input.AdminUsername)
	}

	for _, name := range input.Categories {
		if _, err := deps.CategoryStore.GetByName(ctx, name); err == nil {
			continue
		}
		c := category.Category{
			ID:        deps.GenerateID(),
			Name:      name,
			CreatedAt: deps.Now(),
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
		if err := deps.CategoryStore.Save(ctx, c); err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
		slog.Info("seed_event", "event", "category_created", "name", name)
	}

	return nil
}
