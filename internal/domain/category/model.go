package category

import (
	"errors"
	"strings"
	"time"
)

// MaxNameLength caps the category name.
const MaxNameLength = 100

// ErrEmptyName is returned when a category has no name.
var ErrEmptyName = errors.New("category name cannot be empty")

// Category groups courses in the catalog. Names are unique.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Validate checks if the Category has valid data.
// PRE: Category struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if len(c.Name) > MaxNameLength {
		return errors.New("category name cannot exceed 100 characters")
	}
	return nil
}
