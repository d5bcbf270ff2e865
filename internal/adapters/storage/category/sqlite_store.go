package category

import (
	"context"
	"database/sql"
	"fmt"

	"campus/internal/adapters/storage"
	domain "campus/internal/domain/category"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new category store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanCategory(row interface{ Scan(...any) error }) (domain.Category, error) {
	var entity domain.Category
	var createdAt sql.NullString
	err := row.Scan(&entity.ID, &entity.Name, &createdAt)
	entity.CreatedAt = storage.ParseTime(createdAt)
	return entity, err
}

// GetByID retrieves a Category by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Category, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, created_at FROM category WHERE id = ?", id)
	entity, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return domain.Category{}, fmt.Errorf("category not found: %w", err)
	}
	return entity, err
}

// GetByName retrieves a Category by its unique name.
// PRE: name is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByName(ctx context.Context, name string) (domain.Category, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, created_at FROM category WHERE name = ?", name)
	entity, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return domain.Category{}, fmt.Errorf("category not found: %w", err)
	}
	return entity, err
}

// Save persists a Category to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Category) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := "INSERT INTO category (id, name, created_at) VALUES (?, ?, ?) " +
		"ON CONFLICT(id) DO UPDATE SET name=excluded.name"

	_, err = tx.ExecContext(ctx, query, entity.ID, entity.Name, storage.FormatTime(entity.CreatedAt))
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Category from the database. Courses under it cascade.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM category WHERE id = ?", id)
	return err
}

// List retrieves all categories ordered by name.
// POST: Returns all entities
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, created_at FROM category ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Category
	for rows.Next() {
		entity, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}
