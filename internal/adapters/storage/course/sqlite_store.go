package course

import (
	"context"
	"database/sql"
	"fmt"

	"campus/internal/adapters/storage"
	domain "campus/internal/domain/course"
)

const columns = "id, title, category_id, description, image_file, instructor_id, status, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new course store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanCourse(row interface{ Scan(...any) error }) (domain.Course, error) {
	var entity domain.Course
	var instructorID, createdAt sql.NullString
	err := row.Scan(
		&entity.ID,
		&entity.Title,
		&entity.CategoryID,
		&entity.Description,
		&entity.ImageFile,
		&instructorID,
		&entity.Status,
		&createdAt,
	)
	if instructorID.Valid {
		entity.InstructorID = instructorID.String
	}
	entity.CreatedAt = storage.ParseTime(createdAt)
	return entity, err
}

// GetByID retrieves a Course by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Course, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+columns+" FROM course WHERE id = ?", id)
	entity, err := scanCourse(row)
	if err == sql.ErrNoRows {
		return domain.Course{}, fmt.Errorf("course not found: %w", err)
	}
	return entity, err
}

// Save persists a Course to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Course) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := "INSERT INTO course (" + columns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?) " +
		"ON CONFLICT(id) DO UPDATE SET title=excluded.title, category_id=excluded.category_id, " +
		"description=excluded.description, image_file=excluded.image_file, " +
		"instructor_id=excluded.instructor_id, status=excluded.status"

	var instructorID any
	if entity.InstructorID != "" {
		instructorID = entity.InstructorID
	}

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.Title,
		entity.CategoryID,
		entity.Description,
		entity.ImageFile,
		instructorID,
		entity.Status,
		storage.FormatTime(entity.CreatedAt),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Course from the database. Lessons, quizzes, and
// enrollments under it cascade.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM course WHERE id = ?", id)
	return err
}

// listWhereClause builds the WHERE clause and args for List/Count queries.
func listWhereClause(filter ListFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any

	if filter.CategoryID != "" {
		where += " AND category_id = ?"
		args = append(args, filter.CategoryID)
	}
	if filter.InstructorID != "" {
		where += " AND instructor_id = ?"
		args = append(args, filter.InstructorID)
	}
	if filter.Status != "" {
		where += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		where += " AND (title LIKE ? OR description LIKE ?)"
		term := "%" + filter.Search + "%"
		args = append(args, term, term)
	}
	return where, args
}

// Count returns the total number of courses matching the filter.
// PRE: filter has valid parameters
// POST: Returns count >= 0
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := listWhereClause(filter)
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM course"+where, args...).Scan(&count)
	return count, err
}

// List retrieves a list of Courses based on the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities ordered by title
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Course, error) {
	where, args := listWhereClause(filter)
	query := "SELECT " + columns + " FROM course" + where + " ORDER BY title ASC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Course
	for rows.Next() {
		entity, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}
