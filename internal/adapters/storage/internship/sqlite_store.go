package internship

import (
	"context"
	"database/sql"
	"fmt"

	"campus/internal/adapters/storage"
	domain "campus/internal/domain/internship"
)

const columns = "id, title, description, duration, instructor_id, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new internship store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanInternship(row interface{ Scan(...any) error }) (domain.Internship, error) {
	var entity domain.Internship
	var instructorID, createdAt sql.NullString
	err := row.Scan(
		&entity.ID,
		&entity.Title,
		&entity.Description,
		&entity.Duration,
		&instructorID,
		&createdAt,
	)
	if instructorID.Valid {
		entity.InstructorID = instructorID.String
	}
	entity.CreatedAt = storage.ParseTime(createdAt)
	return entity, err
}

// GetByID retrieves an Internship by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Internship, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+columns+" FROM internship WHERE id = ?", id)
	entity, err := scanInternship(row)
	if err == sql.ErrNoRows {
		return domain.Internship{}, fmt.Errorf("internship not found: %w", err)
	}
	return entity, err
}

// Save persists an Internship to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Internship) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := "INSERT INTO internship (" + columns + ") VALUES (?, ?, ?, ?, ?, ?) " +
		"ON CONFLICT(id) DO UPDATE SET title=excluded.title, description=excluded.description, " +
		"duration=excluded.duration, instructor_id=excluded.instructor_id"

	var instructorID any
	if entity.InstructorID != "" {
		instructorID = entity.InstructorID
	}

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.Title,
		entity.Description,
		entity.Duration,
		instructorID,
		storage.FormatTime(entity.CreatedAt),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes an Internship from the database. Materials, quizzes, the
// project, and enrollments under it cascade.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM internship WHERE id = ?", id)
	return err
}

// List retrieves a list of Internships based on the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities ordered by title
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Internship, error) {
	query := "SELECT " + columns + " FROM internship WHERE 1=1"
	var args []any

	if filter.InstructorID != "" {
		query += " AND instructor_id = ?"
		args = append(args, filter.InstructorID)
	}
	if filter.Search != "" {
		query += " AND (title LIKE ? OR description LIKE ?)"
		term := "%" + filter.Search + "%"
		args = append(args, term, term)
	}
	query += " ORDER BY title ASC"

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

	var results []domain.Internship
	for rows.Next() {
		entity, err := scanInternship(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

// Count returns the total number of internships.
// POST: Returns count >= 0
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM internship").Scan(&count)
	return count, err
}

const materialColumns = "id, internship_id, title, resource_type, file_path, created_at"

// MaterialSQLiteStore implements MaterialStore using SQLite.
type MaterialSQLiteStore struct {
	db storage.SQLDB
}

// NewMaterialSQLiteStore creates a new internship material store.
func NewMaterialSQLiteStore(db storage.SQLDB) *MaterialSQLiteStore {
	return &MaterialSQLiteStore{db: db}
}

func scanMaterial(row interface{ Scan(...any) error }) (domain.Material, error) {
	var entity domain.Material
	var createdAt sql.NullString
	err := row.Scan(
		&entity.ID,
		&entity.InternshipID,
		&entity.Title,
		&entity.ResourceType,
		&entity.FilePath,
		&createdAt,
	)
	entity.CreatedAt = storage.ParseTime(createdAt)
	return entity, err
}

// GetByID retrieves a Material by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *MaterialSQLiteStore) GetByID(ctx context.Context, id string) (domain.Material, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+materialColumns+" FROM internship_material WHERE id = ?", id)
	entity, err := scanMaterial(row)
	if err == sql.ErrNoRows {
		return domain.Material{}, fmt.Errorf("material not found: %w", err)
	}
	return entity, err
}

// Save persists a Material to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *MaterialSQLiteStore) Save(ctx context.Context, entity domain.Material) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := "INSERT INTO internship_material (" + materialColumns + ") VALUES (?, ?, ?, ?, ?, ?) " +
		"ON CONFLICT(id) DO UPDATE SET title=excluded.title, resource_type=excluded.resource_type, " +
		"file_path=excluded.file_path"

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.InternshipID,
		entity.Title,
		entity.ResourceType,
		entity.FilePath,
		storage.FormatTime(entity.CreatedAt),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Material from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *MaterialSQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM internship_material WHERE id = ?", id)
	return err
}

// ListByInternship retrieves all materials of an internship.
// PRE: internshipID is non-empty
// POST: Returns entities ordered by creation time
func (s *MaterialSQLiteStore) ListByInternship(ctx context.Context, internshipID string) ([]domain.Material, error) {
	query := "SELECT " + materialColumns + " FROM internship_material WHERE internship_id = ? ORDER BY created_at ASC"
	rows, err := s.db.QueryContext(ctx, query, internshipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Material
	for rows.Next() {
		entity, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

const quizColumns = "id, internship_id, title, questions_data, created_at"

// QuizSQLiteStore implements QuizStore using SQLite.
type QuizSQLiteStore struct {
	db storage.SQLDB
}

// NewQuizSQLiteStore creates a new internship quiz store.
func NewQuizSQLiteStore(db storage.SQLDB) *QuizSQLiteStore {
	return &QuizSQLiteStore{db: db}
}

func scanQuiz(row interface{ Scan(...any) error }) (domain.Quiz, error) {
	var entity domain.Quiz
	var createdAt sql.NullString
	err := row.Scan(
		&entity.ID,
		&entity.InternshipID,
		&entity.Title,
		&entity.QuestionsData,
		&createdAt,
	)
	entity.CreatedAt = storage.ParseTime(createdAt)
	return entity, err
}

// GetByID retrieves a Quiz by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *QuizSQLiteStore) GetByID(ctx context.Context, id string) (domain.Quiz, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+quizColumns+" FROM internship_quiz WHERE id = ?", id)
	entity, err := scanQuiz(row)
	if err == sql.ErrNoRows {
		return domain.Quiz{}, fmt.Errorf("internship quiz not found: %w", err)
	}
	return entity, err
}

// Save persists a Quiz to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *QuizSQLiteStore) Save(ctx context.Context, entity domain.Quiz) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := "INSERT INTO internship_quiz (" + quizColumns + ") VALUES (?, ?, ?, ?, ?) " +
		"ON CONFLICT(id) DO UPDATE SET title=excluded.title, questions_data=excluded.questions_data"

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.InternshipID,
		entity.Title,
		entity.QuestionsData,
		storage.FormatTime(entity.CreatedAt),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Quiz from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *QuizSQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM internship_quiz WHERE id = ?", id)
	return err
}

// ListByInternship retrieves all quizzes of an internship.
// PRE: internshipID is non-empty
// POST: Returns entities ordered by creation time
func (s *QuizSQLiteStore) ListByInternship(ctx context.Context, internshipID string) ([]domain.Quiz, error) {
	query := "SELECT " + quizColumns + " FROM internship_quiz WHERE internship_id = ? ORDER BY created_at ASC"
	rows, err := s.db.QueryContext(ctx, query, internshipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Quiz
	for rows.Next() {
		entity, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

const projectColumns = "id, internship_id, title, description, created_at"

// ProjectSQLiteStore implements ProjectStore using SQLite.
type ProjectSQLiteStore struct {
	db storage.SQLDB
}

// NewProjectSQLiteStore creates a new internship project store.
func NewProjectSQLiteStore(db storage.SQLDB) *ProjectSQLiteStore {
	return &ProjectSQLiteStore{db: db}
}

// GetByInternship retrieves the project definition for an internship.
// PRE: internshipID is non-empty
// POST: Returns the entity or an error if not found
func (s *ProjectSQLiteStore) GetByInternship(ctx context.Context, internshipID string) (domain.Project, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+projectColumns+" FROM internship_project WHERE internship_id = ?", internshipID)

	var entity domain.Project
	var createdAt sql.NullString
	err := row.Scan(
		&entity.ID,
		&entity.InternshipID,
		&entity.Title,
		&entity.Description,
		&createdAt,
	)
	entity.CreatedAt = storage.ParseTime(createdAt)
	if err == sql.ErrNoRows {
		return domain.Project{}, fmt.Errorf("project not found: %w", err)
	}
	return entity, err
}

// Save persists a Project. The internship_id unique constraint makes this an
// overwrite when a project already exists for the internship.
// PRE: entity has been validated
// POST: The internship has exactly one project definition
func (s *ProjectSQLiteStore) Save(ctx context.Context, entity domain.Project) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := "INSERT INTO internship_project (" + projectColumns + ") VALUES (?, ?, ?, ?, ?) " +
		"ON CONFLICT(internship_id) DO UPDATE SET title=excluded.title, description=excluded.description"

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.InternshipID,
		entity.Title,
		entity.Description,
		storage.FormatTime(entity.CreatedAt),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Project from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *ProjectSQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM internship_project WHERE id = ?", id)
	return err
}
