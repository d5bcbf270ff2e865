package quiz

import (
	"context"
	"database/sql"
	"fmt"

	"campus/internal/adapters/storage"
	domain "campus/internal/domain/quiz"
)

const quizColumns = "id, course_id, title, questions_data, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new quiz store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanQuiz(row interface{ Scan(...any) error }) (domain.Quiz, error) {
	var entity domain.Quiz
	var createdAt sql.NullString
	err := row.Scan(
		&entity.ID,
		&entity.CourseID,
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
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Quiz, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+quizColumns+" FROM quiz WHERE id = ?", id)
	entity, err := scanQuiz(row)
	if err == sql.ErrNoRows {
		return domain.Quiz{}, fmt.Errorf("quiz not found: %w", err)
	}
	return entity, err
}

// Save persists a Quiz to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Quiz) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := "INSERT INTO quiz (" + quizColumns + ") VALUES (?, ?, ?, ?, ?) " +
		"ON CONFLICT(id) DO UPDATE SET course_id=excluded.course_id, title=excluded.title, " +
		"questions_data=excluded.questions_data"

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.CourseID,
		entity.Title,
		entity.QuestionsData,
		storage.FormatTime(entity.CreatedAt),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Quiz from the database. Results under it cascade.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM quiz WHERE id = ?", id)
	return err
}

// ListByCourse retrieves all quizzes of a course.
// PRE: courseID is non-empty
// POST: Returns entities ordered by creation time
func (s *SQLiteStore) ListByCourse(ctx context.Context, courseID string) ([]domain.Quiz, error) {
	query := "SELECT " + quizColumns + " FROM quiz WHERE course_id = ? ORDER BY created_at ASC"
	rows, err := s.db.QueryContext(ctx, query, courseID)
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

const resultColumns = "id, student_id, quiz_id, score, passed, attempted_at"

// ResultSQLiteStore implements ResultStore using SQLite.
type ResultSQLiteStore struct {
	db storage.SQLDB
}

// NewResultSQLiteStore creates a new quiz result store.
func NewResultSQLiteStore(db storage.SQLDB) *ResultSQLiteStore {
	return &ResultSQLiteStore{db: db}
}

func scanResult(row interface{ Scan(...any) error }) (domain.Result, error) {
	var entity domain.Result
	var attemptedAt sql.NullString
	err := row.Scan(
		&entity.ID,
		&entity.StudentID,
		&entity.QuizID,
		&entity.Score,
		&entity.Passed,
		&attemptedAt,
	)
	entity.AttemptedAt = storage.ParseTime(attemptedAt)
	return entity, err
}

// Save persists a Result to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *ResultSQLiteStore) Save(ctx context.Context, entity domain.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := "INSERT INTO quiz_result (" + resultColumns + ") VALUES (?, ?, ?, ?, ?, ?) " +
		"ON CONFLICT(id) DO UPDATE SET score=excluded.score, passed=excluded.passed, " +
		"attempted_at=excluded.attempted_at"

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.StudentID,
		entity.QuizID,
		entity.Score,
		entity.Passed,
		storage.FormatTime(entity.AttemptedAt),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// GetByStudentAndQuiz retrieves a student's most recent attempt at a quiz.
// PRE: studentID and quizID are non-empty
// POST: Returns the latest entity or an error if no attempt exists
func (s *ResultSQLiteStore) GetByStudentAndQuiz(ctx context.Context, studentID, quizID string) (domain.Result, error) {
	query := "SELECT " + resultColumns + " FROM quiz_result WHERE student_id = ? AND quiz_id = ? " +
		"ORDER BY attempted_at DESC LIMIT 1"
	row := s.db.QueryRowContext(ctx, query, studentID, quizID)
	entity, err := scanResult(row)
	if err == sql.ErrNoRows {
		return domain.Result{}, fmt.Errorf("quiz result not found: %w", err)
	}
	return entity, err
}

// ListByStudent retrieves all of a student's graded attempts, newest first.
// PRE: studentID is non-empty
// POST: Returns entities ordered by attempt time descending
func (s *ResultSQLiteStore) ListByStudent(ctx context.Context, studentID string) ([]domain.Result, error) {
	query := "SELECT " + resultColumns + " FROM quiz_result WHERE student_id = ? ORDER BY attempted_at DESC"
	rows, err := s.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Result
	for rows.Next() {
		entity, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}
