package enrollment

import (
	"context"
	"database/sql"
	"fmt"

	"campus/internal/adapters/storage"
	domain "campus/internal/domain/enrollment"
)

const columns = "id, student_id, course_id, status, progress, certificate_id, created_at, completed_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new course enrollment store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanEnrollment(row interface{ Scan(...any) error }) (domain.Enrollment, error) {
	var entity domain.Enrollment
	var certificateID, createdAt, completedAt sql.NullString
	err := row.Scan(
		&entity.ID,
		&entity.StudentID,
		&entity.CourseID,
		&entity.Status,
		&entity.Progress,
		&certificateID,
		&createdAt,
		&completedAt,
	)
	if certificateID.Valid {
		entity.CertificateID = certificateID.String
	}
	entity.CreatedAt = storage.ParseTime(createdAt)
	entity.CompletedAt = storage.ParseTime(completedAt)
	return entity, err
}

// GetByID retrieves an Enrollment by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Enrollment, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+columns+" FROM enrollment WHERE id = ?", id)
	entity, err := scanEnrollment(row)
	if err == sql.ErrNoRows {
		return domain.Enrollment{}, fmt.Errorf("enrollment not found: %w", err)
	}
	return entity, err
}

// GetByStudentAndCourse retrieves the enrollment for a (student, course)
// pair. At most one exists.
// PRE: studentID and courseID are non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByStudentAndCourse(ctx context.Context, studentID, courseID string) (domain.Enrollment, error) {
	query := "SELECT " + columns + " FROM enrollment WHERE student_id = ? AND course_id = ?"
	row := s.db.QueryRowContext(ctx, query, studentID, courseID)
	entity, err := scanEnrollment(row)
	if err == sql.ErrNoRows {
		return domain.Enrollment{}, fmt.Errorf("enrollment not found: %w", err)
	}
	return entity, err
}

// Save persists an Enrollment to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Enrollment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := "INSERT INTO enrollment (" + columns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?) " +
		"ON CONFLICT(id) DO UPDATE SET status=excluded.status, progress=excluded.progress, " +
		"certificate_id=excluded.certificate_id, completed_at=excluded.completed_at"

	var certificateID any
	if entity.CertificateID != "" {
		certificateID = entity.CertificateID
	}

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.StudentID,
		entity.CourseID,
		entity.Status,
		entity.Progress,
		certificateID,
		storage.FormatTime(entity.CreatedAt),
		storage.FormatTime(entity.CompletedAt),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes an Enrollment from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM enrollment WHERE id = ?", id)
	return err
}

// ListByStudent retrieves a student's course enrollments, newest first.
// PRE: studentID is non-empty
// POST: Returns entities ordered by creation time descending
func (s *SQLiteStore) ListByStudent(ctx context.Context, studentID string) ([]domain.Enrollment, error) {
	query := "SELECT " + columns + " FROM enrollment WHERE student_id = ? ORDER BY created_at DESC"
	return s.list(ctx, query, studentID)
}

// ListByCourse retrieves a course's enrollments, newest first.
// PRE: courseID is non-empty
// POST: Returns entities ordered by creation time descending
func (s *SQLiteStore) ListByCourse(ctx context.Context, courseID string) ([]domain.Enrollment, error) {
	query := "SELECT " + columns + " FROM enrollment WHERE course_id = ? ORDER BY created_at DESC"
	return s.list(ctx, query, courseID)
}

// ListAll retrieves course enrollments across all students, newest first.
// PRE: limit > 0
// POST: Returns at most limit entities ordered by creation time descending
func (s *SQLiteStore) ListAll(ctx context.Context, limit int) ([]domain.Enrollment, error) {
	query := "SELECT " + columns + " FROM enrollment ORDER BY created_at DESC LIMIT ?"
	return s.list(ctx, query, limit)
}

// Count returns the total number of course enrollments.
// POST: Returns count >= 0
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM enrollment").Scan(&count)
	return count, err
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Enrollment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Enrollment
	for rows.Next() {
		entity, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

// CompletionSQLiteStore implements CompletionStore using SQLite.
type CompletionSQLiteStore struct {
	db storage.SQLDB
}

// NewCompletionSQLiteStore creates a new lesson completion store.
func NewCompletionSQLiteStore(db storage.SQLDB) *CompletionSQLiteStore {
	return &CompletionSQLiteStore{db: db}
}

// Save persists a LessonCompletion. Marking the same lesson twice is a no-op.
// PRE: entity fields are populated
// POST: The (student, lesson) pair is recorded exactly once
func (s *CompletionSQLiteStore) Save(ctx context.Context, entity domain.LessonCompletion) error {
	query := "INSERT INTO lesson_completion (id, student_id, lesson_id, completed_at) VALUES (?, ?, ?, ?) " +
		"ON CONFLICT(student_id, lesson_id) DO NOTHING"
	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.StudentID,
		entity.LessonID,
		storage.FormatTime(entity.CompletedAt),
	)
	return err
}

// HasCompleted reports whether a student has finished a lesson.
// PRE: studentID and lessonID are non-empty
func (s *CompletionSQLiteStore) HasCompleted(ctx context.Context, studentID, lessonID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM lesson_completion WHERE student_id = ? AND lesson_id = ?",
		studentID, lessonID,
	).Scan(&count)
	return count > 0, err
}

// ListByStudentAndCourse retrieves a student's completions within one course.
// PRE: studentID and courseID are non-empty
// POST: Returns entities ordered by completion time
func (s *CompletionSQLiteStore) ListByStudentAndCourse(ctx context.Context, studentID, courseID string) ([]domain.LessonCompletion, error) {
	query := `SELECT lc.id, lc.student_id, lc.lesson_id, lc.completed_at
		FROM lesson_completion lc
		JOIN lesson l ON l.id = lc.lesson_id
		WHERE lc.student_id = ? AND l.course_id = ?
		ORDER BY lc.completed_at ASC`
	rows, err := s.db.QueryContext(ctx, query, studentID, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.LessonCompletion
	for rows.Next() {
		var entity domain.LessonCompletion
		var completedAt sql.NullString
		if err := rows.Scan(&entity.ID, &entity.StudentID, &entity.LessonID, &completedAt); err != nil {
			return nil, err
		}
		entity.CompletedAt = storage.ParseTime(completedAt)
		results = append(results, entity)
	}
	return results, nil
}

// CountByStudentAndCourse returns how many of a course's lessons a student
// has finished. Used to recompute enrollment progress.
// PRE: studentID and courseID are non-empty
// POST: Returns count >= 0
func (s *CompletionSQLiteStore) CountByStudentAndCourse(ctx context.Context, studentID, courseID string) (int, error) {
	query := `SELECT COUNT(*)
		FROM lesson_completion lc
		JOIN lesson l ON l.id = lc.lesson_id
		WHERE lc.student_id = ? AND l.course_id = ?`
	var count int
	err := s.db.QueryRowContext(ctx, query, studentID, courseID).Scan(&count)
	return count, err
}
