package lesson

import (
	"context"
	"database/sql"
	"fmt"

	"campus/internal/adapters/storage"
	domain "campus/internal/domain/lesson"
)

const columns = "id, course_id, title, content, video_file, notes_file, lesson_order, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new lesson store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanLesson(row interface{ Scan(...any) error }) (domain.Lesson, error) {
	var entity domain.Lesson
	var videoFile, notesFile, createdAt sql.NullString
	err := row.Scan(
		&entity.ID,
		&entity.CourseID,
		&entity.Title,
		&entity.Content,
		&videoFile,
		&notesFile,
		&entity.Order,
		&createdAt,
	)
	if videoFile.Valid {
		entity.VideoFile = videoFile.String
	}
	if notesFile.Valid {
		entity.NotesFile = notesFile.String
	}
	entity.CreatedAt = storage.ParseTime(createdAt)
	return entity, err
}

// GetByID retrieves a Lesson by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Lesson, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+columns+" FROM lesson WHERE id = ?", id)
	entity, err := scanLesson(row)
	if err == sql.ErrNoRows {
		return domain.Lesson{}, fmt.Errorf("lesson not found: %w", err)
	}
	return entity, err
}

// Save persists a Lesson to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Lesson) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := "INSERT INTO lesson (" + columns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?) " +
		"ON CONFLICT(id) DO UPDATE SET course_id=excluded.course_id, title=excluded.title, " +
		"content=excluded.content, video_file=excluded.video_file, " +
		"notes_file=excluded.notes_file, lesson_order=excluded.lesson_order"

	var videoFile, notesFile any
	if entity.VideoFile != "" {
		videoFile = entity.VideoFile
	}
	if entity.NotesFile != "" {
		notesFile = entity.NotesFile
	}

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.CourseID,
		entity.Title,
		entity.Content,
		videoFile,
		notesFile,
		entity.Order,
		storage.FormatTime(entity.CreatedAt),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Lesson from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM lesson WHERE id = ?", id)
	return err
}

// ListByCourse retrieves all lessons of a course in display order.
// PRE: courseID is non-empty
// POST: Returns entities ordered by lesson_order, then creation time
func (s *SQLiteStore) ListByCourse(ctx context.Context, courseID string) ([]domain.Lesson, error) {
	query := "SELECT " + columns + " FROM lesson WHERE course_id = ? ORDER BY lesson_order ASC, created_at ASC"
	rows, err := s.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Lesson
	for rows.Next() {
		entity, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

// CountByCourse returns the number of lessons in a course.
// PRE: courseID is non-empty
// POST: Returns count >= 0
func (s *SQLiteStore) CountByCourse(ctx context.Context, courseID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM lesson WHERE course_id = ?", courseID).Scan(&count)
	return count, err
}
