package notification

import (
	"context"
	"database/sql"
	"fmt"

	"campus/internal/adapters/storage"
	domain "campus/internal/domain/notification"
)

const columns = "id, student_id, message, is_read, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new notification store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanNotification(row interface{ Scan(...any) error }) (domain.Notification, error) {
	var entity domain.Notification
	var createdAt sql.NullString
	err := row.Scan(
		&entity.ID,
		&entity.StudentID,
		&entity.Message,
		&entity.IsRead,
		&createdAt,
	)
	entity.CreatedAt = storage.ParseTime(createdAt)
	return entity, err
}

// GetByID retrieves a Notification by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Notification, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+columns+" FROM notification WHERE id = ?", id)
	entity, err := scanNotification(row)
	if err == sql.ErrNoRows {
		return domain.Notification{}, fmt.Errorf("notification not found: %w", err)
	}
	return entity, err
}

// Save persists a Notification to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Notification) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := "INSERT INTO notification (" + columns + ") VALUES (?, ?, ?, ?, ?) " +
		"ON CONFLICT(id) DO UPDATE SET message=excluded.message, is_read=excluded.is_read"

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.StudentID,
		entity.Message,
		entity.IsRead,
		storage.FormatTime(entity.CreatedAt),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Notification from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM notification WHERE id = ?", id)
	return err
}

// ListByStudent retrieves a student's notifications, newest first.
// PRE: studentID is non-empty
// POST: Returns entities ordered by creation time descending
func (s *SQLiteStore) ListByStudent(ctx context.Context, studentID string, unreadOnly bool) ([]domain.Notification, error) {
	query := "SELECT " + columns + " FROM notification WHERE student_id = ?"
	if unreadOnly {
		query += " AND is_read = 0"
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Notification
	for rows.Next() {
		entity, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

// CountUnread returns the number of unread notifications for a student.
// PRE: studentID is non-empty
// POST: Returns count >= 0
func (s *SQLiteStore) CountUnread(ctx context.Context, studentID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notification WHERE student_id = ? AND is_read = 0",
		studentID,
	).Scan(&count)
	return count, err
}

// MarkAllRead flags every notification for a student as read.
// PRE: studentID is non-empty
// POST: No unread notifications remain for the student
func (s *SQLiteStore) MarkAllRead(ctx context.Context, studentID string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE notification SET is_read = 1 WHERE student_id = ?", studentID)
	return err
}
