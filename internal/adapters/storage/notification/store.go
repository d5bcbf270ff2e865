package notification

import (
	"context"

	domain "campus/internal/domain/notification"
)

// Store persists Notification state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Notification, error)
	Save(ctx context.Context, value domain.Notification) error
	Delete(ctx context.Context, id string) error
	ListByStudent(ctx context.Context, studentID string, unreadOnly bool) ([]domain.Notification, error)
	CountUnread(ctx context.Context, studentID string) (int, error)
	MarkAllRead(ctx context.Context, studentID string) error
}
