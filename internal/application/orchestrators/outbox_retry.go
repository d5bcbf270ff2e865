package orchestrators

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"campus/internal/adapters/email"
	outboxStore "campus/internal/adapters/storage/outbox"
	domainOutbox "campus/internal/domain/outbox"
)

// OutboxRetryDeps provides the dependencies for retrying outbox entries.
type OutboxRetryDeps struct {
	OutboxStore outboxStore.Store
	EmailSender email.Sender
	Now         func() time.Time
}

// ExecuteOutboxRetry processes pending and retryable outbox entries with
// exponential backoff, respecting each entry's max attempts.
// PRE: Deps are valid and the store is connected
// POST: All eligible entries are attempted once; results logged
func ExecuteOutboxRetry(ctx context.Context, deps OutboxRetryDeps) error {
	entries, err := deps.OutboxStore.ListPending(ctx, 100)
	if err != nil {
		return fmt.Errorf("list retryable outbox entries: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	slog.Info("outbox_retry_start", "count", len(entries))

	baseDelay := 1 * time.Minute
	maxDelay := 1 * time.Hour
	now := deps.Now()

	var succeeded, failed int
	for _, entry := range entries {
		if !entry.CanRetry() {
			continue
		}
		if !entry.LastAttemptedAt.IsZero() {
			nextRetry := entry.LastAttemptedAt.Add(entry.NextRetryDelay(baseDelay, maxDelay))
			if now.Before(nextRetry) {
				continue
			}
		}

		entry.MarkAttempt(now)

		var err error
		switch entry.ActionType {
		case domainOutbox.ActionTypeEmail:
			err = retryEmail(ctx, deps.EmailSender, entry)
		default:
			err = fmt.Errorf("unknown action type: %s", entry.ActionType)
		}

		if err != nil {
			entry.MarkFailed(err)
			failed++
			slog.Error("outbox_retry_failed", "entry_id", entry.ID, "action", entry.ActionType, "attempt", entry.Attempts, "error", err)
		} else {
			entry.MarkSuccess()
			succeeded++
			slog.Info("outbox_retry_succeeded", "entry_id", entry.ID, "action", entry.ActionType, "attempt", entry.Attempts)
		}

		if saveErr := deps.OutboxStore.Save(ctx, entry); saveErr != nil {
			slog.Error("outbox_retry_save_failed", "entry_id", entry.ID, "error", saveErr)
		}
	}

	slog.Info("outbox_retry_complete", "succeeded", succeeded, "failed", failed)
	return nil
}

// retryEmail replays a queued decision email through the configured sender.
// PRE: Entry payload is a reviewEmailPayload
// POST: Email accepted by the provider or error returned
func retryEmail(ctx context.Context, sender email.Sender, entry domainOutbox.Entry) error {
	if sender == nil {
		return fmt.Errorf("no email sender configured")
	}

	var payload reviewEmailPayload
	if err := json.Unmarshal([]byte(entry.Payload), &payload); err != nil {
		return fmt.Errorf("unmarshal email payload: %w", err)
	}

	_, err := sender.Send(ctx, email.SendRequest{
		To:      payload.To,
		Subject: payload.Subject,
		HTML:    payload.HTML,
	})
	return err
}

// StartOutboxRetryScheduler starts a background goroutine that periodically
// retries outbox entries until the context is cancelled.
// PRE: Context is valid, deps are initialized
// POST: Goroutine started; returns a stop function
func StartOutboxRetryScheduler(ctx context.Context, deps OutboxRetryDeps, interval time.Duration) func() {
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := ExecuteOutboxRetry(ctx, deps); err != nil {
					slog.Error("outbox_retry_run_failed", "error", err.Error())
				}
			}
		}
	}()
	return cancel
}
