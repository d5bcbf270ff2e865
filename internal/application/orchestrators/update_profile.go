package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"campus/internal/domain/account"
)

// AccountStoreForProfile defines the store interface needed by profile updates.
type AccountStoreForProfile interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// UpdateProfileInput carries the editable profile fields. An empty
// NewPassword leaves the password unchanged.
type UpdateProfileInput struct {
	AccountID   string
	Email       string
	FullName    string
	NewPassword string
}

// UpdateProfileDeps holds dependencies for profile updates.
type UpdateProfileDeps struct {
	AccountStore AccountStoreForProfile
}

// ExecuteUpdateProfile updates an account's email, full name, and optionally
// its password.
// PRE: AccountID references an existing account
// POST: Account is persisted with the new fields
func ExecuteUpdateProfile(ctx context.Context, input UpdateProfileInput, deps UpdateProfileDeps) error {
	acct, err := deps.AccountStore.GetByID(ctx, input.AccountID)
	if err != nil {
		return fmt.Errorf("load account: %w", err)
	}

	if input.Email != "" && input.Email != acct.Email {
		if other, err := deps.AccountStore.GetByEmail(ctx, input.Email); err == nil && other.ID != acct.ID {
			return account.ErrEmailTaken
		}
		acct.Email = input.Email
	}
	if input.FullName != "" {
		acct.FullName = input.FullName
	}
	if err := acct.Validate(); err != nil {
		return err
	}
	if input.NewPassword != "" {
		if err := acct.SetPassword(input.NewPassword); err != nil {
			return err
		}
	}

	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return fmt.Errorf("save account: %w", err)
	}

	slog.Info("account_event", "event", "profile_updated", "account_id", acct.ID)
	return nil
}
