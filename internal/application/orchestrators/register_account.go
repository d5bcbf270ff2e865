package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	accountStore "campus/internal/adapters/storage/account"
	"campus/internal/domain/account"
)

// AccountStoreForRegister defines the store interface needed by registration.
type AccountStoreForRegister interface {
	GetByUsername(ctx context.Context, username string) (account.Account, error)
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// RegisterAccountInput carries input for account creation. Students register
// themselves; admins use the same path to create instructor accounts.
type RegisterAccountInput struct {
	Username string
	Email    string
	FullName string
	Password string
	Role     string
}

// RegisterAccountResult carries the created account's identity.
type RegisterAccountResult struct {
	AccountID string
	Username  string
	Role      string
}

// RegisterAccountDeps holds dependencies for registration.
type RegisterAccountDeps struct {
	AccountStore AccountStoreForRegister
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteRegisterAccount creates a new account after uniqueness checks.
// PRE: input fields are trimmed; role is a valid role constant
// POST: Account is persisted with a bcrypt password hash
// INVARIANT: Username and email stay unique across accounts
func ExecuteRegisterAccount(ctx context.Context, input RegisterAccountInput, deps RegisterAccountDeps) (RegisterAccountResult, error) {
	if _, err := deps.AccountStore.GetByUsername(ctx, input.Username); err == nil {
		return RegisterAccountResult{}, account.ErrUsernameTaken
	}
	if _, err := deps.AccountStore.GetByEmail(ctx, input.Email); err == nil {
		return RegisterAccountResult{}, account.ErrEmailTaken
	}

	acct := account.Account{
		ID:        deps.GenerateID(),
		Username:  input.Username,
		Email:     input.Email,
		FullName:  input.FullName,
		Role:      input.Role,
		CreatedAt: deps.Now(),
	}
	if err := acct.Validate(); err != nil {
		return RegisterAccountResult{}, err
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return RegisterAccountResult{}, err
	}

	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		// The uniqueness pre-checks race with concurrent registrations;
		// the database constraint is authoritative.
		if accountStore.IsDuplicate(err) {
			return RegisterAccountResult{}, account.ErrUsernameTaken
		}
		return RegisterAccountResult{}, fmt.Errorf("save account: %w", err)
	}

	slog.Info("account_event", "event", "account_created", "username", acct.Username, "role", acct.Role)

	return RegisterAccountResult{
		AccountID: acct.ID,
		Username:  acct.Username,
		Role:      acct.Role,
	}, nil
}
