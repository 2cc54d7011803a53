package accounts

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("account not found")

// Repo defines persistence operations for accounts.
type Repo interface {
	Create(ctx context.Context, acct Account) error
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	GetByUsername(ctx context.Context, username string) (Account, error)
	GetByToken(ctx context.Context, token string) (Account, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]Summary, error)
}
