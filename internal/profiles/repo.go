package profiles

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"biocard-backend/internal/assets"
)

var ErrNotFound = errors.New("profile not found")

// Repo persists profile documents and supplies the transaction boundary the
// lifecycle's commit plan executes inside.
type Repo interface {
	Create(ctx context.Context, rec Record) error
	// Load fetches the persisted document by username (reference tokens intact).
	Load(ctx context.Context, username string) (Record, error)
	// LoadForUpdate fetches the persisted document by owner for an update cycle.
	LoadForUpdate(ctx context.Context, ownerID uuid.UUID) (Record, error)
	// SaveTransactional applies the document save and the commit plan's blob
	// creates and deletes as one atomic unit.
	SaveTransactional(ctx context.Context, ownerID uuid.UUID, doc Profile, plan assets.CommitPlan) error
	Delete(ctx context.Context, ownerID uuid.UUID) error
}
