package assets

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TierInline marks a blob whose bytes live in the store itself. An
// "external-url" tier is reserved for a future object-storage migration.
const TierInline = "inline-bytes"

// Blob is a stored binary payload owned by exactly one account.
type Blob struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Category    string
	StorageTier string
	MimeType    string
	Data        []byte
	SizeBytes   int64
	CreatedAt   time.Time
}

// NewBlob mints a blob record for raw bytes extracted from a document field.
func NewBlob(ownerID uuid.UUID, category, mimeType string, data []byte) Blob {
	return Blob{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Category:    category,
		StorageTier: TierInline,
		MimeType:    mimeType,
		Data:        data,
		SizeBytes:   int64(len(data)),
		CreatedAt:   time.Now().UTC(),
	}
}

// OwnerStats aggregates storage usage for one owner.
type OwnerStats struct {
	TotalBytes int64 `json:"totalBytes"`
	BlobCount  int   `json:"blobCount"`
}

// Store persists blobs. Write-path calls participate in the ambient
// transaction supplied by the profile repository; standalone calls (account
// deletion, stats) run against the pool directly.
type Store interface {
	Put(ctx context.Context, blob Blob) error
	Get(ctx context.Context, id uuid.UUID) (Blob, error)
	// Delete removes a blob, reporting false if it was already absent.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteOwnerCategory(ctx context.Context, ownerID uuid.UUID, category string) (int, error)
	DeleteOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
	OwnerStats(ctx context.Context, ownerID uuid.UUID) (OwnerStats, error)
}

// CommitPlan is the bundle of blob mutations that must apply atomically
// with the owning document's save.
type CommitPlan struct {
	Creates []Blob
	Deletes []uuid.UUID
}
