package assets

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// DBTX is the subset of database/sql satisfied by both *sql.DB and *sql.Tx,
// so the store can run standalone or inside a repository transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PGStore implements Store using Postgres.
type PGStore struct {
	DB DBTX
}

// NewPGStore binds a store to a pool or an open transaction.
func NewPGStore(db DBTX) *PGStore {
	return &PGStore{DB: db}
}

func (s *PGStore) Put(ctx context.Context, blob Blob) error {
	const query = `
INSERT INTO media_assets (id, owner_id, category, storage_tier, data, mime_type, size_bytes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	tier := blob.StorageTier
	if tier == "" {
		tier = TierInline
	}
	_, err := s.DB.ExecContext(ctx, query,
		blob.ID,
		blob.OwnerID,
		blob.Category,
		tier,
		blob.Data,
		blob.MimeType,
		blob.SizeBytes,
		blob.CreatedAt,
	)
	return err
}

func (s *PGStore) Get(ctx context.Context, id uuid.UUID) (Blob, error) {
	const query = `
SELECT id, owner_id, category, storage_tier, data, mime_type, size_bytes, created_at
FROM media_assets
WHERE id = $1
LIMIT 1`
	var blob Blob
	err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&blob.ID,
		&blob.OwnerID,
		&blob.Category,
		&blob.StorageTier,
		&blob.Data,
		&blob.MimeType,
		&blob.SizeBytes,
		&blob.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Blob{}, ErrNotFound
		}
		return Blob{}, err
	}
	return blob, nil
}

func (s *PGStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	const query = `DELETE FROM media_assets WHERE id = $1`
	res, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	deleted, _ := res.RowsAffected()
	return deleted > 0, nil
}

func (s *PGStore) DeleteOwnerCategory(ctx context.Context, ownerID uuid.UUID, category string) (int, error) {
	const query = `DELETE FROM media_assets WHERE owner_id = $1 AND category = $2`
	res, err := s.DB.ExecContext(ctx, query, ownerID, category)
	if err != nil {
		return 0, err
	}
	deleted, _ := res.RowsAffected()
	return int(deleted), nil
}

func (s *PGStore) DeleteOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	const query = `DELETE FROM media_assets WHERE owner_id = $1`
	res, err := s.DB.ExecContext(ctx, query, ownerID)
	if err != nil {
		return 0, err
	}
	deleted, _ := res.RowsAffected()
	return int(deleted), nil
}

func (s *PGStore) OwnerStats(ctx context.Context, ownerID uuid.UUID) (OwnerStats, error) {
	const query = `
SELECT COALESCE(SUM(size_bytes), 0), COUNT(*)
FROM media_assets
WHERE owner_id = $1`
	var stats OwnerStats
	if err := s.DB.QueryRowContext(ctx, query, ownerID).Scan(&stats.TotalBytes, &stats.BlobCount); err != nil {
		return OwnerStats{}, err
	}
	return stats, nil
}

var _ Store = (*PGStore)(nil)
