package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"biocard-backend/internal/assets"
)

// PGRepo implements Repo using Postgres. SaveTransactional runs the commit
// plan and the document save inside one serializable transaction, so a
// failure anywhere leaves the previous document and its blobs untouched.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO profiles (owner_id, username, document, updated_at)
VALUES ($1, $2, $3, now())`
	raw, err := json.Marshal(rec.Document)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query, rec.OwnerID, rec.Username, raw)
	return err
}

func (r *PGRepo) Load(ctx context.Context, username string) (Record, error) {
	const query = `
SELECT owner_id, username, document, updated_at
FROM profiles
WHERE lower(username) = lower($1)
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, username))
}

func (r *PGRepo) LoadForUpdate(ctx context.Context, ownerID uuid.UUID) (Record, error) {
	const query = `
SELECT owner_id, username, document, updated_at
FROM profiles
WHERE owner_id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, ownerID))
}

func (r *PGRepo) SaveTransactional(ctx context.Context, ownerID uuid.UUID, doc Profile, plan assets.CommitPlan) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	// Serializable so two concurrent updates of the same document cannot
	// interleave their reference diffs and delete each other's blobs.
	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	store := assets.NewPGStore(tx)
	for _, blob := range plan.Creates {
		if err := store.Put(ctx, blob); err != nil {
			return err
		}
	}
	for _, id := range plan.Deletes {
		if _, err := store.Delete(ctx, id); err != nil {
			return err
		}
	}

	const query = `
UPDATE profiles
SET document = $1, updated_at = $2
WHERE owner_id = $3`
	res, err := tx.ExecContext(ctx, query, raw, time.Now().UTC(), ownerID)
	if err != nil {
		return err
	}
	if updated, _ := res.RowsAffected(); updated == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

func (r *PGRepo) Delete(ctx context.Context, ownerID uuid.UUID) error {
	const query = `DELETE FROM profiles WHERE owner_id = $1`
	res, err := r.DB.ExecContext(ctx, query, ownerID)
	if err != nil {
		return err
	}
	if deleted, _ := res.RowsAffected(); deleted == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) scanOne(row *sql.Row) (Record, error) {
	var rec Record
	var raw []byte
	err := row.Scan(&rec.OwnerID, &rec.Username, &raw, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	if err := json.Unmarshal(raw, &rec.Document); err != nil {
		return Record{}, fmt.Errorf("unmarshal document: %w", err)
	}
	return rec, nil
}

var _ Repo = (*PGRepo)(nil)
