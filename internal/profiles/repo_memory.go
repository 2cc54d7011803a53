package profiles

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"biocard-backend/internal/assets"
)

// MemoryRepo is an in-memory Repo paired with an in-memory blob store, so a
// commit plan applies to both under one lock.
type MemoryRepo struct {
	mu      sync.RWMutex
	byOwner map[uuid.UUID]Record
	store   *assets.MemoryStore
}

// NewMemoryRepo constructs a MemoryRepo applying commit plans to store.
func NewMemoryRepo(store *assets.MemoryStore) *MemoryRepo {
	return &MemoryRepo{
		byOwner: make(map[uuid.UUID]Record),
		store:   store,
	}
}

func (r *MemoryRepo) Create(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.UpdatedAt = time.Now().UTC()
	r.byOwner[rec.OwnerID] = rec
	return nil
}

func (r *MemoryRepo) Load(ctx context.Context, username string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.byOwner {
		if strings.EqualFold(rec.Username, username) {
			return rec, nil
		}
	}
	return Record{}, ErrNotFound
}

func (r *MemoryRepo) LoadForUpdate(ctx context.Context, ownerID uuid.UUID) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byOwner[ownerID]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *MemoryRepo) SaveTransactional(ctx context.Context, ownerID uuid.UUID, doc Profile, plan assets.CommitPlan) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.byOwner[ownerID]
	if !ok {
		return ErrNotFound
	}
	for _, blob := range plan.Creates {
		if err := r.store.Put(ctx, blob); err != nil {
			return err
		}
	}
	for _, id := range plan.Deletes {
		if _, err := r.store.Delete(ctx, id); err != nil {
			return err
		}
	}
	rec.Document = doc
	rec.UpdatedAt = time.Now().UTC()
	r.byOwner[ownerID] = rec
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, ownerID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byOwner[ownerID]; !ok {
		return ErrNotFound
	}
	delete(r.byOwner, ownerID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
