package assets

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store implementation.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[uuid.UUID]Blob
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[uuid.UUID]Blob)}
}

func (s *MemoryStore) Put(ctx context.Context, blob Blob) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[blob.ID] = blob
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return Blob{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[id]
	if !ok {
		return Blob{}, ErrNotFound
	}
	return blob, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[id]; !ok {
		return false, nil
	}
	delete(s.blobs, id)
	return true, nil
}

func (s *MemoryStore) DeleteOwnerCategory(ctx context.Context, ownerID uuid.UUID, category string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, blob := range s.blobs {
		if blob.OwnerID == ownerID && blob.Category == category {
			delete(s.blobs, id)
			removed++
		}
	}
	return removed, nil
}

func (s *MemoryStore) DeleteOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, blob := range s.blobs {
		if blob.OwnerID == ownerID {
			delete(s.blobs, id)
			removed++
		}
	}
	return removed, nil
}

func (s *MemoryStore) OwnerStats(ctx context.Context, ownerID uuid.UUID) (OwnerStats, error) {
	if err := ctx.Err(); err != nil {
		return OwnerStats{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var stats OwnerStats
	for _, blob := range s.blobs {
		if blob.OwnerID == ownerID {
			stats.TotalBytes += blob.SizeBytes
			stats.BlobCount++
		}
	}
	return stats, nil
}

var _ Store = (*MemoryStore)(nil)
