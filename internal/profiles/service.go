package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"biocard-backend/internal/assets"
	"biocard-backend/internal/shared/cache"
	"biocard-backend/internal/shared/telemetry"
)

// Service contains business logic for profile reads and updates.
type Service struct {
	Repo      Repo
	Store     assets.Store
	Lifecycle *Lifecycle
	Cache     cache.Cache
	CacheTTL  time.Duration
}

// Get returns the display form of a profile: every asset reference restored
// to its inline payload. Results are memoized in the read-through cache.
func (s *Service) Get(ctx context.Context, username string) (Profile, error) {
	key := cache.ProfileKey(username)
	data, err := s.Cache.GetOrCreate(ctx, key, s.CacheTTL, func(ctx context.Context) ([]byte, error) {
		rec, err := s.Repo.Load(ctx, username)
		if err != nil {
			return nil, err
		}
		display := s.Lifecycle.Restore(ctx, rec.Document)
		return json.Marshal(display)
	})
	if err != nil {
		return Profile{}, err
	}
	var display Profile
	if err := json.Unmarshal(data, &display); err != nil {
		return Profile{}, err
	}
	return display, nil
}

// Update replaces the owner's document with candidate: inline payloads are
// extracted to blobs, references diffed against the persisted state, and the
// whole commit plan applied in one transaction. The cached display document
// is invalidated on success.
func (s *Service) Update(ctx context.Context, ownerID uuid.UUID, candidate Profile) error {
	rec, err := s.Repo.LoadForUpdate(ctx, ownerID)
	if err != nil {
		return err
	}

	// The username is account identity, not profile content.
	candidate.Username = rec.Username

	plan, err := s.Lifecycle.PlanUpdate(ownerID, &rec.Document, &candidate)
	if err != nil {
		return err
	}
	if err := s.Repo.SaveTransactional(ctx, ownerID, candidate, plan); err != nil {
		return err
	}

	s.Cache.Remove(ctx, cache.ProfileKey(rec.Username))
	telemetry.Info("profile.updated", map[string]any{
		"owner_id":      ownerID.String(),
		"blobs_created": len(plan.Creates),
		"blobs_deleted": len(plan.Deletes),
	})
	return nil
}

// CreateEmpty provisions a fresh profile document for a new account.
func (s *Service) CreateEmpty(ctx context.Context, ownerID uuid.UUID, username string) error {
	return s.Repo.Create(ctx, Record{
		OwnerID:  ownerID,
		Username: username,
		Document: Profile{Username: username, Name: username},
	})
}

// DeleteOwner removes the owner's document and all of their blobs. Called on
// account deletion; a missing profile is not an error.
func (s *Service) DeleteOwner(ctx context.Context, ownerID uuid.UUID, username string) error {
	if err := s.Repo.Delete(ctx, ownerID); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	removed, err := s.Store.DeleteOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	s.Cache.Remove(ctx, cache.ProfileKey(username))
	telemetry.Info("profile.deleted", map[string]any{
		"owner_id":      ownerID.String(),
		"blobs_deleted": removed,
	})
	return nil
}

// StorageStats reports the owner's blob usage.
func (s *Service) StorageStats(ctx context.Context, ownerID uuid.UUID) (assets.OwnerStats, error) {
	return s.Store.OwnerStats(ctx, ownerID)
}
