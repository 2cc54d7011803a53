package profiles

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"biocard-backend/internal/assets"
)

// Lifecycle extracts inline payloads into the blob store on write, restores
// them on read, and reclaims blobs a document no longer references.
type Lifecycle struct {
	Store  assets.Store
	Policy assets.Policy
}

// Normalize rewrites every inline payload in doc to a reference token,
// returning the blob records to persist alongside the document. Validation
// failures abort the whole call before any blob is staged for commit; doc
// must be request-scoped since it is rewritten in place.
//
// Fields already holding a reference token are left untouched (a client
// echoing an unchanged asset). Plain text passes through unless the field is
// image-only, in which case any non-empty, non-image value is rejected.
func (l *Lifecycle) Normalize(ownerID uuid.UUID, doc *Profile) ([]assets.Blob, error) {
	var creates []assets.Blob
	for _, f := range doc.AssetFields() {
		value := f.Value()
		switch {
		case value == "":
			continue
		case assets.IsReferenceToken(value):
			continue
		case assets.IsInlinePayload(value):
			mimeType, data, err := assets.ParseInlinePayload(value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", f.Path, err)
			}
			if f.ImageOnly && !assets.IsImageMime(mimeType) {
				return nil, fmt.Errorf("%s: %w", f.Path, assets.ErrImageRequired)
			}
			if !l.Policy.AllowsType(mimeType) {
				return nil, fmt.Errorf("%s: %s: %w", f.Path, mimeType, assets.ErrDisallowedMimeType)
			}
			if !l.Policy.WithinSize(len(data)) {
				return nil, fmt.Errorf("%s: %d bytes: %w", f.Path, len(data), assets.ErrPayloadTooLarge)
			}
			blob := assets.NewBlob(ownerID, f.Category, mimeType, data)
			creates = append(creates, blob)
			f.Set(assets.FormatReferenceToken(blob.ID))
		default:
			if f.ImageOnly {
				return nil, fmt.Errorf("%s: %w", f.Path, assets.ErrImageRequired)
			}
		}
	}
	return creates, nil
}

// CollectReferenceIDs gathers the blob ids referenced by any asset field.
func CollectReferenceIDs(doc *Profile) map[uuid.UUID]struct{} {
	refs := make(map[uuid.UUID]struct{})
	for _, f := range doc.ReferenceFields() {
		if id, err := assets.ExtractReferenceID(f.Value()); err == nil {
			refs[id] = struct{}{}
		}
	}
	return refs
}

// PlanUpdate normalizes candidate and diffs its references against the
// persisted document: blobs referenced before but not after become orphan
// deletes. The returned plan must be committed in one transaction with the
// document save; nothing is persisted here.
//
// Note that a candidate round-tripped through Restore re-submits unchanged
// images inline, so every touched update mints fresh blob ids and orphans
// the old ones. Identical bytes are not detected or merged.
func (l *Lifecycle) PlanUpdate(ownerID uuid.UUID, existing, candidate *Profile) (assets.CommitPlan, error) {
	oldRefs := CollectReferenceIDs(existing)
	creates, err := l.Normalize(ownerID, candidate)
	if err != nil {
		return assets.CommitPlan{}, err
	}
	newRefs := CollectReferenceIDs(candidate)

	var orphans []uuid.UUID
	for id := range oldRefs {
		if _, ok := newRefs[id]; !ok {
			orphans = append(orphans, id)
		}
	}
	sort.Slice(orphans, func(i, j int) bool { return orphans[i].String() < orphans[j].String() })

	return assets.CommitPlan{Creates: creates, Deletes: orphans}, nil
}

// Restore returns a display copy of doc with every resolvable reference
// re-inlined. A missing blob leaves its raw token in place rather than
// failing the read; the persisted document is never mutated.
func (l *Lifecycle) Restore(ctx context.Context, doc Profile) Profile {
	out := doc.Clone()
	for _, f := range out.ReferenceFields() {
		id, err := assets.ExtractReferenceID(f.Value())
		if err != nil {
			continue
		}
		blob, err := l.Store.Get(ctx, id)
		if err != nil {
			continue
		}
		f.Set(assets.FormatInlinePayload(blob.MimeType, blob.Data))
	}
	return out
}
