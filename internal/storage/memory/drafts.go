package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/storefront-checkout/internal/domain/errors"
	"github.com/polkiloo/storefront-checkout/internal/domain/model"
)

type draftEntry struct {
	draft     *model.OrderDraft
	expiresAt time.Time
}

// DraftStore keeps checkout drafts in process memory. Expired entries are
// dropped when they are next read.
type DraftStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID]draftEntry
	now     func() time.Time
}

// NewDraftStore constructs an empty store using the wall clock.
func NewDraftStore() *DraftStore {
	return NewDraftStoreWithClock(time.Now)
}

// NewDraftStoreWithClock constructs an empty store using now as its clock.
func NewDraftStoreWithClock(now func() time.Time) *DraftStore {
	if now == nil {
		now = time.Now
	}
	return &DraftStore{entries: make(map[uuid.UUID]draftEntry), now: now}
}

// Get returns a copy of the stored draft.
func (s *DraftStore) Get(ctx context.Context, id uuid.UUID) (*model.OrderDraft, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		delete(s.entries, id)
		return nil, domainErrors.ErrNotFound
	}
	return entry.draft.Clone(), nil
}

// Save stores a copy of draft. A non-positive ttl keeps it until deleted.
func (s *DraftStore) Save(ctx context.Context, draft *model.OrderDraft, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if draft == nil {
		return domainErrors.ErrNotFound
	}
	entry := draftEntry{draft: draft.Clone()}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[draft.ID] = entry
	s.mu.Unlock()
	return nil
}

// Delete removes the draft. Deleting a missing draft is not an error.
func (s *DraftStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}

// Len returns the number of entries held, expired ones included.
func (s *DraftStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
