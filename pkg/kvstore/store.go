package kvstore

import (
	"context"
	"encoding/json"

	"github.com/lyvest/lyvest-backend/pkg/logger"
)

// Backend is the byte-level surface a slot persists through. Implementations
// must tolerate concurrent use.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
}

// Slot is a named storage slot holding a JSON-encoded list of T. The same
// validation predicate guards both load and save, so what is accepted is
// exactly what gets persisted. Neither Load nor Save ever surfaces an error:
// corrupt payloads self-heal to empty and failed writes are logged and
// swallowed, leaving the in-memory state authoritative.
type Slot[T any] struct {
	backend  Backend
	key      string
	valid    func(T) bool
	maxItems int
	logg     *logger.Logger
}

func NewSlot[T any](backend Backend, key string, valid func(T) bool, maxItems int, logg *logger.Logger) *Slot[T] {
	return &Slot[T]{
		backend:  backend,
		key:      key,
		valid:    valid,
		maxItems: maxItems,
		logg:     logg,
	}
}

// Load reads and validates the slot contents. Absent, malformed, or
// non-array payloads yield an empty list; malformed payloads additionally
// clear the slot.
func (s *Slot[T]) Load(ctx context.Context) []T {
	if s == nil || s.backend == nil {
		return nil
	}

	raw, found, err := s.backend.Get(ctx, s.key)
	if err != nil {
		s.warn(ctx, "slot read failed", err)
		return nil
	}
	if !found {
		return nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		s.warn(ctx, "slot payload corrupt, clearing", err)
		if delErr := s.backend.Del(ctx, s.key); delErr != nil {
			s.warn(ctx, "slot clear failed", delErr)
		}
		return nil
	}

	return s.filter(items)
}

// Save validates, truncates, and writes the items. Invalid entries are
// dropped and write failures swallowed.
func (s *Slot[T]) Save(ctx context.Context, items []T) {
	if s == nil || s.backend == nil {
		return
	}

	accepted := s.filter(items)
	if accepted == nil {
		accepted = []T{}
	}

	raw, err := json.Marshal(accepted)
	if err != nil {
		s.warn(ctx, "slot encode failed", err)
		return
	}
	if err := s.backend.Set(ctx, s.key, raw); err != nil {
		s.warn(ctx, "slot write failed", err)
	}
}

// Clear removes the slot contents. Failures are swallowed like writes.
func (s *Slot[T]) Clear(ctx context.Context) {
	if s == nil || s.backend == nil {
		return
	}
	if err := s.backend.Del(ctx, s.key); err != nil {
		s.warn(ctx, "slot clear failed", err)
	}
}

func (s *Slot[T]) filter(items []T) []T {
	if items == nil {
		return nil
	}
	accepted := make([]T, 0, len(items))
	for _, item := range items {
		if s.valid != nil && !s.valid(item) {
			continue
		}
		if s.maxItems > 0 && len(accepted) >= s.maxItems {
			break
		}
		accepted = append(accepted, item)
	}
	return accepted
}

func (s *Slot[T]) warn(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithSlot(ctx, s.key)
	ctx = s.logg.WithField(ctx, "error", err.Error())
	s.logg.Warn(ctx, msg)
}
