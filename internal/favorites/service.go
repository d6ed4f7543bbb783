package favorites

import (
	"context"
	"sync"

	pkgerrors "github.com/lyvest/lyvest-backend/pkg/errors"
	"github.com/lyvest/lyvest-backend/pkg/logger"
	"github.com/lyvest/lyvest-backend/pkg/metrics"
	"github.com/lyvest/lyvest-backend/pkg/outbox"
	"github.com/lyvest/lyvest-backend/pkg/types"
)

// MaxFavorites bounds the favorites set.
const MaxFavorites = 100

// RemoteStore is the hosted favorites collaborator. Implementations are only
// invoked with remote-shaped (UUID) product identifiers.
type RemoteStore interface {
	List(ctx context.Context, userID string) ([]types.ProductID, error)
	Insert(ctx context.Context, userID string, productID types.ProductID) error
	InsertBatch(ctx context.Context, userID string, productIDs []types.ProductID) error
	Delete(ctx context.Context, userID string, productID types.ProductID) error
}

// StorageSlot is the local persistence surface.
type StorageSlot interface {
	Load(ctx context.Context) []types.ProductID
	Save(ctx context.Context, ids []types.ProductID)
}

// Publisher enqueues fire-and-forget remote push events.
type Publisher interface {
	Publish(ctx context.Context, event outbox.Event) bool
}

// Service exposes the favorites engine. Mutations are synchronous against
// in-memory state; local persistence and remote pushes are best-effort side
// effects that never fail the caller.
type Service interface {
	Toggle(ctx context.Context, id types.ProductID) bool
	Add(ctx context.Context, id types.ProductID)
	Remove(ctx context.Context, id types.ProductID)
	IsFavorite(id types.ProductID) bool
	List() []types.ProductID
	Count() int
	Clear(ctx context.Context)
	SetSessionUser(userID string)
	SyncWithSession(ctx context.Context, userID string) error
}

// ServiceParams groups dependencies for the favorites engine.
type ServiceParams struct {
	Slot    StorageSlot
	Remote  RemoteStore
	Queue   Publisher
	Logger  *logger.Logger
	Metrics *metrics.EngineMetrics

	// ClearRemote also wipes the remote store on Clear. Defaults to the
	// observed local-only behavior.
	ClearRemote bool
}

type service struct {
	mu          sync.Mutex
	order       []types.ProductID
	members     map[types.ProductID]struct{}
	sessionUser string

	slot        StorageSlot
	remote      RemoteStore
	queue       Publisher
	logg        *logger.Logger
	metrics     *metrics.EngineMetrics
	clearRemote bool
}

// NewService builds the favorites engine and rehydrates state from storage.
func NewService(ctx context.Context, params ServiceParams) Service {
	s := &service{
		members:     map[types.ProductID]struct{}{},
		slot:        params.Slot,
		remote:      params.Remote,
		queue:       params.Queue,
		logg:        params.Logger,
		metrics:     params.Metrics,
		clearRemote: params.ClearRemote,
	}
	if s.slot != nil {
		for _, id := range s.slot.Load(ctx) {
			if _, ok := s.members[id]; ok {
				continue
			}
			if len(s.order) >= MaxFavorites {
				break
			}
			s.order = append(s.order, id)
			s.members[id] = struct{}{}
		}
	}
	return s
}

func (s *service) Toggle(ctx context.Context, id types.ProductID) bool {
	if !id.Valid() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[id]; ok {
		s.removeLocked(ctx, id)
		return false
	}
	return s.addLocked(ctx, id)
}

func (s *service) Add(ctx context.Context, id types.ProductID) {
	if !id.Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(ctx, id)
}

func (s *service) Remove(ctx context.Context, id types.ProductID) {
	if !id.Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[id]; !ok {
		return
	}
	s.removeLocked(ctx, id)
}

func (s *service) IsFavorite(id types.ProductID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.members[id]
	return ok
}

func (s *service) List() []types.ProductID {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.ProductID, len(s.order))
	copy(out, s.order)
	return out
}

func (s *service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Clear empties the local set. The remote store is only touched when the
// engine was configured for it; those deletes ride the same best-effort
// outbox path as single removals.
func (s *service) Clear(ctx context.Context) {
	s.mu.Lock()
	snapshot := s.order
	s.order = nil
	s.members = map[types.ProductID]struct{}{}
	s.persistLocked(ctx)
	user := s.sessionUser
	s.mu.Unlock()

	s.count("clear")

	if !s.clearRemote || user == "" {
		return
	}
	for _, id := range snapshot {
		if id.RemoteShaped() {
			s.publish(ctx, outbox.NewEvent(outbox.KindFavoriteRemoved, user, id.String()))
		}
	}
}

func (s *service) SetSessionUser(userID string) {
	s.mu.Lock()
	s.sessionUser = userID
	s.mu.Unlock()
}

// SyncWithSession reconciles local and remote favorites once a session user
// becomes available. Local-only remote-shaped ids are pushed as a batch; the
// local set becomes the union, so neither side loses entries. Calling it
// again with unchanged state pushes nothing.
func (s *service) SyncWithSession(ctx context.Context, userID string) error {
	if userID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session user is required")
	}

	s.SetSessionUser(userID)

	if s.remote == nil {
		return nil
	}

	remoteIDs, err := s.remote.List(ctx, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list remote favorites")
	}

	remoteSet := make(map[types.ProductID]struct{}, len(remoteIDs))
	for _, id := range remoteIDs {
		remoteSet[id] = struct{}{}
	}

	s.mu.Lock()
	var toPush []types.ProductID
	for _, id := range s.order {
		if _, ok := remoteSet[id]; !ok && id.RemoteShaped() {
			toPush = append(toPush, id)
		}
	}
	for _, id := range remoteIDs {
		if _, ok := s.members[id]; ok {
			continue
		}
		if len(s.order) >= MaxFavorites {
			break
		}
		s.order = append(s.order, id)
		s.members[id] = struct{}{}
	}
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.count("sync")

	if len(toPush) == 0 {
		return nil
	}
	if err := s.remote.InsertBatch(ctx, userID, toPush); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "push local favorites")
	}
	return nil
}

// addLocked reports whether the id was added. Callers hold the lock.
func (s *service) addLocked(ctx context.Context, id types.ProductID) bool {
	if _, ok := s.members[id]; ok {
		return false
	}
	if len(s.order) >= MaxFavorites {
		return false
	}
	s.order = append(s.order, id)
	s.members[id] = struct{}{}
	s.persistLocked(ctx)
	s.count("add")
	s.publishMutation(ctx, outbox.KindFavoriteAdded, id)
	return true
}

func (s *service) removeLocked(ctx context.Context, id types.ProductID) {
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	delete(s.members, id)
	s.persistLocked(ctx)
	s.count("remove")
	s.publishMutation(ctx, outbox.KindFavoriteRemoved, id)
}

func (s *service) persistLocked(ctx context.Context) {
	if s.slot == nil {
		return
	}
	snapshot := make([]types.ProductID, len(s.order))
	copy(snapshot, s.order)
	s.slot.Save(ctx, snapshot)
}

// publishMutation is called with the lock held; the queue publish itself
// never blocks.
func (s *service) publishMutation(ctx context.Context, kind outbox.Kind, id types.ProductID) {
	if s.sessionUser == "" || !id.RemoteShaped() {
		return
	}
	s.publish(ctx, outbox.NewEvent(kind, s.sessionUser, id.String()))
}

func (s *service) publish(ctx context.Context, event outbox.Event) {
	if s.queue == nil {
		return
	}
	s.queue.Publish(ctx, event)
}

func (s *service) count(op string) {
	s.metrics.IncOperation("favorites", op)
}

// ValidID is the predicate shared with the storage slot.
func ValidID(id types.ProductID) bool {
	return id.Valid()
}
