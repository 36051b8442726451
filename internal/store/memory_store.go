package store

import (
	"context"
	"sync"
	"time"

	"github.com/preston-bernstein/game-library-service/internal/domain/admins"
	"github.com/preston-bernstein/game-library-service/internal/domain/games"
)

// MemoryStore keeps a thread-safe catalog and admin record in memory.
type MemoryStore struct {
	mu     sync.RWMutex
	games  map[int64]games.Game
	order  []int64
	nextID int64
	admin  *admins.Admin
	now    func() time.Time
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore(opts ...Option) *MemoryStore {
	o := buildOptions(opts)
	return &MemoryStore{
		games:  make(map[int64]games.Game),
		nextID: 1,
		now:    o.now,
	}
}

// Ping always succeeds.
func (s *MemoryStore) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }

// ListGames returns a copy of all games in insertion order.
func (s *MemoryStore) ListGames(ctx context.Context) ([]games.Game, error) {
	return s.FindGames(ctx, games.Query{})
}

// FindGames returns the games matching q in insertion order.
func (s *MemoryStore) FindGames(_ context.Context, q games.Query) ([]games.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]games.Game, 0, len(s.order))
	for _, id := range s.order {
		if g := s.games[id]; q.Matches(g) {
			result = append(result, g)
		}
	}
	return result, nil
}

// FeaturedGames returns the featured games in insertion order.
func (s *MemoryStore) FeaturedGames(_ context.Context) ([]games.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]games.Game, 0)
	for _, id := range s.order {
		if g := s.games[id]; g.Featured {
			result = append(result, g)
		}
	}
	return result, nil
}

// GetGame retrieves a game by ID.
func (s *MemoryStore) GetGame(_ context.Context, id int64) (games.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[id]
	if !ok {
		return games.Game{}, games.ErrNotFound
	}
	return g, nil
}

// CreateGame stores a new game under the next id.
func (s *MemoryStore) CreateGame(_ context.Context, in games.NewGame) (games.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := in.Build(s.nextID, timestamp(s.now))
	s.nextID++
	s.games[g.ID] = g
	s.order = append(s.order, g.ID)
	return g, nil
}

// UpdateGame merges p onto the stored game.
func (s *MemoryStore) UpdateGame(_ context.Context, id int64, p games.Patch) (games.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[id]
	if !ok {
		return games.Game{}, games.ErrNotFound
	}
	g = p.Apply(g)
	g.UpdatedAt = timestamp(s.now)
	s.games[id] = g
	return g, nil
}

// DeleteGame removes a game and reports whether it existed.
func (s *MemoryStore) DeleteGame(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[id]; !ok {
		return false, nil
	}
	delete(s.games, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// GetAdmin returns the admin record or admins.ErrNotFound.
func (s *MemoryStore) GetAdmin(_ context.Context) (admins.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.admin == nil {
		return admins.Admin{}, admins.ErrNotFound
	}
	return *s.admin, nil
}

// EnsureAdmin creates the admin unless one exists.
func (s *MemoryStore) EnsureAdmin(_ context.Context, passwordHash string) (admins.Admin, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.admin != nil {
		return *s.admin, false, nil
	}
	now := timestamp(s.now)
	s.admin = &admins.Admin{ID: admins.SingletonID, PasswordHash: passwordHash, CreatedAt: now, UpdatedAt: now}
	return *s.admin, true, nil
}

// UpsertAdmin creates the admin or replaces its password hash.
func (s *MemoryStore) UpsertAdmin(_ context.Context, passwordHash string) (admins.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := timestamp(s.now)
	if s.admin == nil {
		s.admin = &admins.Admin{ID: admins.SingletonID, CreatedAt: now}
	}
	s.admin.PasswordHash = passwordHash
	s.admin.UpdatedAt = now
	return *s.admin, nil
}
