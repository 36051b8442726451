package games

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/preston-bernstein/game-library-service/internal/cache"
	domaingames "github.com/preston-bernstein/game-library-service/internal/domain/games"
	"github.com/preston-bernstein/game-library-service/internal/logging"
	"github.com/preston-bernstein/game-library-service/internal/metrics"
)

// Store defines the contract for persisting and retrieving games.
type Store interface {
	ListGames(ctx context.Context) ([]domaingames.Game, error)
	FindGames(ctx context.Context, q domaingames.Query) ([]domaingames.Game, error)
	FeaturedGames(ctx context.Context) ([]domaingames.Game, error)
	GetGame(ctx context.Context, id int64) (domaingames.Game, error)
	CreateGame(ctx context.Context, in domaingames.NewGame) (domaingames.Game, error)
	UpdateGame(ctx context.Context, id int64, p domaingames.Patch) (domaingames.Game, error)
	DeleteGame(ctx context.Context, id int64) (bool, error)
}

// Cache keys for the listings served on every page load.
const (
	CacheKeyAll      = "games:all"
	CacheKeyFeatured = "games:featured"

	// CacheKeyGeneration changes on every mutation so that instances sharing
	// a cache can tell a listing was loaded before the change.
	CacheKeyGeneration = "games:generation"
)

// Store operation names used for metrics.
const (
	OpListGames     = "list_games"
	OpFindGames     = "find_games"
	OpFeaturedGames = "featured_games"
	OpGetGame       = "get_game"
	OpCreateGame    = "create_game"
	OpUpdateGame    = "update_game"
	OpDeleteGame    = "delete_game"
)

// Service coordinates game operations using a Store.
type Service struct {
	store     Store
	cache     cache.Cache
	ttl       time.Duration
	metrics   *metrics.Recorder
	logger    *slog.Logger
	validator *validator

	generation atomic.Uint64
}

// Option configures a Service.
type Option func(*Service)

// WithCache caches the full and featured listings for ttl.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
			s.ttl = ttl
		}
	}
}

// WithMetrics records store latency and errors on rec.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(s *Service) { s.metrics = rec }
}

// WithLogger sets the fallback logger used when the context carries none.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService constructs a Service with the provided Store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:     store,
		cache:     cache.Nop{},
		validator: mustValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AllGames returns every game in insertion order.
func (s *Service) AllGames(ctx context.Context) ([]domaingames.Game, error) {
	return s.cachedList(ctx, CacheKeyAll, OpListGames, s.store.ListGames)
}

// FeaturedGames returns the games flagged as featured.
func (s *Service) FeaturedGames(ctx context.Context) ([]domaingames.Game, error) {
	return s.cachedList(ctx, CacheKeyFeatured, OpFeaturedGames, s.store.FeaturedGames)
}

// Search returns the games matching q. An empty query returns AllGames.
func (s *Service) Search(ctx context.Context, q domaingames.Query) ([]domaingames.Game, error) {
	if q.IsEmpty() {
		return s.AllGames(ctx)
	}
	var out []domaingames.Game
	err := s.observe(OpFindGames, func() error {
		var err error
		out, err = s.store.FindGames(ctx, q)
		return err
	})
	return out, err
}

// GameByID returns a single game or domaingames.ErrNotFound.
func (s *Service) GameByID(ctx context.Context, id int64) (domaingames.Game, error) {
	if id <= 0 {
		return domaingames.Game{}, domaingames.ErrNotFound
	}
	var out domaingames.Game
	err := s.observe(OpGetGame, func() error {
		var err error
		out, err = s.store.GetGame(ctx, id)
		return err
	})
	return out, err
}

// CreateGame validates and stores a new game.
func (s *Service) CreateGame(ctx context.Context, in domaingames.NewGame) (domaingames.Game, error) {
	in = in.Trimmed()
	if err := s.validator.ValidateNew(in); err != nil {
		return domaingames.Game{}, err
	}
	var out domaingames.Game
	err := s.observe(OpCreateGame, func() error {
		var err error
		out, err = s.store.CreateGame(ctx, in)
		return err
	})
	if err != nil {
		return domaingames.Game{}, err
	}
	s.invalidate(ctx)
	logging.Info(logging.FromContext(ctx, s.logger), "game created", logging.FieldGameID, out.ID)
	return out, nil
}

// UpdateGame applies the set fields of p to the game with id.
func (s *Service) UpdateGame(ctx context.Context, id int64, p domaingames.Patch) (domaingames.Game, error) {
	if id <= 0 {
		return domaingames.Game{}, domaingames.ErrNotFound
	}
	p = p.Trimmed()
	if err := s.validator.ValidatePatch(p); err != nil {
		return domaingames.Game{}, err
	}
	var out domaingames.Game
	err := s.observe(OpUpdateGame, func() error {
		var err error
		out, err = s.store.UpdateGame(ctx, id, p)
		return err
	})
	if err != nil {
		return domaingames.Game{}, err
	}
	s.invalidate(ctx)
	logging.Info(logging.FromContext(ctx, s.logger), "game updated", logging.FieldGameID, out.ID)
	return out, nil
}

// DeleteGame removes the game with id and reports whether it existed.
func (s *Service) DeleteGame(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	var deleted bool
	err := s.observe(OpDeleteGame, func() error {
		var err error
		deleted, err = s.store.DeleteGame(ctx, id)
		return err
	})
	if err != nil {
		return false, err
	}
	if deleted {
		s.invalidate(ctx)
		logging.Info(logging.FromContext(ctx, s.logger), "game deleted", logging.FieldGameID, id)
	}
	return deleted, nil
}

func (s *Service) cachedList(ctx context.Context, key, op string, load func(context.Context) ([]domaingames.Game, error)) ([]domaingames.Game, error) {
	logger := logging.FromContext(ctx, s.logger)
	if raw, err := s.cache.Get(ctx, key); err == nil {
		var list []domaingames.Game
		if err := json.Unmarshal(raw, &list); err == nil {
			s.metrics.RecordCacheLookup(true)
			return list, nil
		}
		logging.Warn(logger, "discarding unreadable cache entry", logging.FieldCache, key)
	} else if !errors.Is(err, cache.ErrMiss) {
		logging.Warn(logger, "cache lookup failed", logging.FieldCache, key, logging.FieldError, err)
	}
	s.metrics.RecordCacheLookup(false)
	logging.Debug(logger, "listing cache miss", logging.FieldCache, key)

	mark := s.generationMark(ctx)
	var list []domaingames.Game
	err := s.observe(op, func() error {
		var err error
		list, err = load(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.storeListing(ctx, key, list, mark)
	return list, nil
}

// storeListing caches list unless a mutation happened since mark was taken.
// The generation is read again after the write because a concurrent
// invalidate may have deleted the keys just before Set.
func (s *Service) storeListing(ctx context.Context, key string, list []domaingames.Game, mark string) {
	logger := logging.FromContext(ctx, s.logger)
	if s.generationMark(ctx) != mark {
		logging.Debug(logger, "skipping stale listing", logging.FieldCache, key)
		return
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
		logging.Warn(logger, "cache store failed", logging.FieldCache, key, logging.FieldError, err)
		return
	}
	if s.generationMark(ctx) != mark {
		if err := s.cache.Delete(ctx, key); err != nil {
			logging.Warn(logger, "cache invalidation failed", logging.FieldCache, key, logging.FieldError, err)
		}
	}
}

// generationMark combines the local mutation counter with the shared
// generation key.
func (s *Service) generationMark(ctx context.Context) string {
	local := strconv.FormatUint(s.generation.Load(), 10)
	shared, err := s.cache.Get(ctx, CacheKeyGeneration)
	if err != nil {
		return local
	}
	return local + "/" + string(shared)
}

// invalidate bumps the generation before deleting so that a load finishing
// in between sees the change.
func (s *Service) invalidate(ctx context.Context) {
	logger := logging.FromContext(ctx, s.logger)
	gen := s.generation.Add(1)
	token := strconv.FormatInt(time.Now().UnixNano(), 36) + "-" + strconv.FormatUint(gen, 36)
	if err := s.cache.Set(ctx, CacheKeyGeneration, []byte(token), 0); err != nil {
		logging.Warn(logger, "cache generation update failed", logging.FieldError, err)
	}
	if err := s.cache.Delete(ctx, CacheKeyAll, CacheKeyFeatured); err != nil {
		logging.Warn(logger, "cache invalidation failed", logging.FieldError, err)
	}
}

func (s *Service) observe(op string, fn func() error) error {
	start := time.Now()
	err := fn()
	var recorded error
	if err != nil && !errors.Is(err, domaingames.ErrNotFound) {
		recorded = err
	}
	s.metrics.RecordStoreOp(op, time.Since(start), recorded)
	return err
}
