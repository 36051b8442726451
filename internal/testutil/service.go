package testutil

import (
	"testing"

	"gocloud.dev/blob/memblob"
	"golang.org/x/crypto/bcrypt"

	"github.com/preston-bernstein/game-library-service/internal/app/admins"
	"github.com/preston-bernstein/game-library-service/internal/app/games"
	domaingames "github.com/preston-bernstein/game-library-service/internal/domain/games"
	"github.com/preston-bernstein/game-library-service/internal/metrics"
	"github.com/preston-bernstein/game-library-service/internal/store"
	"github.com/preston-bernstein/game-library-service/internal/uploads"
)

// AdminPassword is the bootstrap password used by NewCatalog.
const AdminPassword = "changeme"

// Catalog bundles the services behind the HTTP API, backed by in-memory
// storage and an in-memory bucket.
type Catalog struct {
	Store   *store.MemoryStore
	Games   *games.Service
	Admins  *admins.Service
	Images  *uploads.Images
	Metrics *metrics.Recorder
}

// NewCatalog builds a Catalog preloaded with the given games.
func NewCatalog(t testing.TB, seed ...domaingames.NewGame) *Catalog {
	t.Helper()
	rec := metrics.NewRecorder()
	ms := store.NewMemoryStore()
	bucket := memblob.OpenBucket(nil)
	images := uploads.New(bucket, uploads.DefaultMaxBytes, uploads.WithMetrics(rec))
	t.Cleanup(func() { _ = images.Close() })

	c := &Catalog{
		Store:   ms,
		Games:   games.NewService(ms, games.WithMetrics(rec)),
		Admins:  admins.NewService(ms, AdminPassword, bcrypt.MinCost, nil),
		Images:  images,
		Metrics: rec,
	}
	Seed(t, ms, seed...)
	return c
}

// NewServiceWithGames builds a games service backed by an in-memory store preloaded with games.
func NewServiceWithGames(t testing.TB, seed ...domaingames.NewGame) *games.Service {
	t.Helper()
	ms := store.NewMemoryStore()
	Seed(t, ms, seed...)
	return games.NewService(ms)
}
