package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/game-library-service/internal/domain/admins"
	"github.com/preston-bernstein/game-library-service/internal/domain/games"
)

type manualClock struct {
	mu sync.Mutex
	t  time.Time
}

func newManualClock() *manualClock {
	return &manualClock{t: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type backendFactory func(t *testing.T, clock *manualClock) Backend

func newGame(title, category string, featured bool) games.NewGame {
	return games.NewGame{
		Title:       title,
		Description: title + " description",
		Category:    category,
		ImageURL:    "/uploads/" + title + ".png",
		DownloadURL: "https://example.com/" + title + ".zip",
		FileSize:    "1.0 GB",
		ReleaseDate: "2023-01-01",
		Featured:    featured,
	}
}

func seedScenario(t *testing.T, b Backend) (games.Game, games.Game) {
	t.Helper()
	ctx := context.Background()
	zoo, err := b.CreateGame(ctx, newGame("Zoochosis", "horror", true))
	if err != nil {
		t.Fatalf("create zoochosis: %v", err)
	}
	orbital, err := b.CreateGame(ctx, newGame("Orbital Mercenary", "action", false))
	if err != nil {
		t.Fatalf("create orbital: %v", err)
	}
	return zoo, orbital
}

func gameIDs(list []games.Game) []int64 {
	out := make([]int64, 0, len(list))
	for _, g := range list {
		out = append(out, g.ID)
	}
	return out
}

func sameIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameContent(a, b games.Game) bool {
	return a.ID == b.ID && a.Title == b.Title && a.Description == b.Description &&
		a.Category == b.Category && a.ImageURL == b.ImageURL && a.DownloadURL == b.DownloadURL &&
		a.FileSize == b.FileSize && a.ReleaseDate == b.ReleaseDate && a.Featured == b.Featured
}

func runBackendContract(t *testing.T, factory backendFactory) {
	t.Run("create then get round trips", func(t *testing.T) {
		clock := newManualClock()
		b := factory(t, clock)
		ctx := context.Background()

		in := newGame("Pixel Kingdom", "rpg", true)
		created, err := b.CreateGame(ctx, in)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if created.ID <= 0 {
			t.Fatalf("expected store-assigned id, got %d", created.ID)
		}
		if !created.CreatedAt.Equal(clock.Now()) || !created.UpdatedAt.Equal(clock.Now()) {
			t.Fatalf("expected timestamps at %s, got %s / %s", clock.Now(), created.CreatedAt, created.UpdatedAt)
		}

		got, err := b.GetGame(ctx, created.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if !sameContent(got, in.Build(created.ID, clock.Now())) {
			t.Fatalf("round trip mismatch\nwant %+v\ngot  %+v", in, got)
		}
		if !got.CreatedAt.Equal(created.CreatedAt) {
			t.Fatalf("expected createdAt %s, got %s", created.CreatedAt, got.CreatedAt)
		}
	})

	t.Run("ids are unique and increasing", func(t *testing.T) {
		b := factory(t, newManualClock())
		ctx := context.Background()
		seen := map[int64]bool{}
		var last int64
		for i := 0; i < 5; i++ {
			g, err := b.CreateGame(ctx, newGame("g", "action", false))
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if seen[g.ID] || g.ID <= last {
				t.Fatalf("expected fresh increasing id, got %d after %d", g.ID, last)
			}
			seen[g.ID] = true
			last = g.ID
		}
	})

	t.Run("get missing returns not found", func(t *testing.T) {
		b := factory(t, newManualClock())
		if _, err := b.GetGame(context.Background(), 404); !errors.Is(err, games.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list preserves insertion order", func(t *testing.T) {
		b := factory(t, newManualClock())
		zoo, orbital := seedScenario(t, b)
		list, err := b.ListGames(context.Background())
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if !sameIDs(gameIDs(list), []int64{zoo.ID, orbital.ID}) {
			t.Fatalf("unexpected order %v", gameIDs(list))
		}
	})

	t.Run("featured and search scenario", func(t *testing.T) {
		b := factory(t, newManualClock())
		ctx := context.Background()
		zoo, orbital := seedScenario(t, b)

		featured, err := b.FeaturedGames(ctx)
		if err != nil {
			t.Fatalf("featured: %v", err)
		}
		if !sameIDs(gameIDs(featured), []int64{zoo.ID}) {
			t.Fatalf("expected only zoochosis featured, got %v", gameIDs(featured))
		}

		cases := []struct {
			q    games.Query
			want []int64
		}{
			{games.NewQuery("orbital", "action"), []int64{orbital.ID}},
			{games.NewQuery("orbital", "rpg"), []int64{}},
			{games.NewQuery("", ""), []int64{zoo.ID, orbital.ID}},
			{games.NewQuery("", games.CategoryAll), []int64{zoo.ID, orbital.ID}},
			{games.NewQuery("ZOO", ""), []int64{zoo.ID}},
			{games.NewQuery("description", "horror"), []int64{zoo.ID}},
			{games.NewQuery("", "unknown-category"), []int64{}},
			{games.NewQuery("%", ""), []int64{}},
			{games.NewQuery("_", ""), []int64{}},
		}
		for _, tc := range cases {
			got, err := b.FindGames(ctx, tc.q)
			if err != nil {
				t.Fatalf("find %+v: %v", tc.q, err)
			}
			if !sameIDs(gameIDs(got), tc.want) {
				t.Fatalf("find %+v: expected %v, got %v", tc.q, tc.want, gameIDs(got))
			}
		}
	})

	t.Run("search matches wildcard characters literally", func(t *testing.T) {
		b := factory(t, newManualClock())
		ctx := context.Background()
		if _, err := b.CreateGame(ctx, newGame("100% Orange", "puzzle", false)); err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := b.CreateGame(ctx, newGame("1000 Oranges", "puzzle", false)); err != nil {
			t.Fatalf("create: %v", err)
		}
		got, err := b.FindGames(ctx, games.NewQuery("0% o", ""))
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if len(got) != 1 || got[0].Title != "100% Orange" {
			t.Fatalf("expected literal percent match, got %+v", got)
		}
	})

	t.Run("update featured only changes featured and updatedAt", func(t *testing.T) {
		clock := newManualClock()
		b := factory(t, clock)
		ctx := context.Background()
		_, orbital := seedScenario(t, b)

		clock.Advance(time.Hour)
		updated, err := b.UpdateGame(ctx, orbital.ID, games.Patch{Featured: games.Some(true)})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		want := orbital
		want.Featured = true
		if !sameContent(updated, want) {
			t.Fatalf("unexpected update\nwant %+v\ngot  %+v", want, updated)
		}
		if !updated.CreatedAt.Equal(orbital.CreatedAt) {
			t.Fatalf("expected createdAt unchanged, got %s", updated.CreatedAt)
		}
		if !updated.UpdatedAt.Equal(clock.Now()) {
			t.Fatalf("expected updatedAt %s, got %s", clock.Now(), updated.UpdatedAt)
		}

		stored, err := b.GetGame(ctx, orbital.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if !sameContent(stored, want) {
			t.Fatalf("expected persisted update, got %+v", stored)
		}
	})

	t.Run("update can clear featured", func(t *testing.T) {
		b := factory(t, newManualClock())
		ctx := context.Background()
		zoo, _ := seedScenario(t, b)
		updated, err := b.UpdateGame(ctx, zoo.ID, games.Patch{Featured: games.Some(false), Title: games.Some("Zoo")})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Featured || updated.Title != "Zoo" || updated.Category != "horror" {
			t.Fatalf("unexpected update %+v", updated)
		}
	})

	t.Run("update missing returns not found", func(t *testing.T) {
		b := factory(t, newManualClock())
		_, err := b.UpdateGame(context.Background(), 99, games.Patch{Title: games.Some("x")})
		if !errors.Is(err, games.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delete then get returns not found", func(t *testing.T) {
		b := factory(t, newManualClock())
		ctx := context.Background()
		zoo, orbital := seedScenario(t, b)

		deleted, err := b.DeleteGame(ctx, zoo.ID)
		if err != nil || !deleted {
			t.Fatalf("expected delete to succeed, got %v %v", deleted, err)
		}
		if _, err := b.GetGame(ctx, zoo.ID); !errors.Is(err, games.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
		again, err := b.DeleteGame(ctx, zoo.ID)
		if err != nil || again {
			t.Fatalf("expected second delete to report false without error, got %v %v", again, err)
		}
		list, _ := b.ListGames(ctx)
		if !sameIDs(gameIDs(list), []int64{orbital.ID}) {
			t.Fatalf("expected only orbital left, got %v", gameIDs(list))
		}
	})

	t.Run("admin ensure and upsert keep a single record", func(t *testing.T) {
		clock := newManualClock()
		b := factory(t, clock)
		ctx := context.Background()

		if _, err := b.GetAdmin(ctx); !errors.Is(err, admins.ErrNotFound) {
			t.Fatalf("expected ErrNotFound before bootstrap, got %v", err)
		}

		first, created, err := b.EnsureAdmin(ctx, "hash-1")
		if err != nil || !created {
			t.Fatalf("expected admin to be created, got %v %v", created, err)
		}
		if first.ID != admins.SingletonID || first.PasswordHash != "hash-1" {
			t.Fatalf("unexpected admin %+v", first)
		}

		second, created, err := b.EnsureAdmin(ctx, "hash-2")
		if err != nil || created {
			t.Fatalf("expected existing admin to be kept, got %v %v", created, err)
		}
		if second.PasswordHash != "hash-1" {
			t.Fatalf("expected ensure to keep original hash, got %q", second.PasswordHash)
		}

		clock.Advance(time.Minute)
		updated, err := b.UpsertAdmin(ctx, "hash-3")
		if err != nil {
			t.Fatalf("upsert: %v", err)
		}
		if updated.ID != admins.SingletonID || updated.PasswordHash != "hash-3" {
			t.Fatalf("unexpected upserted admin %+v", updated)
		}
		if !updated.CreatedAt.Equal(first.CreatedAt) {
			t.Fatalf("expected createdAt preserved, got %s want %s", updated.CreatedAt, first.CreatedAt)
		}
		if !updated.UpdatedAt.Equal(clock.Now()) {
			t.Fatalf("expected updatedAt refreshed, got %s", updated.UpdatedAt)
		}
	})

	t.Run("upsert creates the admin when absent", func(t *testing.T) {
		b := factory(t, newManualClock())
		ctx := context.Background()
		a, err := b.UpsertAdmin(ctx, "fresh")
		if err != nil {
			t.Fatalf("upsert: %v", err)
		}
		got, err := b.GetAdmin(ctx)
		if err != nil || got.PasswordHash != "fresh" || got.ID != a.ID {
			t.Fatalf("expected stored admin, got %+v %v", got, err)
		}
	})

	t.Run("concurrent admin writers leave one row", func(t *testing.T) {
		b := factory(t, newManualClock())
		ctx := context.Background()
		var wg sync.WaitGroup
		errs := make(chan error, 10)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				var err error
				if i%2 == 0 {
					_, _, err = b.EnsureAdmin(ctx, "ensure")
				} else {
					_, err = b.UpsertAdmin(ctx, "upsert")
				}
				errs <- err
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			if err != nil {
				t.Fatalf("concurrent admin write failed: %v", err)
			}
		}
		if _, err := b.GetAdmin(ctx); err != nil {
			t.Fatalf("expected admin after concurrent writes, got %v", err)
		}
		if g, ok := b.(*GormStore); ok {
			var count int64
			if err := g.db.Model(&adminRecord{}).Count(&count).Error; err != nil {
				t.Fatalf("count admins: %v", err)
			}
			if count != 1 {
				t.Fatalf("expected exactly one admin row, got %d", count)
			}
		}
	})

	t.Run("ping succeeds", func(t *testing.T) {
		b := factory(t, newManualClock())
		if err := b.Ping(context.Background()); err != nil {
			t.Fatalf("ping: %v", err)
		}
	})
}
