package testutil

import (
	"context"
	"testing"

	domaingames "github.com/preston-bernstein/game-library-service/internal/domain/games"
)

// GameCreator is satisfied by both the stores and the games service.
type GameCreator interface {
	CreateGame(ctx context.Context, in domaingames.NewGame) (domaingames.Game, error)
}

// SampleGame returns a complete NewGame fixture.
func SampleGame(title, category string, featured bool) domaingames.NewGame {
	return domaingames.NewGame{
		Title:       title,
		Description: title + " description",
		Category:    category,
		ImageURL:    "/uploads/" + category + ".jpg",
		DownloadURL: "https://example.com/downloads/" + category + ".zip",
		FileSize:    "1.0 GB",
		ReleaseDate: "2023-01-01",
		Featured:    featured,
	}
}

// SampleCatalog is the three-game catalog used across handler and service tests.
func SampleCatalog() []domaingames.NewGame {
	return domaingames.SampleCatalog()
}

// Seed creates each game through c and returns the stored records in order.
func Seed(t testing.TB, c GameCreator, in ...domaingames.NewGame) []domaingames.Game {
	t.Helper()
	out := make([]domaingames.Game, 0, len(in))
	for _, g := range in {
		created, err := c.CreateGame(context.Background(), g)
		if err != nil {
			t.Fatalf("seed %q: %v", g.Title, err)
		}
		out = append(out, created)
	}
	return out
}
