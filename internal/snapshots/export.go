// Package snapshots exports the catalog as static files that can be served
// without the API.
package snapshots

import (
	"context"
	"fmt"
	"log/slog"

	"gocloud.dev/blob"

	domaingames "github.com/preston-bernstein/game-library-service/internal/domain/games"
	"github.com/preston-bernstein/game-library-service/internal/logging"
)

// Source lists the games to export.
type Source interface {
	AllGames(ctx context.Context) ([]domaingames.Game, error)
}

// Export writes the catalog from src and its images from bucket under w's root.
// bucket may be nil to skip images.
func Export(ctx context.Context, w *Writer, src Source, bucket *blob.Bucket, logger *slog.Logger) (Manifest, error) {
	list, err := src.AllGames(ctx)
	if err != nil {
		return Manifest{}, fmt.Errorf("load games: %w", err)
	}
	m, err := w.WriteCatalog(list)
	if err != nil {
		return Manifest{}, fmt.Errorf("write catalog: %w", err)
	}
	if bucket != nil {
		copied, missing, err := w.CopyImages(ctx, bucket, list)
		if err != nil {
			return Manifest{}, fmt.Errorf("copy images: %w", err)
		}
		m.Images, m.MissingImages = copied, missing
		for _, key := range missing {
			logging.Warn(logger, "image missing from bucket", logging.FieldImage, key)
		}
	}
	if err := w.WriteManifest(m); err != nil {
		return Manifest{}, fmt.Errorf("write manifest: %w", err)
	}
	logging.Info(logger, "catalog exported",
		"path", w.BasePath(),
		logging.FieldCount, m.Games.Count,
		"images", len(m.Images),
	)
	return m, nil
}
