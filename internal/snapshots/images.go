package snapshots

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	domaingames "github.com/preston-bernstein/game-library-service/internal/domain/games"
	"github.com/preston-bernstein/game-library-service/internal/uploads"
)

// CopyImages copies every uploaded image referenced by list from bucket into
// the export's uploads directory. Images missing from the bucket are reported
// rather than treated as failures.
func (w *Writer) CopyImages(ctx context.Context, bucket *blob.Bucket, list []domaingames.Game) (copied, missing []string, err error) {
	copied, missing = []string{}, []string{}
	seen := make(map[string]struct{})
	for _, g := range list {
		key, ok := uploads.KeyFromURL(g.ImageURL)
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		switch err := w.copyImage(ctx, bucket, key); {
		case err == nil:
			copied = append(copied, key)
		case gcerrors.Code(err) == gcerrors.NotFound:
			missing = append(missing, key)
		default:
			return nil, nil, err
		}
	}
	sort.Strings(copied)
	sort.Strings(missing)
	return copied, missing, nil
}

func (w *Writer) copyImage(ctx context.Context, bucket *blob.Bucket, key string) error {
	rd, err := bucket.NewReader(ctx, key, nil)
	if err != nil {
		return err
	}
	defer rd.Close()

	target := ImagePath(w.basePath, key)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	tmp := target + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, rd); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("copy image %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}
