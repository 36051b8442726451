package uploads

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

// OpenBucket opens target as a gocloud bucket. A value containing "://" is a
// bucket URL (file://, mem://, s3://); anything else is a local directory
// that is created when missing.
func OpenBucket(ctx context.Context, target string) (*blob.Bucket, error) {
	target = strings.TrimSpace(target)
	if strings.Contains(target, "://") {
		b, err := blob.OpenBucket(ctx, target)
		if err != nil {
			return nil, fmt.Errorf("open bucket: %w", err)
		}
		return b, nil
	}
	if target == "" {
		target = DefaultDir
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return nil, fmt.Errorf("ensure uploads dir: %w", err)
	}
	b, err := fileblob.OpenBucket(target, nil)
	if err != nil {
		return nil, fmt.Errorf("open uploads dir: %w", err)
	}
	return b, nil
}
