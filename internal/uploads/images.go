// Package uploads stores and serves game cover images.
package uploads

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"mime"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	"github.com/preston-bernstein/game-library-service/internal/metrics"
)

const (
	// PublicPrefix is the URL path under which stored images are served.
	PublicPrefix = "/uploads/"
	// DefaultDir is the local directory used when no bucket is configured.
	DefaultDir = "data/uploads"
	// DefaultMaxBytes caps image size at 5 MiB.
	DefaultMaxBytes int64 = 5 << 20

	maxRandomSuffix = 1_000_000_000
)

var imageTypes = map[string]bool{
	"jpeg": true,
	"jpg":  true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// Images validates uploads and stores them in a blob bucket.
type Images struct {
	bucket   *blob.Bucket
	maxBytes int64
	now      func() time.Time
	suffix   func() int64
	metrics  *metrics.Recorder
}

// Option configures Images.
type Option func(*Images)

// WithClock overrides the clock used in generated names.
func WithClock(now func() time.Time) Option {
	return func(i *Images) { i.now = now }
}

// WithSuffix overrides the random number appended to generated names.
func WithSuffix(suffix func() int64) Option {
	return func(i *Images) { i.suffix = suffix }
}

// WithMetrics records accepted and rejected uploads.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(i *Images) { i.metrics = rec }
}

// New returns Images writing to bucket. A non-positive maxBytes uses DefaultMaxBytes.
func New(bucket *blob.Bucket, maxBytes int64, opts ...Option) *Images {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	i := &Images{
		bucket:   bucket,
		maxBytes: maxBytes,
		now:      time.Now,
		suffix:   func() int64 { return rand.Int64N(maxRandomSuffix) },
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// MaxBytes returns the configured size limit.
func (i *Images) MaxBytes() int64 { return i.maxBytes }

// Bucket exposes the underlying bucket for export.
func (i *Images) Bucket() *blob.Bucket { return i.bucket }

// Close releases the bucket.
func (i *Images) Close() error { return i.bucket.Close() }

// Save validates fh and writes it under a unique key derived from field.
// It returns the public URL of the stored image.
func (i *Images) Save(ctx context.Context, field string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", i.reject(ErrMissingFile, "missing")
	}
	ext := path.Ext(fh.Filename)
	contentType := fh.Header.Get("Content-Type")
	if !IsImage(fh.Filename, contentType) {
		return "", i.reject(ErrNotImage, "not_image")
	}
	if fh.Size > i.maxBytes {
		return "", i.reject(ErrTooLarge, "too_large")
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	key := i.key(field, ext)
	size, err := i.write(ctx, key, contentType, f)
	if err != nil {
		return "", err
	}
	i.metrics.RecordUpload(size)
	return PublicPrefix + key, nil
}

func (i *Images) write(ctx context.Context, key, contentType string, r io.Reader) (int64, error) {
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()
	w, err := i.bucket.NewWriter(wctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return 0, fmt.Errorf("store upload: %w", err)
	}
	n, err := io.Copy(w, io.LimitReader(r, i.maxBytes+1))
	if err == nil && n > i.maxBytes {
		err = i.reject(ErrTooLarge, "too_large")
	}
	if err != nil {
		// Cancelling before Close discards the partial object.
		cancel()
		_ = w.Close()
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("store upload: %w", err)
	}
	return n, nil
}

func (i *Images) key(field, ext string) string {
	if field == "" {
		field = "image"
	}
	return fmt.Sprintf("%s-%d-%d%s", field, i.now().UnixMilli(), i.suffix(), ext)
}

func (i *Images) reject(err error, reason string) error {
	i.metrics.RecordUploadRejected(reason)
	return err
}

// Delete removes the image behind a public URL. URLs outside PublicPrefix and
// already missing objects are ignored.
func (i *Images) Delete(ctx context.Context, url string) error {
	key, ok := KeyFromURL(url)
	if !ok {
		return nil
	}
	if err := i.bucket.Delete(ctx, key); err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return fmt.Errorf("delete upload %s: %w", key, err)
	}
	return nil
}

// KeyFromURL extracts the bucket key from a public image URL.
func KeyFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, PublicPrefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, PublicPrefix)
	return key, validKey(key)
}

func validKey(key string) bool {
	return key != "" && !strings.ContainsAny(key, `/\`) && !strings.HasPrefix(key, ".")
}

// IsImage reports whether both the file extension and the declared MIME type
// name an accepted image format.
func IsImage(filename, contentType string) bool {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if !imageTypes[ext] {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	top, sub, ok := strings.Cut(mediaType, "/")
	return ok && top == "image" && imageTypes[sub]
}
