package testutil

import (
	"testing"
	"time"

	"github.com/preston-bernstein/game-library-service/internal/snapshots"
)

// ExportTime is the fixed GeneratedAt used by NewTempWriter.
var ExportTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// NewTempWriter returns an export writer rooted in a temp dir with a fixed clock.
func NewTempWriter(t *testing.T) *snapshots.Writer {
	t.Helper()
	return snapshots.NewWriter(t.TempDir(), NowAt(ExportTime))
}
