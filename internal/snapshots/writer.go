package snapshots

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	domaingames "github.com/preston-bernstein/game-library-service/internal/domain/games"
)

// Tag is a category exposed to static clients under a numeric id.
type Tag struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Writer persists the catalog as static JSON documents.
type Writer struct {
	basePath string
	now      func() time.Time
}

// NewWriter constructs a writer rooted at basePath.
func NewWriter(basePath string, now func() time.Time) *Writer {
	if now == nil {
		now = time.Now
	}
	return &Writer{basePath: basePath, now: now}
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteCatalog writes the listing, featured, category, tag and per-game documents
// and removes detail documents for games that no longer exist.
func (w *Writer) WriteCatalog(list []domaingames.Game) (Manifest, error) {
	if w == nil {
		return Manifest{}, fmt.Errorf("export writer not configured")
	}
	list = append([]domaingames.Game(nil), list...)
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	featured := make([]domaingames.Game, 0)
	ids := make([]int64, 0, len(list))
	for _, g := range list {
		if g.Featured {
			featured = append(featured, g)
		}
		ids = append(ids, g.ID)
	}
	categories := Categories(list)

	if err := w.writeJSON(GamesPath(w.basePath), list); err != nil {
		return Manifest{}, err
	}
	if err := w.writeJSON(FeaturedPath(w.basePath), featured); err != nil {
		return Manifest{}, err
	}
	if err := w.writeJSON(CategoriesPath(w.basePath), categories); err != nil {
		return Manifest{}, err
	}
	if err := w.writeJSON(TagsPath(w.basePath), Tags(list)); err != nil {
		return Manifest{}, err
	}
	for _, g := range list {
		if err := w.writeJSON(GameDetailPath(w.basePath, g.ID), g); err != nil {
			return Manifest{}, err
		}
	}
	if err := w.pruneDetails(ids); err != nil {
		return Manifest{}, err
	}

	m := defaultManifest()
	m.Games = GamesMeta{Count: len(list), Featured: len(featured), IDs: ids}
	m.Categories = categories
	return m, nil
}

// WriteManifest stamps and writes m.
func (w *Writer) WriteManifest(m Manifest) error {
	m.GeneratedAt = w.now().UTC()
	return w.writeJSON(ManifestPath(w.basePath), m)
}

// Categories returns the distinct categories of list in sorted order.
func Categories(list []domaingames.Game) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, g := range list {
		if _, ok := seen[g.Category]; ok || g.Category == "" {
			continue
		}
		seen[g.Category] = struct{}{}
		out = append(out, g.Category)
	}
	sort.Strings(out)
	return out
}

// Tags numbers the sorted categories of list from 1. CreatedAt is the
// earliest creation time among the category's games.
func Tags(list []domaingames.Game) []Tag {
	first := make(map[string]time.Time)
	for _, g := range list {
		if t, ok := first[g.Category]; !ok || g.CreatedAt.Before(t) {
			first[g.Category] = g.CreatedAt
		}
	}
	categories := Categories(list)
	out := make([]Tag, 0, len(categories))
	for i, name := range categories {
		out = append(out, Tag{ID: i + 1, Name: name, CreatedAt: first[name].UTC()})
	}
	return out
}

func (w *Writer) writeJSON(target string, payload any) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return nil
	}
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}

func (w *Writer) pruneDetails(keep []int64) error {
	dir := filepath.Dir(GameDetailPath(w.basePath, 0))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	wanted := make(map[int64]struct{}, len(keep))
	for _, id := range keep {
		wanted[id] = struct{}{}
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSuffix(name, ".json"), 10, 64)
		if err != nil {
			continue
		}
		if _, ok := wanted[id]; !ok {
			if err := os.Remove(filepath.Join(dir, name)); err != nil && !os.IsNotExist(err) {
				return err
			}
		}
	}
	return nil
}
