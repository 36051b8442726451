package snapshots

import (
	"fmt"
	"path/filepath"
)

const (
	dataDir    = "data"
	uploadsDir = "uploads"
)

// GamesPath is the listing of every game.
func GamesPath(basePath string) string {
	return filepath.Join(basePath, dataDir, "games.json")
}

// FeaturedPath is the listing of featured games.
func FeaturedPath(basePath string) string {
	return filepath.Join(basePath, dataDir, "featured-games.json")
}

// CategoriesPath is the sorted list of distinct categories.
func CategoriesPath(basePath string) string {
	return filepath.Join(basePath, dataDir, "categories.json")
}

// TagsPath is the category list in the {id,name} form static clients read.
func TagsPath(basePath string) string {
	return filepath.Join(basePath, dataDir, "tags.json")
}

// GameDetailPath is the detail document for a single game.
func GameDetailPath(basePath string, id int64) string {
	return filepath.Join(basePath, dataDir, "games", fmt.Sprintf("%d.json", id))
}

// ManifestPath is the export manifest.
func ManifestPath(basePath string) string {
	return filepath.Join(basePath, dataDir, "manifest.json")
}

// ImagePath is where a copied upload lands.
func ImagePath(basePath, key string) string {
	return filepath.Join(basePath, uploadsDir, key)
}
