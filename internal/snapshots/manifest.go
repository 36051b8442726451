package snapshots

import (
	"encoding/json"
	"os"
	"time"
)

// Manifest describes the last export.
type Manifest struct {
	Version       int       `json:"version"`
	GeneratedAt   time.Time `json:"generatedAt"`
	Games         GamesMeta `json:"games"`
	Categories    []string  `json:"categories"`
	Images        []string  `json:"images"`
	MissingImages []string  `json:"missingImages"`
}

// GamesMeta summarises the exported games.
type GamesMeta struct {
	Count    int     `json:"count"`
	Featured int     `json:"featured"`
	IDs      []int64 `json:"ids"`
}

func defaultManifest() Manifest {
	return Manifest{
		Version:       1,
		Games:         GamesMeta{IDs: []int64{}},
		Categories:    []string{},
		Images:        []string{},
		MissingImages: []string{},
	}
}

// ReadManifest loads the manifest of an earlier export under basePath.
func ReadManifest(basePath string) (Manifest, error) {
	f, err := os.Open(ManifestPath(basePath))
	if err != nil {
		return defaultManifest(), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(), err
	}
	return m, nil
}
