package games

import (
	"strconv"
	"strings"
	"time"
)

// Game is the canonical catalog entry exposed by the service.
type Game struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl"`
	DownloadURL string    `json:"downloadUrl"`
	FileSize    string    `json:"fileSize"`
	ReleaseDate string    `json:"releaseDate"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewGame carries the caller-supplied fields of a game being created.
// The store assigns ID and timestamps.
type NewGame struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageUrl"`
	DownloadURL string `json:"downloadUrl"`
	FileSize    string `json:"fileSize"`
	ReleaseDate string `json:"releaseDate"`
	Featured    bool   `json:"featured"`
}

// Build materializes a Game from the input with the given server-assigned fields.
func (n NewGame) Build(id int64, now time.Time) Game {
	return Game{
		ID:          id,
		Title:       n.Title,
		Description: n.Description,
		Category:    n.Category,
		ImageURL:    n.ImageURL,
		DownloadURL: n.DownloadURL,
		FileSize:    n.FileSize,
		ReleaseDate: n.ReleaseDate,
		Featured:    n.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Trimmed returns a copy with surrounding whitespace removed from text fields.
func (n NewGame) Trimmed() NewGame {
	n.Title = strings.TrimSpace(n.Title)
	n.Description = strings.TrimSpace(n.Description)
	n.Category = strings.TrimSpace(n.Category)
	n.ImageURL = strings.TrimSpace(n.ImageURL)
	n.DownloadURL = strings.TrimSpace(n.DownloadURL)
	n.FileSize = strings.TrimSpace(n.FileSize)
	n.ReleaseDate = strings.TrimSpace(n.ReleaseDate)
	return n
}

// ParseID converts a raw path segment into a game id. Anything that is not a
// positive base-10 integer is reported as not ok so callers can answer
// "not found" instead of failing.
func ParseID(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
