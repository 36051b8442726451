package games

import "strings"

// Field marks whether an optional value was supplied by the caller.
type Field[T any] struct {
	Value T
	Set   bool
}

// Some returns a Field holding v.
func Some[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// Or returns the held value when set, otherwise fallback.
func (f Field[T]) Or(fallback T) T {
	if f.Set {
		return f.Value
	}
	return fallback
}

// Patch describes a partial update. Only fields with Set=true are applied.
type Patch struct {
	Title       Field[string]
	Description Field[string]
	Category    Field[string]
	ImageURL    Field[string]
	DownloadURL Field[string]
	FileSize    Field[string]
	ReleaseDate Field[string]
	Featured    Field[bool]
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return !p.Title.Set && !p.Description.Set && !p.Category.Set && !p.ImageURL.Set &&
		!p.DownloadURL.Set && !p.FileSize.Set && !p.ReleaseDate.Set && !p.Featured.Set
}

// Trimmed returns a copy with surrounding whitespace removed from set text fields.
func (p Patch) Trimmed() Patch {
	trim := func(f Field[string]) Field[string] {
		if f.Set {
			f.Value = strings.TrimSpace(f.Value)
		}
		return f
	}
	p.Title = trim(p.Title)
	p.Description = trim(p.Description)
	p.Category = trim(p.Category)
	p.ImageURL = trim(p.ImageURL)
	p.DownloadURL = trim(p.DownloadURL)
	p.FileSize = trim(p.FileSize)
	p.ReleaseDate = trim(p.ReleaseDate)
	return p
}

// Apply merges the patch onto g. ID and timestamps are left untouched.
func (p Patch) Apply(g Game) Game {
	g.Title = p.Title.Or(g.Title)
	g.Description = p.Description.Or(g.Description)
	g.Category = p.Category.Or(g.Category)
	g.ImageURL = p.ImageURL.Or(g.ImageURL)
	g.DownloadURL = p.DownloadURL.Or(g.DownloadURL)
	g.FileSize = p.FileSize.Or(g.FileSize)
	g.ReleaseDate = p.ReleaseDate.Or(g.ReleaseDate)
	g.Featured = p.Featured.Or(g.Featured)
	return g
}

// Columns returns the set fields keyed by their column name.
func (p Patch) Columns() map[string]any {
	cols := make(map[string]any)
	put := func(name string, f Field[string]) {
		if f.Set {
			cols[name] = f.Value
		}
	}
	put(ColumnTitle, p.Title)
	put(ColumnDescription, p.Description)
	put(ColumnCategory, p.Category)
	put(ColumnImageURL, p.ImageURL)
	put(ColumnDownloadURL, p.DownloadURL)
	put(ColumnFileSize, p.FileSize)
	put(ColumnReleaseDate, p.ReleaseDate)
	if p.Featured.Set {
		cols[ColumnFeatured] = p.Featured.Value
	}
	return cols
}

// Column names shared by the relational store and validators.
const (
	ColumnID          = "id"
	ColumnTitle       = "title"
	ColumnDescription = "description"
	ColumnCategory    = "category"
	ColumnImageURL    = "image_url"
	ColumnDownloadURL = "download_url"
	ColumnFileSize    = "file_size"
	ColumnReleaseDate = "release_date"
	ColumnFeatured    = "featured"
	ColumnUpdatedAt   = "updated_at"
)
