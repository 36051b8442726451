package store

import (
	"time"

	"github.com/preston-bernstein/game-library-service/internal/domain/admins"
	"github.com/preston-bernstein/game-library-service/internal/domain/games"
)

// gameRecord is the relational row for a game.
type gameRecord struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Title       string    `gorm:"column:title;not null;index:title_idx"`
	Description string    `gorm:"column:description;type:text;not null"`
	Category    string    `gorm:"column:category;not null;index:category_idx"`
	ImageURL    string    `gorm:"column:image_url;not null"`
	DownloadURL string    `gorm:"column:download_url;not null"`
	FileSize    string    `gorm:"column:file_size;not null"`
	ReleaseDate string    `gorm:"column:release_date;not null"`
	Featured    bool      `gorm:"column:featured;not null;index:featured_idx"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (gameRecord) TableName() string { return "games" }

func newGameRecord(in games.NewGame, now time.Time) gameRecord {
	return gameRecord{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		DownloadURL: in.DownloadURL,
		FileSize:    in.FileSize,
		ReleaseDate: in.ReleaseDate,
		Featured:    in.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (r gameRecord) toDomain() games.Game {
	return games.Game{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
		DownloadURL: r.DownloadURL,
		FileSize:    r.FileSize,
		ReleaseDate: r.ReleaseDate,
		Featured:    r.Featured,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toDomainGames(recs []gameRecord) []games.Game {
	out := make([]games.Game, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.toDomain())
	}
	return out
}

// adminRecord is the singleton credential row. The fixed primary key keeps
// the table at one row even under concurrent writers.
type adminRecord struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement:false"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (adminRecord) TableName() string { return "admins" }

func (r adminRecord) toDomain() admins.Admin {
	return admins.Admin{
		ID:           r.ID,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
