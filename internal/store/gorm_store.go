package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/preston-bernstein/game-library-service/internal/domain/admins"
	"github.com/preston-bernstein/game-library-service/internal/domain/games"
)

// GormStore persists games and the admin record in a relational database.
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormStore wraps an open gorm connection. Call AutoMigrate before use.
func NewGormStore(db *gorm.DB, opts ...Option) *GormStore {
	o := buildOptions(opts)
	return &GormStore{db: db, now: o.now}
}

// AutoMigrate creates or updates the games and admins tables.
func (s *GormStore) AutoMigrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&gameRecord{}, &adminRecord{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ListGames returns every game ordered by id.
func (s *GormStore) ListGames(ctx context.Context) ([]games.Game, error) {
	return find(s.db.WithContext(ctx))
}

// FindGames returns the games matching q ordered by id.
func (s *GormStore) FindGames(ctx context.Context, q games.Query) ([]games.Game, error) {
	return find(s.db.WithContext(ctx).Scopes(queryScope(q)))
}

// FeaturedGames returns the games flagged as featured ordered by id.
func (s *GormStore) FeaturedGames(ctx context.Context) ([]games.Game, error) {
	return find(s.db.WithContext(ctx).Where(games.ColumnFeatured+" = ?", true))
}

func find(tx *gorm.DB) ([]games.Game, error) {
	var recs []gameRecord
	if err := tx.Order(games.ColumnID + " ASC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return toDomainGames(recs), nil
}

// GetGame returns the game with id or games.ErrNotFound.
func (s *GormStore) GetGame(ctx context.Context, id int64) (games.Game, error) {
	rec, err := getGame(s.db.WithContext(ctx), id)
	if err != nil {
		return games.Game{}, err
	}
	return rec.toDomain(), nil
}

func getGame(tx *gorm.DB, id int64) (gameRecord, error) {
	var rec gameRecord
	if err := tx.Where(games.ColumnID+" = ?", id).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return gameRecord{}, games.ErrNotFound
		}
		return gameRecord{}, fmt.Errorf("get game %d: %w", id, err)
	}
	return rec, nil
}

// CreateGame inserts a game; the database assigns the id.
func (s *GormStore) CreateGame(ctx context.Context, in games.NewGame) (games.Game, error) {
	rec := newGameRecord(in, timestamp(s.now))
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return games.Game{}, fmt.Errorf("create game: %w", err)
	}
	return rec.toDomain(), nil
}

// UpdateGame applies the set fields of p and refreshes updatedAt.
func (s *GormStore) UpdateGame(ctx context.Context, id int64, p games.Patch) (games.Game, error) {
	var out gameRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getGame(tx, id); err != nil {
			return err
		}
		cols := p.Columns()
		cols[games.ColumnUpdatedAt] = timestamp(s.now)
		if err := tx.Model(&gameRecord{}).Where(games.ColumnID+" = ?", id).Updates(cols).Error; err != nil {
			return fmt.Errorf("update game %d: %w", id, err)
		}
		rec, err := getGame(tx, id)
		if err != nil {
			return err
		}
		out = rec
		return nil
	})
	if err != nil {
		return games.Game{}, err
	}
	return out.toDomain(), nil
}

// DeleteGame removes a game and reports whether a row was deleted.
func (s *GormStore) DeleteGame(ctx context.Context, id int64) (bool, error) {
	res := s.db.WithContext(ctx).Where(games.ColumnID+" = ?", id).Delete(&gameRecord{})
	if res.Error != nil {
		return false, fmt.Errorf("delete game %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// GetAdmin returns the admin record or admins.ErrNotFound.
func (s *GormStore) GetAdmin(ctx context.Context) (admins.Admin, error) {
	rec, err := getAdmin(s.db.WithContext(ctx))
	if err != nil {
		return admins.Admin{}, err
	}
	return rec.toDomain(), nil
}

func getAdmin(tx *gorm.DB) (adminRecord, error) {
	var rec adminRecord
	if err := tx.Where("id = ?", admins.SingletonID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return adminRecord{}, admins.ErrNotFound
		}
		return adminRecord{}, fmt.Errorf("get admin: %w", err)
	}
	return rec, nil
}

// EnsureAdmin inserts the admin with passwordHash unless one already exists.
// It reports whether a row was created.
func (s *GormStore) EnsureAdmin(ctx context.Context, passwordHash string) (admins.Admin, bool, error) {
	now := timestamp(s.now)
	var (
		out     adminRecord
		created bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := adminRecord{ID: admins.SingletonID, PasswordHash: passwordHash, CreatedAt: now, UpdatedAt: now}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rec)
		if res.Error != nil {
			return fmt.Errorf("ensure admin: %w", res.Error)
		}
		created = res.RowsAffected > 0
		stored, err := getAdmin(tx)
		if err != nil {
			return err
		}
		out = stored
		return nil
	})
	if err != nil {
		return admins.Admin{}, false, err
	}
	return out.toDomain(), created, nil
}

// UpsertAdmin creates the admin or replaces its password hash.
func (s *GormStore) UpsertAdmin(ctx context.Context, passwordHash string) (admins.Admin, error) {
	now := timestamp(s.now)
	var out adminRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := adminRecord{ID: admins.SingletonID, PasswordHash: passwordHash, CreatedAt: now, UpdatedAt: now}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"password_hash", "updated_at"}),
		}).Create(&rec).Error
		if err != nil {
			return fmt.Errorf("upsert admin: %w", err)
		}
		stored, err := getAdmin(tx)
		if err != nil {
			return err
		}
		out = stored
		return nil
	})
	if err != nil {
		return admins.Admin{}, err
	}
	return out.toDomain(), nil
}
