package admins

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	domainadmins "github.com/preston-bernstein/game-library-service/internal/domain/admins"
	"github.com/preston-bernstein/game-library-service/internal/logging"
)

// Store persists the singleton admin record.
type Store interface {
	GetAdmin(ctx context.Context) (domainadmins.Admin, error)
	EnsureAdmin(ctx context.Context, passwordHash string) (domainadmins.Admin, bool, error)
	UpsertAdmin(ctx context.Context, passwordHash string) (domainadmins.Admin, error)
}

// Service manages the admin credential.
type Service struct {
	store           Store
	defaultPassword string
	cost            int
	logger          *slog.Logger
}

// NewService returns a Service that bootstraps the admin with defaultPassword
// and hashes with the given bcrypt cost (bcrypt.DefaultCost when out of range).
func NewService(store Store, defaultPassword string, cost int, logger *slog.Logger) *Service {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Service{store: store, defaultPassword: defaultPassword, cost: cost, logger: logger}
}

// Bootstrap creates the admin with the default password if none exists.
func (s *Service) Bootstrap(ctx context.Context) error {
	_, created, err := s.ensure(ctx)
	if err != nil {
		return err
	}
	if created {
		logging.Warn(s.logger, "admin created with default password; change it with catalogctl admin set-password")
	}
	return nil
}

// Admin returns the admin record, creating it with the default password when missing.
func (s *Service) Admin(ctx context.Context) (domainadmins.Admin, error) {
	a, err := s.store.GetAdmin(ctx)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, domainadmins.ErrNotFound) {
		return domainadmins.Admin{}, err
	}
	a, _, err = s.ensure(ctx)
	return a, err
}

// SetPassword replaces the admin password, creating the record if needed.
func (s *Service) SetPassword(ctx context.Context, password string) (domainadmins.Admin, error) {
	if password == "" {
		return domainadmins.Admin{}, domainadmins.ErrPasswordRequired
	}
	hash, err := s.hash(password)
	if err != nil {
		return domainadmins.Admin{}, err
	}
	a, err := s.store.UpsertAdmin(ctx, hash)
	if err != nil {
		return domainadmins.Admin{}, err
	}
	logging.Info(s.logger, "admin password updated")
	return a, nil
}

// Login reports whether password matches the stored admin credential.
func (s *Service) Login(ctx context.Context, password string) (bool, error) {
	if password == "" {
		return false, domainadmins.ErrPasswordRequired
	}
	a, err := s.Admin(ctx)
	if err != nil {
		return false, err
	}
	err = bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("compare admin password: %w", err)
	}
}

func (s *Service) ensure(ctx context.Context) (domainadmins.Admin, bool, error) {
	if s.defaultPassword == "" {
		return domainadmins.Admin{}, false, domainadmins.ErrPasswordRequired
	}
	hash, err := s.hash(s.defaultPassword)
	if err != nil {
		return domainadmins.Admin{}, false, err
	}
	return s.store.EnsureAdmin(ctx, hash)
}

func (s *Service) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash admin password: %w", err)
	}
	return string(b), nil
}
