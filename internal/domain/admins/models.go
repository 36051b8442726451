package admins

import (
	"errors"
	"time"
)

// SingletonID is the fixed primary key of the only admin record.
const SingletonID int64 = 1

// Admin is the credential record gating catalog management.
type Admin struct {
	ID           int64     `json:"id"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

var (
	// ErrNotFound is returned when no admin record exists yet.
	ErrNotFound = errors.New("admin not found")
	// ErrUnauthorized is returned when a supplied password does not match.
	ErrUnauthorized = errors.New("invalid credentials")
	// ErrPasswordRequired is returned for empty passwords.
	ErrPasswordRequired = errors.New("password is required")
)
