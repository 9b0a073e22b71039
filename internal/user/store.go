package user

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no profile exists for a user ID.
var ErrNotFound = errors.New("user profile not found")

// Store reads user profiles. Swap with concrete storage without touching the
// expander.
type Store interface {
	GetByID(ctx context.Context, userID string) (*Profile, error)
}
