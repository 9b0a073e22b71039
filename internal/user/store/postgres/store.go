// Package postgres provides the PostgreSQL-backed user profile store.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"warden/internal/user"
)

// Store reads user profiles from PostgreSQL.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Schema creates the users table when it does not exist yet.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	user_id       TEXT PRIMARY KEY,
	username      TEXT NOT NULL,
	discriminator INT NOT NULL,
	avatar        TEXT NOT NULL DEFAULT ''
)`

// EnsureSchema applies the schema. Called from main; harmless when the table
// already exists.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure users schema: %w", err)
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, userID string) (*user.Profile, error) {
	var profile user.Profile
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, username, discriminator, avatar FROM users WHERE user_id = $1`,
		userID,
	).Scan(&profile.UserID, &profile.Username, &profile.Discriminator, &profile.Avatar)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}
	return &profile, nil
}

// Put inserts or replaces a profile. Used by the sync process and tests.
func (s *Store) Put(ctx context.Context, profile user.Profile) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (user_id, username, discriminator, avatar)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET username = EXCLUDED.username,
		    discriminator = EXCLUDED.discriminator,
		    avatar = EXCLUDED.avatar`,
		profile.UserID, profile.Username, profile.Discriminator, profile.Avatar,
	)
	if err != nil {
		return fmt.Errorf("put user %s: %w", profile.UserID, err)
	}
	return nil
}
