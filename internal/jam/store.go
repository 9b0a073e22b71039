package jam

//go:generate mockgen -source=store.go -destination=mocks/mocks.go -package=mocks Store,BanStore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a jam or its form does not exist.
var ErrNotFound = errors.New("jam: not found")

// Store provides access to jams, their application forms, participant
// profiles and submitted responses.
type Store interface {
	// GetJam returns the jam, or ErrNotFound.
	GetJam(ctx context.Context, id int64) (*Jam, error)

	// GetForm returns the jam's form questions in display order, or
	// ErrNotFound when the jam has no form.
	GetForm(ctx context.Context, jamID int64) ([]Question, error)

	// HasParticipant reports whether the user has a participant profile.
	HasParticipant(ctx context.Context, userID string) (bool, error)

	// FindResponse returns the user's response for a jam, or nil when they
	// have not applied.
	FindResponse(ctx context.Context, jamID int64, userID string) (*Response, error)

	// InsertResponse persists a new application response.
	InsertResponse(ctx context.Context, response *Response) error
}

// BanStore persists jam ban records, keyed by participant.
type BanStore interface {
	// ListByParticipant returns all ban records for the user. No records is
	// an empty slice, not an error.
	ListByParticipant(ctx context.Context, userID string) ([]BanRecord, error)

	// Upsert inserts or replaces the record for its participant.
	Upsert(ctx context.Context, record BanRecord) error
}
