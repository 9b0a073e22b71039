package infraction

import (
	"context"
	"errors"
)

// ErrNotFound is returned by GetByID when no record has the given ID.
var ErrNotFound = errors.New("infraction not found")

// Store persists infraction records. Implementations only need dumb document
// operations: the activation rule, filtering on derived state, and response
// shaping all happen in the service.
//
// List must return records in insertion order. Update reports whether a
// record matched so callers can distinguish a no-op from success.
type Store interface {
	Insert(ctx context.Context, record *Infraction) (string, error)
	GetByID(ctx context.Context, id string) (*Infraction, error)
	Update(ctx context.Context, id string, fields UpdateFields) (bool, error)
	List(ctx context.Context, filter Filter) ([]*Infraction, error)
}
