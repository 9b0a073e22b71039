package user

import (
	"context"
	"errors"
	"fmt"
)

// Expander enriches bare user IDs into Refs. A missing profile never fails
// the surrounding query: the caller gets the stub instead.
type Expander struct {
	store Store
}

func NewExpander(store Store) *Expander {
	return &Expander{store: store}
}

// Expand resolves a user reference. Returns nil for an empty ID. When
// doExpand is false the stub is returned without touching the store.
func (e *Expander) Expand(ctx context.Context, userID string, doExpand bool) (*Ref, error) {
	if userID == "" {
		return nil, nil
	}
	if !doExpand {
		return Stub(userID), nil
	}

	profile, err := e.store.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Stub(userID), nil
		}
		return nil, fmt.Errorf("expand user %s: %w", userID, err)
	}
	return RefFromProfile(profile), nil
}
