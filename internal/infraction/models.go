package infraction

import (
	"time"

	"warden/internal/user"
)

// Type is the closed set of moderation actions the bot can apply.
type Type string

const (
	TypeWarning Type = "warning"
	TypeMute    Type = "mute"
	TypeBan     Type = "ban"
	TypeKick    Type = "kick"
	TypeSoftban Type = "softban"
)

// properties are the static behavioural flags of a type. Timed types stay
// active until they expire or are deactivated; the rest are point-in-time
// actions that are never "active".
type properties struct {
	Timed bool
}

var typeProperties = map[Type]properties{
	TypeWarning: {Timed: false},
	TypeMute:    {Timed: true},
	TypeBan:     {Timed: true},
	TypeKick:    {Timed: false},
	TypeSoftban: {Timed: false},
}

// Valid reports whether t is a known infraction type.
func (t Type) Valid() bool {
	_, ok := typeProperties[t]
	return ok
}

// Timed reports whether infractions of this type can be active.
func (t Type) Timed() bool {
	return typeProperties[t].Timed
}

// Infraction is the stored record of a moderation action. Records are never
// physically deleted; supersession and expiry only change how they read.
type Infraction struct {
	ID         string
	Type       Type
	UserID     string
	ActorID    string
	Reason     string
	InsertedAt time.Time
	// ExpiresAt is meaningful only for timed types. Nil means permanent
	// until manually deactivated.
	ExpiresAt *time.Time
	// Active is a stored manual override. Nil means "derive from expiry";
	// false means manually deactivated regardless of expiry. True is never
	// written by this service but is tolerated when present.
	Active *bool
}

// EffectiveActive derives whether the infraction is active at the given
// instant. This is the single activation rule for the whole system; it is
// recomputed at read time and never cached.
func (i *Infraction) EffectiveActive(now time.Time) bool {
	if !i.Type.Timed() {
		return false
	}
	if i.Active != nil && !*i.Active {
		return false
	}
	if i.ExpiresAt == nil {
		return true
	}
	return i.ExpiresAt.After(now)
}

// View is the response shape for a single infraction: raw user/actor IDs are
// redacted in favour of reference objects, and Active always carries the
// derived value.
type View struct {
	ID         string     `json:"id"`
	Type       Type       `json:"type"`
	Reason     string     `json:"reason"`
	InsertedAt time.Time  `json:"inserted_at"`
	ExpiresAt  *time.Time `json:"expires_at"`
	Active     bool       `json:"active"`
	User       *user.Ref  `json:"user"`
	Actor      *user.Ref  `json:"actor"`
}

// Filter restricts List to records matching all set fields. Only equality
// filters the store can push down belong here; activation filtering happens
// in the service after the rule is computed.
type Filter struct {
	UserID string
	Type   Type
}

// UpdateFields is a selective update: only non-nil fields are applied.
type UpdateFields struct {
	Reason    *string
	Active    *bool
	ExpiresAt *time.Time
}

// Empty reports whether the update would change nothing.
func (u UpdateFields) Empty() bool {
	return u.Reason == nil && u.Active == nil && u.ExpiresAt == nil
}
