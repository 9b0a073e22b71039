// Package requestcontext provides HTTP-independent accessors for
// request-scoped values. Middleware sets them, services read them, and tests
// inject them without running the full middleware chain.
//
// The request time is the important one here: every activation check within a
// single request must use the same "now", so the time is pinned once when the
// request enters the router and read back with Now(ctx).
package requestcontext

import (
	"context"
	"time"
)

// Identity is the authenticated caller as resolved by the session
// collaborator. UserID is an opaque external reference (a Discord snowflake
// in production).
type Identity struct {
	UserID        string
	Username      string
	Discriminator int
}

type (
	identityKey    struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// WithIdentity injects the authenticated identity into the context.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFrom retrieves the authenticated identity. The second return is
// false for unauthenticated requests.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(Identity)
	return identity, ok
}

// UserID retrieves the authenticated user's ID, or "" when unauthenticated.
func UserID(ctx context.Context) string {
	identity, _ := IdentityFrom(ctx)
	return identity.UserID
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID retrieves the request ID from the context, or "".
func RequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return requestID
	}
	return ""
}

// WithTime pins a specific time in the context. Used by the request-time
// middleware and by tests that need a deterministic clock.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}

// Now retrieves the request-scoped time, falling back to time.Now() for
// non-HTTP contexts such as workers and tests that don't care.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}
