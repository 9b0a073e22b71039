//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warden/internal/infraction"
	txcontext "warden/pkg/platform/tx"
	"warden/pkg/testutil/containers"
)

func newStore(t *testing.T) *Store {
	pc := containers.NewPostgresContainer(t)
	store := New(pc.DB)
	require.NoError(t, store.EnsureSchema(context.Background()))
	return store
}

func TestWritesJoinContextTransaction(t *testing.T) {
	pc := containers.NewPostgresContainer(t)
	store := New(pc.DB)
	ctx := context.Background()
	require.NoError(t, store.EnsureSchema(ctx))

	tx, err := pc.DB.BeginTx(ctx, nil)
	require.NoError(t, err)
	txCtx := txcontext.WithTx(ctx, tx)

	id, err := store.Insert(txCtx, &infraction.Infraction{
		Type: infraction.TypeBan, UserID: "1234", ActorID: "42",
		Reason: "raid", InsertedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	// The rolled-back insert must not be visible outside the transaction.
	_, err = store.GetByID(ctx, id)
	assert.ErrorIs(t, err, infraction.ErrNotFound)
}

func TestInsertAndGetByID(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	expires := now.Add(time.Hour)

	id, err := store.Insert(ctx, &infraction.Infraction{
		Type:       infraction.TypeBan,
		UserID:     "1234",
		ActorID:    "42",
		Reason:     "raid",
		InsertedAt: now,
		ExpiresAt:  &expires,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	record, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, infraction.TypeBan, record.Type)
	assert.Equal(t, "raid", record.Reason)
	assert.True(t, record.InsertedAt.Equal(now))
	require.NotNil(t, record.ExpiresAt)
	assert.True(t, record.ExpiresAt.Equal(expires))
	assert.Nil(t, record.Active)

	_, err = store.GetByID(ctx, "unknown")
	assert.ErrorIs(t, err, infraction.ErrNotFound)
}

func TestUpdateSelectiveFields(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	id, err := store.Insert(ctx, &infraction.Infraction{
		Type: infraction.TypeMute, UserID: "1234", ActorID: "42",
		Reason: "original", InsertedAt: now,
	})
	require.NoError(t, err)

	reason := "amended"
	active := false
	matched, err := store.Update(ctx, id, infraction.UpdateFields{Reason: &reason, Active: &active})
	require.NoError(t, err)
	assert.True(t, matched)

	record, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "amended", record.Reason)
	require.NotNil(t, record.Active)
	assert.False(t, *record.Active)
	assert.Nil(t, record.ExpiresAt, "untouched field stays null")

	matched, err = store.Update(ctx, "unknown", infraction.UpdateFields{Reason: &reason})
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestUpdateEmptyFieldsReportsExistence(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	id, err := store.Insert(ctx, &infraction.Infraction{
		Type: infraction.TypeWarning, UserID: "1234", ActorID: "42",
		InsertedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	matched, err := store.Update(ctx, id, infraction.UpdateFields{})
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = store.Update(ctx, "unknown", infraction.UpdateFields{})
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestListFiltersAndOrder(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	insert := func(typ infraction.Type, userID, reason string) {
		_, err := store.Insert(ctx, &infraction.Infraction{
			Type: typ, UserID: userID, ActorID: "42", Reason: reason, InsertedAt: now,
		})
		require.NoError(t, err)
	}
	insert(infraction.TypeWarning, "1234", "first")
	insert(infraction.TypeMute, "1234", "second")
	insert(infraction.TypeMute, "5678", "third")

	records, err := store.List(ctx, infraction.Filter{})
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "first", records[0].Reason)
	assert.Equal(t, "third", records[2].Reason)

	records, err = store.List(ctx, infraction.Filter{UserID: "1234", Type: infraction.TypeMute})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "second", records[0].Reason)
}
