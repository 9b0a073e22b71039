//go:build integration

package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warden/internal/jam"
	"warden/pkg/testutil/containers"
)

func newStore(t *testing.T) *Store {
	pc := containers.NewPostgresContainer(t)
	store := New(pc.DB)
	require.NoError(t, store.EnsureSchema(context.Background()))
	return store
}

func TestJamLookup(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	_, err := store.GetJam(ctx, 7)
	require.ErrorIs(t, err, jam.ErrNotFound)

	require.NoError(t, store.PutJam(ctx, jam.Jam{ID: 7, Name: "Winter Code Jam", State: "open"}))

	record, err := store.GetJam(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Winter Code Jam", record.Name)
	assert.Equal(t, "open", record.State)
}

func TestFormRoundTripKeepsOrder(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutJam(ctx, jam.Jam{ID: 7, Name: "Winter Code Jam"}))

	_, err := store.GetForm(ctx, 7)
	require.ErrorIs(t, err, jam.ErrNotFound)

	questions := []jam.Question{
		{ID: "agree", Title: "Rules", Type: jam.QuestionCheckbox},
		{ID: "age", Title: "Age", Type: jam.QuestionNumber, Optional: true, Data: jam.QuestionData{Min: 13, Max: 99}},
		{ID: "editor", Title: "Editor", Type: jam.QuestionRadio, Data: jam.QuestionData{Options: []string{"vim", "emacs"}}},
	}
	require.NoError(t, store.PutForm(ctx, 7, questions))

	got, err := store.GetForm(ctx, 7)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "agree", got[0].ID)
	assert.Equal(t, 13, got[1].Data.Min)
	assert.Equal(t, 99, got[1].Data.Max)
	assert.Equal(t, []string{"vim", "emacs"}, got[2].Data.Options)
}

func TestParticipants(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	has, err := store.HasParticipant(ctx, "1234")
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, store.PutParticipant(ctx, "1234"))
	require.NoError(t, store.PutParticipant(ctx, "1234"))

	has, err = store.HasParticipant(ctx, "1234")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestResponseRoundTrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutJam(ctx, jam.Jam{ID: 7, Name: "Winter Code Jam"}))

	found, err := store.FindResponse(ctx, 7, "1234")
	require.NoError(t, err)
	assert.Nil(t, found)

	response := &jam.Response{
		UserID: "1234",
		JamID:  7,
		Answers: []jam.Answer{
			{Question: "agree", Value: true},
			{Question: "name", Value: "lemon"},
		},
	}
	require.NoError(t, store.InsertResponse(ctx, response))

	found, err = store.FindResponse(ctx, 7, "1234")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.False(t, found.Approved)
	require.Len(t, found.Answers, 2)
	assert.Equal(t, "agree", found.Answers[0].Question)
	assert.Equal(t, true, found.Answers[0].Value)
	assert.Equal(t, "lemon", found.Answers[1].Value)
}
