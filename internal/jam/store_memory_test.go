package jam

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warden/pkg/testutil"
)

func TestInMemoryStore(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	testutil.Given(t, "an empty store", func(t *testing.T) {
		_, err := store.GetJam(ctx, 7)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = store.GetForm(ctx, 7)
		assert.ErrorIs(t, err, ErrNotFound)

		has, err := store.HasParticipant(ctx, "1234")
		require.NoError(t, err)
		assert.False(t, has)
	})

	testutil.When(t, "a jam with a form and a participant are seeded", func(t *testing.T) {
		store.PutJam(Jam{ID: 7, Name: "Winter Code Jam"})
		store.PutForm(7, []Question{{ID: "agree", Type: QuestionCheckbox}})
		store.PutParticipant("1234")

		jam, err := store.GetJam(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, "Winter Code Jam", jam.Name)

		questions, err := store.GetForm(ctx, 7)
		require.NoError(t, err)
		require.Len(t, questions, 1)

		has, err := store.HasParticipant(ctx, "1234")
		require.NoError(t, err)
		assert.True(t, has)
	})

	testutil.Then(t, "responses round-trip per jam and user", func(t *testing.T) {
		found, err := store.FindResponse(ctx, 7, "1234")
		require.NoError(t, err)
		assert.Nil(t, found)

		require.NoError(t, store.InsertResponse(ctx, &Response{
			UserID:  "1234",
			JamID:   7,
			Answers: []Answer{{Question: "agree", Value: true}},
		}))

		found, err = store.FindResponse(ctx, 7, "1234")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.False(t, found.Approved)

		found, err = store.FindResponse(ctx, 8, "1234")
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestInMemoryBanStore(t *testing.T) {
	store := NewInMemoryBanStore()
	ctx := context.Background()

	records, err := store.ListByParticipant(ctx, "1234")
	require.NoError(t, err)
	assert.Empty(t, records)

	record := BanRecord{Participant: "1234", Number: 2, DecrementedFor: []int64{7}}
	require.NoError(t, store.Upsert(ctx, record))

	records, err = store.ListByParticipant(ctx, "1234")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, record, records[0])

	// Reads hand out copies; mutating them must not leak back.
	records[0].DecrementedFor[0] = 99
	records, err = store.ListByParticipant(ctx, "1234")
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, records[0].DecrementedFor)

	record.Number = 1
	require.NoError(t, store.Upsert(ctx, record))
	records, err = store.ListByParticipant(ctx, "1234")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].Number)
}
