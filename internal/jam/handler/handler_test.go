package handler

import (
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warden/internal/audit"
	"warden/internal/jam"
	"warden/internal/jam/service"
	"warden/internal/platform/metrics"
	"warden/pkg/requestcontext"
	"warden/pkg/testutil"
)

var testMetrics = metrics.New()

type fixture struct {
	router *chi.Mux
	store  *jam.InMemoryStore
	bans   *jam.InMemoryBanStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	store := jam.NewInMemoryStore()
	bans := jam.NewInMemoryBanStore()
	svc := service.New(store, bans, audit.NewPublisher(audit.NewInMemorySink()), testMetrics, logger)

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithIdentity(r.Context(), requestcontext.Identity{
				UserID: "1234", Username: "lemon", Discriminator: 1,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	New(svc, logger).Register(router)

	store.PutJam(jam.Jam{ID: 7, Name: "Winter Code Jam"})
	store.PutForm(7, []jam.Question{{ID: "agree", Type: jam.QuestionCheckbox}})
	store.PutParticipant("1234")
	return &fixture{router: router, store: store, bans: bans}
}

type gateBody struct {
	Blocked bool                `json:"blocked"`
	Status  service.ApplyStatus `json:"status"`
	Ban     *jam.BanRecord      `json:"ban"`
}

func TestCheckClear(t *testing.T) {
	f := newFixture(t)

	rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/jams/7/join"))
	require.Equal(t, http.StatusOK, rr.Code)
	var body gateBody
	testutil.DecodeJSON(t, rr, &body)
	assert.False(t, body.Blocked)
	assert.Nil(t, body.Ban)
}

func TestCheckUnknownJam(t *testing.T) {
	f := newFixture(t)

	rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/jams/99/join"))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCheckBadJamParam(t *testing.T) {
	f := newFixture(t)

	rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/jams/winter/join"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCheckBlockedDecrementsOnce(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.bans.Upsert(t.Context(), jam.BanRecord{Participant: "1234", Number: 2, Reason: "spam"}))

	rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/jams/7/join"))
	require.Equal(t, http.StatusOK, rr.Code)
	var body gateBody
	testutil.DecodeJSON(t, rr, &body)
	require.True(t, body.Blocked)
	require.NotNil(t, body.Ban)
	assert.Equal(t, 1, body.Ban.Number)

	// The same jam is already charged, so a retry does not decrement again.
	rr = testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/jams/7/join"))
	testutil.DecodeJSON(t, rr, &body)
	require.True(t, body.Blocked)
	assert.Equal(t, 1, body.Ban.Number)
}

func TestApplyAcceptedThenAlreadyApplied(t *testing.T) {
	f := newFixture(t)
	payload := map[string]any{"answers": map[string]string{"agree": "on"}}

	rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/jams/7/join", payload))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var body gateBody
	testutil.DecodeJSON(t, rr, &body)
	assert.Equal(t, service.StatusAccepted, body.Status)

	rr = testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/jams/7/join", payload))
	require.Equal(t, http.StatusOK, rr.Code)
	testutil.DecodeJSON(t, rr, &body)
	assert.Equal(t, service.StatusAlreadyApplied, body.Status)
}

func TestApplyProfileRequired(t *testing.T) {
	f := newFixture(t)
	f.store.PutJam(jam.Jam{ID: 8, Name: "Spring Code Jam"})
	f.store.PutForm(8, nil)

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithIdentity(r.Context(), requestcontext.Identity{UserID: "5678"})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	svc := service.New(f.store, f.bans, audit.NewPublisher(audit.NewInMemorySink()), testMetrics, slog.New(slog.DiscardHandler))
	New(svc, slog.New(slog.DiscardHandler)).Register(router)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/jams/8/join", map[string]any{}))
	require.Equal(t, http.StatusOK, rr.Code)
	var body gateBody
	testutil.DecodeJSON(t, rr, &body)
	assert.Equal(t, service.StatusProfileRequired, body.Status)
}

func TestApplyInvalidAnswer(t *testing.T) {
	f := newFixture(t)

	rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/jams/7/join", map[string]any{
		"answers": map[string]string{"agree": "nope"},
	}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestApplyBlocked(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.bans.Upsert(t.Context(), jam.BanRecord{Participant: "1234", Number: -1, Reason: "spam"}))

	rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/jams/7/join", map[string]any{}))
	require.Equal(t, http.StatusOK, rr.Code)
	var body gateBody
	testutil.DecodeJSON(t, rr, &body)
	assert.Equal(t, service.StatusBlocked, body.Status)
	require.NotNil(t, body.Ban)
	assert.Equal(t, -1, body.Ban.Number)
}
