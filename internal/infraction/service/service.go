// Package service implements the infraction query engine: create with
// supersession, selective update, and the list/lookup reads that shape
// records through the activation rule and user expansion.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"warden/internal/infraction"
	"warden/internal/platform/metrics"
	"warden/internal/user"
	dErrors "warden/pkg/domain-errors"
	"warden/pkg/requestcontext"
)

var tracer = otel.Tracer("warden/internal/infraction")

// Service owns infraction semantics. The store stays a dumb document store;
// everything derived lives here.
type Service struct {
	store    infraction.Store
	expander *user.Expander
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func New(store infraction.Store, expander *user.Expander, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		expander: expander,
		metrics:  m,
		logger:   logger,
	}
}

// CreateParams are the validated inputs for Create. DurationSeconds is
// optional; for timed types its absence means a permanent infraction.
type CreateParams struct {
	Type            infraction.Type
	Reason          string
	UserID          string
	ActorID         string
	DurationSeconds *int64
	Expand          bool
}

// Create inserts a new infraction. For timed types it supersedes a currently
// active infraction of the same type for the same user: the new record is
// inserted first so readers never observe a window with no active record,
// then the old one is deactivated.
func (s *Service) Create(ctx context.Context, params CreateParams) (*infraction.View, error) {
	ctx, span := tracer.Start(ctx, "infraction.Create",
		trace.WithAttributes(attribute.String("infraction.type", string(params.Type))))
	defer span.End()

	if !params.Type.Valid() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "unknown infraction type: "+string(params.Type))
	}

	now := requestcontext.Now(ctx)

	var superseded *infraction.Infraction
	var expiresAt *time.Time
	if params.Type.Timed() {
		current, err := s.findCurrent(ctx, params.UserID, params.Type, now)
		if err != nil {
			return nil, err
		}
		superseded = current

		if params.DurationSeconds != nil {
			t := now.Add(time.Duration(*params.DurationSeconds) * time.Second)
			expiresAt = &t
		}
	}

	record := &infraction.Infraction{
		Type:       params.Type,
		UserID:     params.UserID,
		ActorID:    params.ActorID,
		Reason:     params.Reason,
		InsertedAt: now,
		ExpiresAt:  expiresAt,
	}

	id, err := s.store.Insert(ctx, record)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "insert infraction", err)
	}
	record.ID = id

	// Deactivation deliberately happens after the insert. If it lags, the
	// stale record reads as a second active one for at most one read;
	// reversing the order would instead read as no active record at all.
	if superseded != nil {
		if _, err := s.store.Update(ctx, superseded.ID, infraction.UpdateFields{Active: falsePtr()}); err != nil {
			return nil, dErrors.Wrap(dErrors.CodeInternal, "deactivate superseded infraction", err)
		}
		s.metrics.InfractionsSuperseded.Inc()
		s.logger.Info("superseded active infraction",
			"request_id", requestcontext.RequestID(ctx),
			"old_id", superseded.ID,
			"new_id", id,
			"type", string(params.Type),
		)
	}

	s.metrics.InfractionsCreated.WithLabelValues(string(params.Type)).Inc()
	return s.shape(ctx, record, params.Expand, now)
}

// UpdateParams are the selective fields for Update. Nil fields are left
// untouched.
type UpdateParams struct {
	ID              string
	Reason          *string
	Active          *bool
	DurationSeconds *int64
	Expand          bool
}

// Update applies the provided fields to an existing infraction. A duration
// re-arms the expiry from the update time, not the original insertion time,
// and is applied regardless of the record's type. The bool result is false
// when no record matched the ID.
func (s *Service) Update(ctx context.Context, params UpdateParams) (*infraction.View, bool, error) {
	ctx, span := tracer.Start(ctx, "infraction.Update")
	defer span.End()

	now := requestcontext.Now(ctx)

	fields := infraction.UpdateFields{
		Reason: params.Reason,
		Active: params.Active,
	}
	if params.DurationSeconds != nil {
		t := now.Add(time.Duration(*params.DurationSeconds) * time.Second)
		fields.ExpiresAt = &t
	}

	matched, err := s.store.Update(ctx, params.ID, fields)
	if err != nil {
		return nil, false, dErrors.Wrap(dErrors.CodeInternal, "update infraction", err)
	}
	if !matched {
		return nil, false, nil
	}
	s.metrics.InfractionUpdates.Inc()

	record, err := s.store.GetByID(ctx, params.ID)
	if err != nil {
		return nil, false, dErrors.Wrap(dErrors.CodeInternal, "reload updated infraction", err)
	}
	view, err := s.shape(ctx, record, params.Expand, now)
	if err != nil {
		return nil, false, err
	}
	return view, true, nil
}

// List returns shaped infractions matching the store filter. The active
// filter, when set, matches the derived effective-active value, so it is
// applied here after the activation rule runs.
func (s *Service) List(ctx context.Context, filter infraction.Filter, active *bool, expand bool) ([]*infraction.View, error) {
	ctx, span := tracer.Start(ctx, "infraction.List")
	defer span.End()

	records, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "list infractions", err)
	}

	now := requestcontext.Now(ctx)
	views := make([]*infraction.View, 0, len(records))
	for _, record := range records {
		if active != nil && record.EffectiveActive(now) != *active {
			continue
		}
		view, err := s.shape(ctx, record, expand, now)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// GetByID returns the shaped infraction, or nil when the ID is unknown.
func (s *Service) GetByID(ctx context.Context, id string, expand bool) (*infraction.View, error) {
	ctx, span := tracer.Start(ctx, "infraction.GetByID")
	defer span.End()

	record, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, infraction.ErrNotFound) {
			return nil, nil
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "get infraction", err)
	}
	return s.shape(ctx, record, expand, requestcontext.Now(ctx))
}

// Current returns the effectively active infraction of the given type for a
// user, or nil when there is none. The supersession protocol should
// guarantee at most one winner, but when several match any single one is
// returned rather than erroring.
func (s *Service) Current(ctx context.Context, userID string, typ infraction.Type, expand bool) (*infraction.View, error) {
	ctx, span := tracer.Start(ctx, "infraction.Current")
	defer span.End()

	now := requestcontext.Now(ctx)
	record, err := s.findCurrent(ctx, userID, typ, now)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	return s.shape(ctx, record, expand, now)
}

func (s *Service) findCurrent(ctx context.Context, userID string, typ infraction.Type, now time.Time) (*infraction.Infraction, error) {
	records, err := s.store.List(ctx, infraction.Filter{UserID: userID, Type: typ})
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "query current infraction", err)
	}
	for _, record := range records {
		if record.EffectiveActive(now) {
			return record, nil
		}
	}
	return nil, nil
}

// shape converts a stored record into its response form: derived active,
// user/actor references instead of raw IDs.
func (s *Service) shape(ctx context.Context, record *infraction.Infraction, expand bool, now time.Time) (*infraction.View, error) {
	userRef, err := s.expander.Expand(ctx, record.UserID, expand)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "expand user", err)
	}
	actorRef, err := s.expander.Expand(ctx, record.ActorID, expand)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "expand actor", err)
	}

	return &infraction.View{
		ID:         record.ID,
		Type:       record.Type,
		Reason:     record.Reason,
		InsertedAt: record.InsertedAt,
		ExpiresAt:  record.ExpiresAt,
		Active:     record.EffectiveActive(now),
		User:       userRef,
		Actor:      actorRef,
	}, nil
}

func falsePtr() *bool {
	f := false
	return &f
}
