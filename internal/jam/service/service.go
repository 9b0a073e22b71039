// Package service orchestrates the code jam signup flow: the ban gate, the
// participant-profile and already-applied checks, form validation, and the
// audit events the moderation bot consumes.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"warden/internal/audit"
	"warden/internal/jam"
	"warden/internal/platform/metrics"
	dErrors "warden/pkg/domain-errors"
	"warden/pkg/requestcontext"
)

var tracer = otel.Tracer("warden/internal/jam")

const (
	auditTitle = "Code Jams: Applications"

	// Channel the signup embeds are posted to.
	jamLogsChannel = "jam_logs"

	// Discord green.
	embedColourGreen = 0x2ecc71
)

// Service owns the jam signup semantics. Stores stay dumb; every decision
// lives here or in the pure gate rules.
type Service struct {
	store   jam.Store
	bans    jam.BanStore
	events  audit.Emitter
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func New(store jam.Store, bans jam.BanStore, events audit.Emitter, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		store:   store,
		bans:    bans,
		events:  events,
		metrics: m,
		logger:  logger,
	}
}

// Check evaluates the caller's ban records against a jam and persists any
// countdown consumed by the evaluation. A blocked verdict is reported to the
// moderation log.
//
// Checking is not read-only: the first check of a countdown ban against a
// new jam charges that jam, so retries of the same jam stay blocked without
// spending further applications.
func (s *Service) Check(ctx context.Context, jamID int64) (jam.Verdict, error) {
	ctx, span := tracer.Start(ctx, "jam.Check",
		trace.WithAttributes(attribute.Int64("jam.id", jamID)))
	defer span.End()

	identity, err := s.requireIdentity(ctx)
	if err != nil {
		return jam.Verdict{}, err
	}
	if _, err := s.getJam(ctx, jamID); err != nil {
		return jam.Verdict{}, err
	}

	records, err := s.bans.ListByParticipant(ctx, identity.UserID)
	if err != nil {
		return jam.Verdict{}, dErrors.Wrap(dErrors.CodeInternal, "list ban records", err)
	}

	verdict, write := jam.EvaluateBans(records, jamID)
	if write != nil {
		if err := s.bans.Upsert(ctx, *write); err != nil {
			return jam.Verdict{}, dErrors.Wrap(dErrors.CodeInternal, "persist decremented ban", err)
		}
	}

	if verdict.Blocked {
		s.metrics.JamGateChecks.WithLabelValues("blocked").Inc()
		s.emit(ctx, audit.ModLog("warning", auditTitle, bannedMessage(identity, verdict.Record)))
		s.logger.Warn("jam signup blocked by ban record",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", identity.UserID,
			"jam_id", jamID,
			"remaining", verdict.Record.Number,
		)
	} else {
		s.metrics.JamGateChecks.WithLabelValues("clear").Inc()
	}
	return verdict, nil
}

// ApplyStatus is the outcome of an application attempt. All four are normal
// results rather than errors; only malformed input or infrastructure
// failures error.
type ApplyStatus string

const (
	StatusAccepted        ApplyStatus = "accepted"
	StatusBlocked         ApplyStatus = "blocked"
	StatusProfileRequired ApplyStatus = "profile_required"
	StatusAlreadyApplied  ApplyStatus = "already_applied"
)

// ApplyResult reports what happened to an application. Ban is set only for
// blocked attempts.
type ApplyResult struct {
	Status ApplyStatus
	Ban    *jam.BanRecord
}

// ApplyForJam runs the full signup flow: ban gate, participant profile
// requirement, duplicate-application check, answer validation, and finally
// persisting the response. Re-submitting after a successful application is
// not an error; it reports StatusAlreadyApplied and changes nothing.
func (s *Service) ApplyForJam(ctx context.Context, jamID int64, values map[string]string) (*ApplyResult, error) {
	ctx, span := tracer.Start(ctx, "jam.ApplyForJam",
		trace.WithAttributes(attribute.Int64("jam.id", jamID)))
	defer span.End()

	verdict, err := s.Check(ctx, jamID)
	if err != nil {
		return nil, err
	}
	if verdict.Blocked {
		return &ApplyResult{Status: StatusBlocked, Ban: verdict.Record}, nil
	}

	identity, _ := requestcontext.IdentityFrom(ctx)

	hasProfile, err := s.store.HasParticipant(ctx, identity.UserID)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "look up participant profile", err)
	}
	if !hasProfile {
		return &ApplyResult{Status: StatusProfileRequired}, nil
	}

	existing, err := s.store.FindResponse(ctx, jamID, identity.UserID)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "look up existing response", err)
	}
	if existing != nil {
		return &ApplyResult{Status: StatusAlreadyApplied}, nil
	}

	questions, err := s.store.GetForm(ctx, jamID)
	if err != nil {
		if errors.Is(err, jam.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "jam has no application form")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "load application form", err)
	}

	answers, err := jam.ValidateAnswers(questions, values)
	if err != nil {
		return nil, err
	}

	response := &jam.Response{
		UserID:   identity.UserID,
		JamID:    jamID,
		Approved: false,
		Answers:  answers,
	}
	if err := s.store.InsertResponse(ctx, response); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "persist response", err)
	}

	signup := fmt.Sprintf("Successful code jam signup from user: %s (%s#%d)",
		identity.UserID, identity.Username, identity.Discriminator)
	s.emit(ctx, audit.ModLog("info", auditTitle, signup))
	s.emit(ctx, audit.SendEmbed(jamLogsChannel, auditTitle, signup, embedColourGreen))

	s.metrics.JamApplications.Inc()
	s.logger.Info("jam application accepted",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", identity.UserID,
		"jam_id", jamID,
	)
	return &ApplyResult{Status: StatusAccepted}, nil
}

func (s *Service) requireIdentity(ctx context.Context) (requestcontext.Identity, error) {
	identity, ok := requestcontext.IdentityFrom(ctx)
	if !ok {
		return requestcontext.Identity{}, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	return identity, nil
}

func (s *Service) getJam(ctx context.Context, jamID int64) (*jam.Jam, error) {
	record, err := s.store.GetJam(ctx, jamID)
	if err != nil {
		if errors.Is(err, jam.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "jam not found")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "load jam", err)
	}
	return record, nil
}

// emit publishes a bot event. Publishing never fails the request; a sink
// that cannot keep up just loses the event.
func (s *Service) emit(ctx context.Context, event audit.Event) {
	if err := s.events.Emit(ctx, event); err != nil {
		s.logger.Error("failed to publish bot event",
			"request_id", requestcontext.RequestID(ctx),
			"event_type", string(event.Type),
			"error", err.Error(),
		)
	}
}

func bannedMessage(identity requestcontext.Identity, record *jam.BanRecord) string {
	message := fmt.Sprintf("Failed code jam signup from banned user: %s (%s#%d)\n\n",
		identity.UserID, identity.Username, identity.Discriminator)

	switch {
	case record.Number == -1:
		message += fmt.Sprintf("This user has been banned indefinitely. Reason: '%s'", record.Reason)
	case record.Number < 1:
		message += fmt.Sprintf("This application has expired the infraction. Reason: '%s'", record.Reason)
	default:
		message += fmt.Sprintf("This user has %d more applications left before they're unbanned. Reason: '%s'",
			record.Number, record.Reason)
	}
	return message
}
