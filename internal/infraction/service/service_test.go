package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"warden/internal/infraction"
	"warden/internal/platform/metrics"
	"warden/internal/user"
	"warden/pkg/requestcontext"
)

// promauto registers on the global registry, so the test binary shares one
// Metrics instance.
var testMetrics = metrics.New()

var testNow = time.Date(2018, time.April, 1, 12, 0, 0, 0, time.UTC)

type ServiceSuite struct {
	suite.Suite
	store   *infraction.InMemoryStore
	users   *user.InMemoryStore
	service *Service
	ctx     context.Context
}

func (s *ServiceSuite) SetupTest() {
	s.store = infraction.NewInMemoryStore()
	s.users = user.NewInMemoryStore()
	s.service = New(s.store, user.NewExpander(s.users), testMetrics, slog.New(slog.DiscardHandler))
	s.ctx = requestcontext.WithTime(context.Background(), testNow)
}

func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

func (s *ServiceSuite) TestCreateRejectsUnknownType() {
	_, err := s.service.Create(s.ctx, CreateParams{
		Type: infraction.Type("shadowban"), Reason: "r", UserID: "1", ActorID: "2",
	})
	s.Require().Error(err)
}

func (s *ServiceSuite) TestCreateTimedWithDuration() {
	view, err := s.service.Create(s.ctx, CreateParams{
		Type: infraction.TypeMute, Reason: "spamming", UserID: "1234", ActorID: "42",
		DurationSeconds: int64Ptr(3600),
	})
	s.Require().NoError(err)

	s.True(view.Active)
	s.Equal(testNow, view.InsertedAt)
	s.Require().NotNil(view.ExpiresAt)
	s.Equal(testNow.Add(time.Hour), *view.ExpiresAt)
	s.Require().NotNil(view.User)
	s.Equal("1234", view.User.UserID)
	s.Nil(view.User.Username, "not expanded")
	s.Equal("42", view.Actor.UserID)
}

func (s *ServiceSuite) TestCreateTimedWithoutDurationIsPermanent() {
	view, err := s.service.Create(s.ctx, CreateParams{
		Type: infraction.TypeBan, Reason: "raid", UserID: "1234", ActorID: "42",
	})
	s.Require().NoError(err)
	s.Nil(view.ExpiresAt)
	s.True(view.Active)
}

func (s *ServiceSuite) TestCreateNonTimedIgnoresDurationAndReadsInactive() {
	view, err := s.service.Create(s.ctx, CreateParams{
		Type: infraction.TypeWarning, Reason: "language", UserID: "1234", ActorID: "42",
		DurationSeconds: int64Ptr(3600),
	})
	s.Require().NoError(err)
	s.Nil(view.ExpiresAt, "duration ignored for non-timed types")
	s.False(view.Active)
}

func (s *ServiceSuite) TestCreateSupersedesActiveSameType() {
	first, err := s.service.Create(s.ctx, CreateParams{
		Type: infraction.TypeMute, Reason: "first", UserID: "1234", ActorID: "42",
	})
	s.Require().NoError(err)

	second, err := s.service.Create(s.ctx, CreateParams{
		Type: infraction.TypeMute, Reason: "second", UserID: "1234", ActorID: "42",
		DurationSeconds: int64Ptr(600),
	})
	s.Require().NoError(err)

	// Both records remain retrievable; only the newer reads active.
	oldView, err := s.service.GetByID(s.ctx, first.ID, false)
	s.Require().NoError(err)
	s.Require().NotNil(oldView)
	s.False(oldView.Active)

	newView, err := s.service.GetByID(s.ctx, second.ID, false)
	s.Require().NoError(err)
	s.True(newView.Active)

	current, err := s.service.Current(s.ctx, "1234", infraction.TypeMute, false)
	s.Require().NoError(err)
	s.Require().NotNil(current)
	s.Equal(second.ID, current.ID)
}

func (s *ServiceSuite) TestCreateDoesNotSupersedeOtherTypesOrUsers() {
	ban, err := s.service.Create(s.ctx, CreateParams{
		Type: infraction.TypeBan, Reason: "r", UserID: "1234", ActorID: "42",
	})
	s.Require().NoError(err)

	otherUser, err := s.service.Create(s.ctx, CreateParams{
		Type: infraction.TypeMute, Reason: "r", UserID: "5678", ActorID: "42",
	})
	s.Require().NoError(err)

	_, err = s.service.Create(s.ctx, CreateParams{
		Type: infraction.TypeMute, Reason: "r", UserID: "1234", ActorID: "42",
	})
	s.Require().NoError(err)

	banView, err := s.service.GetByID(s.ctx, ban.ID, false)
	s.Require().NoError(err)
	s.True(banView.Active, "different type untouched")

	otherView, err := s.service.GetByID(s.ctx, otherUser.ID, false)
	s.Require().NoError(err)
	s.True(otherView.Active, "different user untouched")
}

func (s *ServiceSuite) TestCreateLeavesExpiredRecordsAlone() {
	// An expired mute is not effectively active, so a new mute must not
	// touch it.
	expiredAt := testNow.Add(-time.Hour)
	id, err := s.store.Insert(s.ctx, &infraction.Infraction{
		Type: infraction.TypeMute, UserID: "1234", ActorID: "42",
		InsertedAt: testNow.Add(-2 * time.Hour), ExpiresAt: &expiredAt,
	})
	s.Require().NoError(err)

	_, err = s.service.Create(s.ctx, CreateParams{
		Type: infraction.TypeMute, Reason: "again", UserID: "1234", ActorID: "42",
	})
	s.Require().NoError(err)

	stored, err := s.store.GetByID(s.ctx, id)
	s.Require().NoError(err)
	s.Nil(stored.Active, "expired record keeps a nil override")
}

func (s *ServiceSuite) TestUpdateDurationRearmsFromUpdateTime() {
	view, err := s.service.Create(s.ctx, CreateParams{
		Type: infraction.TypeMute, Reason: "r", UserID: "1234", ActorID: "42",
		DurationSeconds: int64Ptr(60),
	})
	s.Require().NoError(err)

	laterCtx := requestcontext.WithTime(context.Background(), testNow.Add(30*time.Minute))
	updated, matched, err := s.service.Update(laterCtx, UpdateParams{
		ID: view.ID, DurationSeconds: int64Ptr(600),
	})
	s.Require().NoError(err)
	s.True(matched)
	s.Require().NotNil(updated.ExpiresAt)
	s.Equal(testNow.Add(30*time.Minute).Add(10*time.Minute), *updated.ExpiresAt)
}

func (s *ServiceSuite) TestUpdateDurationAppliesEvenToNonTimedTypes() {
	// Quirk preserved from the original behaviour: a duration update
	// re-arms expires_at without checking the type. The derived active
	// still reads false for non-timed types.
	view, err := s.service.Create(s.ctx, CreateParams{
		Type: infraction.TypeKick, Reason: "r", UserID: "1234", ActorID: "42",
	})
	s.Require().NoError(err)

	updated, matched, err := s.service.Update(s.ctx, UpdateParams{
		ID: view.ID, DurationSeconds: int64Ptr(600),
	})
	s.Require().NoError(err)
	s.True(matched)
	s.Require().NotNil(updated.ExpiresAt)
	s.False(updated.Active)
}

func (s *ServiceSuite) TestUpdateSelectiveFields() {
	view, err := s.service.Create(s.ctx, CreateParams{
		Type: infraction.TypeBan, Reason: "original", UserID: "1234", ActorID: "42",
	})
	s.Require().NoError(err)

	updated, matched, err := s.service.Update(s.ctx, UpdateParams{
		ID: view.ID, Reason: strPtr("amended"),
	})
	s.Require().NoError(err)
	s.True(matched)
	s.Equal("amended", updated.Reason)
	s.True(updated.Active, "active untouched by reason update")

	updated, matched, err = s.service.Update(s.ctx, UpdateParams{
		ID: view.ID, Active: boolPtr(false),
	})
	s.Require().NoError(err)
	s.True(matched)
	s.False(updated.Active)
	s.Equal("amended", updated.Reason)
}

func (s *ServiceSuite) TestUpdateUnknownIDReturnsNoMatch() {
	view, matched, err := s.service.Update(s.ctx, UpdateParams{
		ID: "does-not-exist", Reason: strPtr("r"),
	})
	s.Require().NoError(err)
	s.False(matched)
	s.Nil(view)
}

func (s *ServiceSuite) TestListActiveFilterUsesDerivedValue() {
	// Stored override absent, expiry past: derived inactive.
	expired := testNow.Add(-time.Minute)
	_, err := s.store.Insert(s.ctx, &infraction.Infraction{
		Type: infraction.TypeMute, UserID: "1234", ActorID: "42",
		Reason: "expired", InsertedAt: testNow.Add(-time.Hour), ExpiresAt: &expired,
	})
	s.Require().NoError(err)

	// Stored override true but non-timed: derived inactive.
	trueOverride := true
	_, err = s.store.Insert(s.ctx, &infraction.Infraction{
		Type: infraction.TypeWarning, UserID: "1234", ActorID: "42",
		Reason: "warned", InsertedAt: testNow, Active: &trueOverride,
	})
	s.Require().NoError(err)

	_, err = s.service.Create(s.ctx, CreateParams{
		Type: infraction.TypeBan, Reason: "live", UserID: "1234", ActorID: "42",
	})
	s.Require().NoError(err)

	active, err := s.service.List(s.ctx, infraction.Filter{UserID: "1234"}, boolPtr(true), false)
	s.Require().NoError(err)
	s.Require().Len(active, 1)
	s.Equal("live", active[0].Reason)

	inactive, err := s.service.List(s.ctx, infraction.Filter{UserID: "1234"}, boolPtr(false), false)
	s.Require().NoError(err)
	s.Len(inactive, 2)

	all, err := s.service.List(s.ctx, infraction.Filter{UserID: "1234"}, nil, false)
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *ServiceSuite) TestListShapesUserRefsAndRedactsRawIDs() {
	s.users.Put(user.Profile{UserID: "1234", Username: "lemon", Discriminator: 7})

	_, err := s.service.Create(s.ctx, CreateParams{
		Type: infraction.TypeMute, Reason: "r", UserID: "1234", ActorID: "42",
	})
	s.Require().NoError(err)

	expanded, err := s.service.List(s.ctx, infraction.Filter{}, nil, true)
	s.Require().NoError(err)
	s.Require().Len(expanded, 1)
	s.Require().NotNil(expanded[0].User.Username)
	s.Equal("lemon", *expanded[0].User.Username)
	// Actor has no stored profile: stub fallback.
	s.Equal("42", expanded[0].Actor.UserID)
	s.Nil(expanded[0].Actor.Username)

	plain, err := s.service.List(s.ctx, infraction.Filter{}, nil, false)
	s.Require().NoError(err)
	s.Nil(plain[0].User.Username, "stub even though a profile exists")
}

func (s *ServiceSuite) TestCurrentReturnsNilWithoutActiveRecord() {
	_, err := s.service.Create(s.ctx, CreateParams{
		Type: infraction.TypeKick, Reason: "r", UserID: "1234", ActorID: "42",
	})
	s.Require().NoError(err)

	current, err := s.service.Current(s.ctx, "1234", infraction.TypeKick, false)
	s.Require().NoError(err)
	s.Nil(current, "non-timed types are never current")
}

func (s *ServiceSuite) TestCurrentToleratesMultipleActiveRecords() {
	// The store should never hold two winners, but the engine must pick
	// one rather than error when it happens.
	for i := 0; i < 2; i++ {
		_, err := s.store.Insert(s.ctx, &infraction.Infraction{
			Type: infraction.TypeBan, UserID: "1234", ActorID: "42",
			Reason: "dup", InsertedAt: testNow,
		})
		s.Require().NoError(err)
	}

	current, err := s.service.Current(s.ctx, "1234", infraction.TypeBan, false)
	s.Require().NoError(err)
	s.Require().NotNil(current)
	s.True(current.Active)
}

func (s *ServiceSuite) TestGetByIDUnknownReturnsNil() {
	view, err := s.service.GetByID(s.ctx, "missing", false)
	s.Require().NoError(err)
	s.Nil(view)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}
