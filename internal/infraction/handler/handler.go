// Package handler exposes the infraction API consumed by the moderation bot.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"warden/internal/infraction"
	"warden/internal/infraction/service"
	"warden/internal/transport/http/shared"
	dErrors "warden/pkg/domain-errors"
	"warden/pkg/requestcontext"
)

// Service defines the interface for infraction operations.
type Service interface {
	Create(ctx context.Context, params service.CreateParams) (*infraction.View, error)
	Update(ctx context.Context, params service.UpdateParams) (*infraction.View, bool, error)
	List(ctx context.Context, filter infraction.Filter, active *bool, expand bool) ([]*infraction.View, error)
	GetByID(ctx context.Context, id string, expand bool) (*infraction.View, error)
	Current(ctx context.Context, userID string, typ infraction.Type, expand bool) (*infraction.View, error)
}

// Handler handles infraction endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register registers the infraction routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/bot/infractions", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Patch("/", h.handleUpdate)
		r.Get("/user/{user_id}", h.handleListByUser)
		r.Get("/type/{type}", h.handleListByType)
		r.Get("/user/{user_id}/{type}", h.handleListByUserAndType)
		r.Get("/user/{user_id}/{type}/current", h.handleCurrent)
		r.Get("/id/{infraction_id}", h.handleGetByID)
	})
}

type createRequest struct {
	Type     string `json:"type"`
	Reason   string `json:"reason"`
	UserID   string `json:"user_id"`
	ActorID  string `json:"actor_id"`
	Duration *int64 `json:"duration"`
	Expand   bool   `json:"expand"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.UserID == "" || req.ActorID == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "user_id and actor_id are required"))
		return
	}
	if !infraction.Type(req.Type).Valid() {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "unknown infraction type: "+req.Type))
		return
	}

	view, err := h.service.Create(ctx, service.CreateParams{
		Type:            infraction.Type(req.Type),
		Reason:          req.Reason,
		UserID:          req.UserID,
		ActorID:         req.ActorID,
		DurationSeconds: req.Duration,
		Expand:          req.Expand,
	})
	if err != nil {
		h.logError(ctx, "failed to create infraction", err)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, map[string]any{"infraction": view})
}

type updateRequest struct {
	ID       string  `json:"id"`
	Reason   *string `json:"reason"`
	Duration *int64  `json:"duration"`
	Active   *bool   `json:"active"`
	Expand   bool    `json:"expand"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.ID == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "id is required"))
		return
	}

	view, matched, err := h.service.Update(ctx, service.UpdateParams{
		ID:              req.ID,
		Reason:          req.Reason,
		Active:          req.Active,
		DurationSeconds: req.Duration,
		Expand:          req.Expand,
	})
	if err != nil {
		h.logError(ctx, "failed to update infraction", err)
		shared.WriteError(w, err)
		return
	}
	if !matched {
		shared.WriteJSON(w, http.StatusOK, map[string]any{"success": false})
		return
	}

	shared.WriteJSON(w, http.StatusOK, map[string]any{"infraction": view, "success": true})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, infraction.Filter{})
}

func (h *Handler) handleListByUser(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, infraction.Filter{UserID: chi.URLParam(r, "user_id")})
}

func (h *Handler) handleListByType(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, infraction.Filter{Type: infraction.Type(chi.URLParam(r, "type"))})
}

func (h *Handler) handleListByUserAndType(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, infraction.Filter{
		UserID: chi.URLParam(r, "user_id"),
		Type:   infraction.Type(chi.URLParam(r, "type")),
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, filter infraction.Filter) {
	ctx := r.Context()
	params := r.URL.Query()
	active := shared.ParseBool(params, "active", nil)
	expand := shared.ParseBoolFlag(params, "expand", false)

	views, err := h.service.List(ctx, filter, active, expand)
	if err != nil {
		h.logError(ctx, "failed to list infractions", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, views)
}

func (h *Handler) handleCurrent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	expand := shared.ParseBoolFlag(r.URL.Query(), "expand", false)

	view, err := h.service.Current(ctx,
		chi.URLParam(r, "user_id"),
		infraction.Type(chi.URLParam(r, "type")),
		expand,
	)
	if err != nil {
		h.logError(ctx, "failed to query current infraction", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"infraction": view})
}

func (h *Handler) handleGetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	expand := shared.ParseBoolFlag(r.URL.Query(), "expand", false)

	view, err := h.service.GetByID(ctx, chi.URLParam(r, "infraction_id"), expand)
	if err != nil {
		h.logError(ctx, "failed to get infraction", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"infraction": view})
}

func (h *Handler) logError(ctx context.Context, msg string, err error) {
	h.logger.Error(msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err.Error(),
	)
}
