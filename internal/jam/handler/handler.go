// Package handler exposes the code jam signup endpoints.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"warden/internal/jam"
	"warden/internal/jam/service"
	"warden/internal/transport/http/shared"
	dErrors "warden/pkg/domain-errors"
	"warden/pkg/requestcontext"
)

// Service defines the interface for jam signup operations.
type Service interface {
	Check(ctx context.Context, jamID int64) (jam.Verdict, error)
	ApplyForJam(ctx context.Context, jamID int64, values map[string]string) (*service.ApplyResult, error)
}

// Handler handles jam signup endpoints. All routes require an authenticated
// identity in the request context.
type Handler struct {
	logger  *slog.Logger
	service Service
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register registers the jam routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/jams/{jam}/join", func(r chi.Router) {
		r.Get("/", h.handleCheck)
		r.Post("/", h.handleApply)
	})
}

type checkResponse struct {
	Blocked bool           `json:"blocked"`
	Ban     *jam.BanRecord `json:"ban,omitempty"`
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	jamID, err := jamParam(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	verdict, err := h.service.Check(ctx, jamID)
	if err != nil {
		h.logError(ctx, "jam gate check failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, checkResponse{Blocked: verdict.Blocked, Ban: verdict.Record})
}

type applyRequest struct {
	Answers map[string]string `json:"answers"`
}

type applyResponse struct {
	Status service.ApplyStatus `json:"status"`
	Ban    *jam.BanRecord      `json:"ban,omitempty"`
}

func (h *Handler) handleApply(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	jamID, err := jamParam(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	result, err := h.service.ApplyForJam(ctx, jamID, req.Answers)
	if err != nil {
		h.logError(ctx, "jam application failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, applyResponse{Status: result.Status, Ban: result.Ban})
}

func jamParam(r *http.Request) (int64, error) {
	jamID, err := strconv.ParseInt(chi.URLParam(r, "jam"), 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeBadRequest, "jam id must be an integer")
	}
	return jamID, nil
}

func (h *Handler) logError(ctx context.Context, msg string, err error) {
	h.logger.Error(msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err.Error(),
	)
}
