package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"front-of-house/internal/common/httpx"
	"front-of-house/internal/domain"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler { return &Handler{service: service} }

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	id, err := h.service.Register(r.Context(), req)
	if errors.Is(err, ErrEmailTaken) {
		httpx.WriteProblem(w, http.StatusConflict, "email_taken", err.Error())
		return
	}
	if err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"application_id": id.String(),
		"status":         domain.StaffPending,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	resp, err := h.service.Login(r.Context(), req)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		httpx.WriteProblem(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, ErrNotActive):
		httpx.WriteProblem(w, http.StatusForbidden, "not_active", err.Error())
	case err != nil:
		httpx.WriteProblem(w, http.StatusInternalServerError, "db_error", "login failed")
	default:
		httpx.WriteJSON(w, http.StatusOK, resp)
	}
}

func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.service.Applications(r.Context())
	if err != nil {
		httpx.WriteProblem(w, http.StatusInternalServerError, "db_error", "could not list applications")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"applications": apps})
}

func (h *Handler) ReviewApplication(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_id", "application id must be a uuid")
		return
	}
	var req domain.ReviewApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	if err := h.service.Review(r.Context(), id, req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "review_failed", err.Error())
		return
	}
	status := domain.StaffRejected
	if req.Approve {
		status = domain.StaffActive
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"id": id.String(), "status": status})
}
