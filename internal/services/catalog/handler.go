package catalog

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

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		httpx.WriteProblem(w, http.StatusInternalServerError, "db_error", "could not load menu")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.service.Categories(r.Context())
	if err != nil {
		httpx.WriteProblem(w, http.StatusInternalServerError, "db_error", "could not load categories")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"categories": cats})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.UpsertMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	item, err := h.service.Create(r.Context(), req)
	if err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_id", "menu item id must be a uuid")
		return
	}
	var req domain.UpsertMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	item, err := h.service.Update(r.Context(), id, req)
	if errors.Is(err, ErrNotFound) {
		httpx.WriteProblem(w, http.StatusNotFound, "not_found", "menu item not found")
		return
	}
	if err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_id", "menu item id must be a uuid")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.WriteProblem(w, http.StatusNotFound, "not_found", "menu item not found")
			return
		}
		httpx.WriteProblem(w, http.StatusInternalServerError, "db_error", "could not delete menu item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
