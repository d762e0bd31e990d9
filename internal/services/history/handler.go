package history

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"front-of-house/internal/common/httpx"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler { return &Handler{service: service} }

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	table := r.URL.Query().Get("table")

	rows, err := h.service.List(r.Context(), date, table)
	if err != nil {
		if errors.Is(err, ErrBadDateFilter) {
			httpx.WriteProblem(w, http.StatusBadRequest, "bad_filter", err.Error())
			return
		}
		httpx.WriteProblem(w, http.StatusInternalServerError, "db_error", "could not load history")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"orders": rows})
}

func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_id", "order id must be a uuid")
		return
	}
	o, ok, err := h.service.Detail(r.Context(), id)
	if err != nil {
		httpx.WriteProblem(w, http.StatusInternalServerError, "db_error", "could not load order")
		return
	}
	if !ok {
		httpx.WriteProblem(w, http.StatusNotFound, "not_found", "order not found")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, o)
}
