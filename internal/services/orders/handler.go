package orders

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"front-of-house/internal/common/httpx"
	"front-of-house/internal/domain"
	"front-of-house/internal/services/auth"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler { return &Handler{service: service} }

func (h *Handler) Place(w http.ResponseWriter, r *http.Request) {
	var req domain.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	resp, err := h.service.Place(r.Context(), req)
	switch {
	case errors.Is(err, domain.ErrEmptySelection):
		httpx.WriteProblem(w, http.StatusBadRequest, "empty_selection", "select at least one item to order")
	case errors.Is(err, domain.ErrMissingTable):
		httpx.WriteProblem(w, http.StatusBadRequest, "missing_table", "table identifier is required")
	case err != nil:
		httpx.WriteProblem(w, http.StatusInternalServerError, "db_error", "could not place order")
	default:
		httpx.WriteJSON(w, http.StatusCreated, resp)
	}
}

func (h *Handler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_id", "order id must be a uuid")
		return
	}

	changedBy := "order-service"
	if session, ok := auth.SessionFrom(r.Context()); ok {
		changedBy = session.StaffName
	}

	err = h.service.MarkDelivered(r.Context(), id, changedBy)
	switch {
	case errors.Is(err, ErrOrderNotFound):
		httpx.WriteProblem(w, http.StatusNotFound, "not_found", "order not found")
	case errors.Is(err, domain.ErrInvalidTransition):
		httpx.WriteProblem(w, http.StatusConflict, "invalid_transition", err.Error())
	case err != nil:
		httpx.WriteProblem(w, http.StatusInternalServerError, "db_error", "could not update order")
	default:
		httpx.WriteJSON(w, http.StatusOK, map[string]any{
			"order_id": id.String(),
			"status":   domain.StatusDelivered,
		})
	}
}
