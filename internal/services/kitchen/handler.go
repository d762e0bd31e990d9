package kitchen

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"front-of-house/internal/common/httpx"
	"front-of-house/internal/domain"
	"front-of-house/internal/services/auth"
	"front-of-house/internal/services/orders"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler { return &Handler{service: service} }

// Tickets renders one ticket per outstanding order: table, timestamp,
// every line with its total, and the order total recomputed from lines.
func (h *Handler) Tickets(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.Tickets(r.Context())
	if err != nil {
		httpx.WriteProblem(w, http.StatusInternalServerError, "db_error", "could not load tickets")
		return
	}

	tickets := make([]domain.TicketMessage, 0, len(list))
	for _, o := range list {
		o.Total = o.RecomputedTotal()
		tickets = append(tickets, domain.TicketFor(o))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"tickets": tickets})
}

func (h *Handler) MarkReady(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_id", "order id must be a uuid")
		return
	}

	changedBy := "kitchen-service"
	if session, ok := auth.SessionFrom(r.Context()); ok {
		changedBy = session.StaffName
	}

	err = h.service.MarkReady(r.Context(), id, changedBy)
	switch {
	case errors.Is(err, orders.ErrOrderNotFound):
		httpx.WriteProblem(w, http.StatusNotFound, "not_found", "order not found")
	case errors.Is(err, domain.ErrInvalidTransition):
		httpx.WriteProblem(w, http.StatusConflict, "invalid_transition", err.Error())
	case err != nil:
		httpx.WriteProblem(w, http.StatusInternalServerError, "db_error", "could not update order")
	default:
		httpx.WriteJSON(w, http.StatusOK, map[string]any{
			"order_id": id.String(),
			"status":   domain.StatusReady,
		})
	}
}
