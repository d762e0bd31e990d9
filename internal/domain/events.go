package domain

import "time"

// Messages published to RabbitMQ. Decimals travel as strings so consumers
// in other languages do not have to parse Go-specific encodings.

type TicketLine struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

// TicketMessage announces a freshly placed order to the kitchen topic
// exchange.
type TicketMessage struct {
	OrderID   string       `json:"order_id"`
	Table     string       `json:"table"`
	OrderedAt time.Time    `json:"ordered_at"`
	Lines     []TicketLine `json:"lines"`
	Total     string       `json:"total"`
}

// StatusChangeMessage is fanned out on every applied status transition.
type StatusChangeMessage struct {
	OrderID   string    `json:"order_id"`
	OldStatus Status    `json:"old_status"`
	NewStatus Status    `json:"new_status"`
	ChangedBy string    `json:"changed_by"`
	Timestamp time.Time `json:"timestamp"`
}

// TicketFor builds the kitchen message for a placed order.
func TicketFor(o Order) TicketMessage {
	lines := make([]TicketLine, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, TicketLine{
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.StringFixed(2),
			LineTotal: l.Total().StringFixed(2),
		})
	}
	return TicketMessage{
		OrderID:   o.ID.String(),
		Table:     o.TableID,
		OrderedAt: o.OrderedAt,
		Lines:     lines,
		Total:     o.Total.StringFixed(2),
	}
}
