package domain

import "github.com/shopspring/decimal"

// Wire types for the HTTP surface. Quantities and ids arrive as raw
// strings/ints and are validated in the services, not trusted here.

type SelectionItem struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

type PlaceOrderRequest struct {
	Table string          `json:"table"`
	Items []SelectionItem `json:"items"`
}

type PlaceOrderResponse struct {
	OrderID string          `json:"order_id"`
	Status  Status          `json:"status"`
	Total   decimal.Decimal `json:"total"`
	Dropped []string        `json:"dropped_items,omitempty"`
}

type UpsertMenuItemRequest struct {
	Category string          `json:"category"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	Role      Role   `json:"role"`
	ExpiresAt string `json:"expires_at"`
}

type ReviewApplicationRequest struct {
	Approve bool   `json:"approve"`
	Role    string `json:"role,omitempty"`
}

// HistoryRow is one line of the billing/history table. Seq is the display
// sequence number within the filtered result set.
type HistoryRow struct {
	Seq       int             `json:"seq"`
	OrderID   string          `json:"order_id"`
	Table     string          `json:"table"`
	OrderedAt string          `json:"ordered_at"`
	Status    Status          `json:"status"`
	Total     decimal.Decimal `json:"total"`
}
