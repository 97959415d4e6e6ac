package order

import "github.com/freshmart/admin-console/internal/domain"

// CreateOrderRequest represents the input for placing an order on a
// customer's behalf.
type CreateOrderRequest struct {
	UserID   string             `json:"userId" binding:"required"`
	Items    []domain.OrderItem `json:"items" binding:"required,min=1,dive"`
	Shipping domain.Shipping    `json:"shipping"`
}

// UpdateStatusRequest represents a lifecycle move for an order.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// DeleteOrderRequest represents the typed-confirmation input for an order
// delete. The operator retypes the customer's display name.
type DeleteOrderRequest struct {
	Confirm string `json:"confirm" binding:"required"`
}

// StatusOptionsResponse lists the states an order may move to from its
// current state, so the UI can render only legal choices.
type StatusOptionsResponse struct {
	Current domain.OrderStatus   `json:"current"`
	Next    []domain.OrderStatus `json:"next"`
}
