package domain

import "context"

// OrderStatus is the named lifecycle state of an order.
type OrderStatus string

// The fixed set of order states used by the remote API.
const (
	OrderPending    OrderStatus = "Pending"
	OrderAccepted   OrderStatus = "Accepted"
	OrderProcessing OrderStatus = "Processing"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCompleted  OrderStatus = "Completed"
	OrderCancelled  OrderStatus = "Cancelled"
)

// orderTransitions is the valid-transition table. Completed and Cancelled
// are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderAccepted, OrderCancelled},
	OrderAccepted:   {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderDelivered, OrderCancelled},
	OrderDelivered:  {OrderCompleted},
	OrderCompleted:  {},
	OrderCancelled:  {},
}

// Valid reports whether s is one of the known order states.
func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransition reports whether an order in state s may move to next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// NextStatuses returns the states reachable from s. The result is a copy.
func (s OrderStatus) NextStatuses() []OrderStatus {
	allowed := orderTransitions[s]
	out := make([]OrderStatus, len(allowed))
	copy(out, allowed)
	return out
}

// OrderItem is one product line within an order.
type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// Shipping carries the delivery contact details of an order.
type Shipping struct {
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Order is a customer order as served by the remote API.
type Order struct {
	ID           string      `json:"id"`
	UserID       string      `json:"userId"`
	CustomerName string      `json:"customerName"`
	Items        []OrderItem `json:"items"`
	Shipping     Shipping    `json:"shipping"`
	TotalPrice   float64     `json:"totalPrice"`
	Status       OrderStatus `json:"status"`
	CreatedAt    string      `json:"createdAt"`
	UpdatedAt    string      `json:"updatedAt"`
}

// OrderInput carries the fields for creating an order on a customer's behalf.
type OrderInput struct {
	UserID   string      `json:"userId"`
	Items    []OrderItem `json:"items"`
	Shipping Shipping    `json:"shipping"`
}

// OrderRepository is the remote-API access interface for orders.
type OrderRepository interface {
	List(ctx context.Context, req PageRequest) (*PageResult[Order], error)
	GetByID(ctx context.Context, id string) (*Order, error)
	Create(ctx context.Context, input OrderInput) (*Order, error)
	UpdateStatus(ctx context.Context, id string, status OrderStatus) error
	Delete(ctx context.Context, id string) error
}

// OrderService is the console-side business interface for orders. Status
// changes are checked against the transition table before they reach the
// remote API.
type OrderService interface {
	ListOrders(ctx context.Context, req PageRequest) (*PageResult[Order], error)
	GetOrder(ctx context.Context, id string) (*Order, error)
	CreateOrder(ctx context.Context, input OrderInput) (*Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status OrderStatus) error
	// DeleteOrder removes an order. confirm must match the order's customer
	// display name exactly (case-sensitive).
	DeleteOrder(ctx context.Context, id, confirm string) error
}
