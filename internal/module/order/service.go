package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/freshmart/admin-console/internal/domain"
	"github.com/freshmart/admin-console/internal/notify"
)

// orderService implements domain.OrderService.
type orderService struct {
	repo     domain.OrderRepository
	notifier *notify.Hub
}

// NewService creates an OrderService with the given repository.
func NewService(repo domain.OrderRepository, notifier *notify.Hub) domain.OrderService {
	return &orderService{repo: repo, notifier: notifier}
}

func (s *orderService) ListOrders(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Order], error) {
	if req.Filter != "" && !domain.OrderStatus(req.Filter).Valid() {
		return nil, domain.NewAppError(domain.CodeValidation,
			fmt.Sprintf("unknown order status %q", req.Filter), nil)
	}
	return s.repo.List(ctx, req)
}

func (s *orderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "order id is required", nil)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *orderService) CreateOrder(ctx context.Context, input domain.OrderInput) (*domain.Order, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "customer id is required", nil)
	}
	if len(input.Items) == 0 {
		return nil, domain.NewAppError(domain.CodeValidation, "order must contain at least one item", nil)
	}
	for _, item := range input.Items {
		if item.Quantity < 1 {
			return nil, domain.NewAppError(domain.CodeValidation, "item quantity must be at least 1", nil)
		}
	}

	order, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	s.notifier.Success("Order created for " + order.CustomerName)
	return order, nil
}

// UpdateOrderStatus moves an order along its lifecycle. The transition is
// checked locally before the remote call; an order already in a terminal
// state, or a jump the lifecycle does not allow, is rejected without
// touching the remote API.
func (s *orderService) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	if !status.Valid() {
		return domain.NewAppError(domain.CodeValidation,
			fmt.Sprintf("unknown order status %q", status), nil)
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !order.Status.CanTransition(status) {
		return domain.NewAppError(domain.CodeValidation,
			fmt.Sprintf("order cannot move from %s to %s", order.Status, status), nil)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.notifier.Success(fmt.Sprintf("Order for %s is now %s", order.CustomerName, status))
	return nil
}

// DeleteOrder removes an order after the operator retyped the customer's
// display name. The match is exact and case-sensitive.
func (s *orderService) DeleteOrder(ctx context.Context, id, confirm string) error {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if confirm != order.CustomerName {
		return domain.NewAppError(domain.CodeValidation,
			"confirmation does not match the customer name", nil)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.notifier.Success("Order for " + order.CustomerName + " deleted")
	return nil
}
