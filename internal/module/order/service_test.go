package order

import (
	"context"
	"testing"
	"time"

	"github.com/freshmart/admin-console/internal/domain"
	"github.com/freshmart/admin-console/internal/notify"
)

// fakeRepo implements domain.OrderRepository in memory.
type fakeRepo struct {
	orders        map[string]domain.Order
	statusUpdates []domain.OrderStatus
	deleted       []string
}

func newFakeRepo(orders ...domain.Order) *fakeRepo {
	r := &fakeRepo{orders: make(map[string]domain.Order)}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeRepo) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Order], error) {
	out := make([]domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	return &domain.PageResult[domain.Order]{
		Data:      out,
		Paginator: domain.Paginator{CurrentPage: req.Page, TotalPages: 1, TotalDocs: len(out)},
	}, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &o, nil
}

func (r *fakeRepo) Create(ctx context.Context, input domain.OrderInput) (*domain.Order, error) {
	o := domain.Order{
		ID:       "o1",
		UserID:   input.UserID,
		Items:    input.Items,
		Shipping: input.Shipping,
		Status:   domain.OrderPending,
	}
	r.orders[o.ID] = o
	return &o, nil
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	r.orders[id] = o
	r.statusUpdates = append(r.statusUpdates, status)
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.orders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.orders, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func newTestService(repo domain.OrderRepository) domain.OrderService {
	return NewService(repo, notify.NewHub(time.Hour))
}

func pendingOrder(id, customer string) domain.Order {
	return domain.Order{
		ID:           id,
		CustomerName: customer,
		Status:       domain.OrderPending,
		Items:        []domain.OrderItem{{ProductID: "p1", Quantity: 1, Price: 2}},
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	t.Run("happy_pending_to_accepted", func(t *testing.T) {
		repo := newFakeRepo(pendingOrder("o1", "Dara"))
		svc := newTestService(repo)

		if err := svc.UpdateOrderStatus(context.Background(), "o1", domain.OrderAccepted); err != nil {
			t.Fatal(err)
		}
		if repo.orders["o1"].Status != domain.OrderAccepted {
			t.Errorf("status not applied: %s", repo.orders["o1"].Status)
		}
	})

	t.Run("happy_full_lifecycle", func(t *testing.T) {
		repo := newFakeRepo(pendingOrder("o1", "Dara"))
		svc := newTestService(repo)
		ctx := context.Background()

		for _, next := range []domain.OrderStatus{
			domain.OrderAccepted, domain.OrderProcessing, domain.OrderDelivered, domain.OrderCompleted,
		} {
			if err := svc.UpdateOrderStatus(ctx, "o1", next); err != nil {
				t.Fatalf("transition to %s: %v", next, err)
			}
		}
	})

	t.Run("error_skipping_states", func(t *testing.T) {
		repo := newFakeRepo(pendingOrder("o1", "Dara"))
		svc := newTestService(repo)

		err := svc.UpdateOrderStatus(context.Background(), "o1", domain.OrderCompleted)
		if !domain.IsValidation(err) {
			t.Fatalf("expected validation error for Pending->Completed, got %v", err)
		}
		if len(repo.statusUpdates) != 0 {
			t.Error("illegal transition reached the repository")
		}
	})

	t.Run("error_terminal_state", func(t *testing.T) {
		o := pendingOrder("o1", "Dara")
		o.Status = domain.OrderCancelled
		repo := newFakeRepo(o)
		svc := newTestService(repo)

		err := svc.UpdateOrderStatus(context.Background(), "o1", domain.OrderAccepted)
		if !domain.IsValidation(err) {
			t.Errorf("expected validation error from terminal state, got %v", err)
		}
	})

	t.Run("error_unknown_status", func(t *testing.T) {
		repo := newFakeRepo(pendingOrder("o1", "Dara"))
		svc := newTestService(repo)

		err := svc.UpdateOrderStatus(context.Background(), "o1", "Shipped")
		if !domain.IsValidation(err) {
			t.Errorf("expected validation error for unknown status, got %v", err)
		}
	})
}

func TestDeleteOrder(t *testing.T) {
	t.Run("happy_exact_confirmation", func(t *testing.T) {
		repo := newFakeRepo(pendingOrder("o1", "Sokha"))
		svc := newTestService(repo)

		if err := svc.DeleteOrder(context.Background(), "o1", "Sokha"); err != nil {
			t.Fatal(err)
		}
		if len(repo.deleted) != 1 {
			t.Error("order not deleted")
		}
	})

	t.Run("error_case_mismatch", func(t *testing.T) {
		repo := newFakeRepo(pendingOrder("o1", "Sokha"))
		svc := newTestService(repo)

		if err := svc.DeleteOrder(context.Background(), "o1", "sokha"); !domain.IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if len(repo.deleted) != 0 {
			t.Error("order deleted despite mismatched confirmation")
		}
	})
}

func TestListOrders_FilterValidation(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.ListOrders(context.Background(), domain.PageRequest{Page: 1, Limit: 10, Filter: "Shipped"})
	if !domain.IsValidation(err) {
		t.Errorf("expected validation error for unknown filter status, got %v", err)
	}

	if _, err := svc.ListOrders(context.Background(), domain.PageRequest{Page: 1, Limit: 10, Filter: "Pending"}); err != nil {
		t.Errorf("expected valid filter accepted, got %v", err)
	}
}

func TestCreateOrder_Validation(t *testing.T) {
	svc := newTestService(newFakeRepo())
	ctx := context.Background()

	if _, err := svc.CreateOrder(ctx, domain.OrderInput{}); !domain.IsValidation(err) {
		t.Errorf("expected validation error for empty input, got %v", err)
	}
	if _, err := svc.CreateOrder(ctx, domain.OrderInput{UserID: "u1"}); !domain.IsValidation(err) {
		t.Errorf("expected validation error for no items, got %v", err)
	}
	if _, err := svc.CreateOrder(ctx, domain.OrderInput{
		UserID: "u1",
		Items:  []domain.OrderItem{{ProductID: "p1", Quantity: 0}},
	}); !domain.IsValidation(err) {
		t.Errorf("expected validation error for zero quantity, got %v", err)
	}
}
