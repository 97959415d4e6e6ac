package order

import (
	"context"

	"github.com/freshmart/admin-console/internal/domain"
	"github.com/freshmart/admin-console/internal/remote"
)

const orderFields = `
	_id
	userId
	customerName
	items {
		productId
		productName
		quantity
		price
	}
	shipping {
		phone
		address
	}
	totalPrice
	status
	createdAt
	updatedAt
`

const paginatorFields = `
	slNo
	prev
	next
	perPage
	totalPosts
	totalPages
	currentPage
	hasPrevPage
	hasNextPage
	totalDocs
`

type wireOrder struct {
	ID           string             `json:"_id"`
	UserID       string             `json:"userId"`
	CustomerName string             `json:"customerName"`
	Items        []domain.OrderItem `json:"items"`
	Shipping     domain.Shipping    `json:"shipping"`
	TotalPrice   float64            `json:"totalPrice"`
	Status       string             `json:"status"`
	CreatedAt    string             `json:"createdAt"`
	UpdatedAt    string             `json:"updatedAt"`
}

func (w wireOrder) toDomain() domain.Order {
	return domain.Order{
		ID:           w.ID,
		UserID:       w.UserID,
		CustomerName: w.CustomerName,
		Items:        w.Items,
		Shipping:     w.Shipping,
		TotalPrice:   w.TotalPrice,
		Status:       domain.OrderStatus(w.Status),
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
}

// orderRepository implements domain.OrderRepository against the remote
// GraphQL API.
type orderRepository struct {
	client *remote.Client
}

// NewRepository creates an OrderRepository backed by the remote API.
func NewRepository(client *remote.Client) domain.OrderRepository {
	return &orderRepository{client: client}
}

func (r *orderRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Order], error) {
	query := `
		query getOrderWithPagination($page: Int!, $limit: Int!, $keyword: String!, $filter: String!) {
			getOrderWithPagination(page: $page, limit: $limit, pagination: true, keyword: $keyword, filter: $filter) {
				orders {` + orderFields + `}
				paginator {` + paginatorFields + `}
			}
		}`

	var resp struct {
		Result struct {
			Orders    []wireOrder      `json:"orders"`
			Paginator domain.Paginator `json:"paginator"`
		} `json:"getOrderWithPagination"`
	}
	vars := map[string]any{
		"page":    req.Page,
		"limit":   req.Limit,
		"keyword": req.Keyword,
		"filter":  req.Filter,
	}
	if err := r.client.Run(ctx, query, vars, &resp); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, len(resp.Result.Orders))
	for i, o := range resp.Result.Orders {
		orders[i] = o.toDomain()
	}
	return &domain.PageResult[domain.Order]{
		Data:      orders,
		Paginator: resp.Result.Paginator,
	}, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		query getOrderById($id: ID!) {
			getOrderById(_id: $id) {` + orderFields + `}
		}`

	var resp struct {
		Order *wireOrder `json:"getOrderById"`
	}
	if err := r.client.Run(ctx, query, map[string]any{"id": id}, &resp); err != nil {
		return nil, err
	}
	if resp.Order == nil || resp.Order.ID == "" {
		return nil, domain.ErrNotFound
	}
	o := resp.Order.toDomain()
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, input domain.OrderInput) (*domain.Order, error) {
	query := `
		mutation createOrder($input: OrderInput!) {
			createOrder(input: $input) {
				isSuccess
				messageEn
				messageKh
				order {` + orderFields + `}
			}
		}`

	var resp struct {
		Result struct {
			remote.MutationStatus
			Order *wireOrder `json:"order"`
		} `json:"createOrder"`
	}
	if err := r.client.Run(ctx, query, map[string]any{"input": input}, &resp); err != nil {
		return nil, err
	}
	if err := resp.Result.Err("order was not created"); err != nil {
		return nil, err
	}
	if resp.Result.Order == nil {
		return nil, domain.NewAppError(domain.CodeUpstream, "remote API returned no order", nil)
	}
	o := resp.Result.Order.toDomain()
	return &o, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	query := `
		mutation updateOrderStatus($id: ID!, $status: String!) {
			updateOrderStatus(_id: $id, status: $status) {
				isSuccess
				messageEn
				messageKh
			}
		}`

	var resp struct {
		Result remote.MutationStatus `json:"updateOrderStatus"`
	}
	vars := map[string]any{"id": id, "status": string(status)}
	if err := r.client.Run(ctx, query, vars, &resp); err != nil {
		return err
	}
	return resp.Result.Err("order status was not updated")
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	query := `
		mutation deleteOrder($id: ID!) {
			deleteOrder(_id: $id) {
				isSuccess
				messageEn
				messageKh
			}
		}`

	var resp struct {
		Result remote.MutationStatus `json:"deleteOrder"`
	}
	if err := r.client.Run(ctx, query, map[string]any{"id": id}, &resp); err != nil {
		return err
	}
	return resp.Result.Err("order was not deleted")
}
