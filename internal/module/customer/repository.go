package customer

import (
	"context"

	"github.com/freshmart/admin-console/internal/domain"
	"github.com/freshmart/admin-console/internal/remote"
)

const customerFields = `
	_id
	username
	phoneNumber
	email
	checked
	role
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

type wireCustomer struct {
	ID          string `json:"_id"`
	Username    string `json:"username"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Checked     bool   `json:"checked"`
	Role        string `json:"role"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func (w wireCustomer) toDomain() domain.Customer {
	return domain.Customer(w)
}

// customerRepository implements domain.CustomerRepository against the
// remote GraphQL API.
type customerRepository struct {
	client *remote.Client
}

// NewRepository creates a CustomerRepository backed by the remote API.
func NewRepository(client *remote.Client) domain.CustomerRepository {
	return &customerRepository{client: client}
}

func (r *customerRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Customer], error) {
	query := `
		query getUserWithPagination($page: Int!, $limit: Int!, $keyword: String!, $filter: String!) {
			getUserWithPagination(page: $page, limit: $limit, pagination: true, keyword: $keyword, filter: $filter) {
				users {` + customerFields + `}
				paginator {` + paginatorFields + `}
			}
		}`

	var resp struct {
		Result struct {
			Users     []wireCustomer   `json:"users"`
			Paginator domain.Paginator `json:"paginator"`
		} `json:"getUserWithPagination"`
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

	customers := make([]domain.Customer, len(resp.Result.Users))
	for i, u := range resp.Result.Users {
		customers[i] = u.toDomain()
	}
	return &domain.PageResult[domain.Customer]{
		Data:      customers,
		Paginator: resp.Result.Paginator,
	}, nil
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `
		query getUserById($id: ID!) {
			getUserById(_id: $id) {` + customerFields + `}
		}`

	var resp struct {
		User *wireCustomer `json:"getUserById"`
	}
	if err := r.client.Run(ctx, query, map[string]any{"id": id}, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil || resp.User.ID == "" {
		return nil, domain.ErrNotFound
	}
	c := resp.User.toDomain()
	return &c, nil
}

func (r *customerRepository) Update(ctx context.Context, id string, input domain.CustomerInput) error {
	query := `
		mutation updateUser($id: ID!, $input: UserInput!) {
			updateUser(_id: $id, input: $input) {
				isSuccess
				messageEn
				messageKh
			}
		}`

	var resp struct {
		Result remote.MutationStatus `json:"updateUser"`
	}
	vars := map[string]any{"id": id, "input": input}
	if err := r.client.Run(ctx, query, vars, &resp); err != nil {
		return err
	}
	return resp.Result.Err("customer was not updated")
}

func (r *customerRepository) UpdateStatus(ctx context.Context, id string, checked bool) error {
	query := `
		mutation updateUserStatus($id: ID!, $checked: Boolean!) {
			updateUserStatus(_id: $id, checked: $checked) {
				isSuccess
				messageEn
				messageKh
			}
		}`

	var resp struct {
		Result remote.MutationStatus `json:"updateUserStatus"`
	}
	vars := map[string]any{"id": id, "checked": checked}
	if err := r.client.Run(ctx, query, vars, &resp); err != nil {
		return err
	}
	return resp.Result.Err("customer status was not updated")
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	query := `
		mutation deleteUser($id: ID!) {
			deleteUser(_id: $id) {
				isSuccess
				messageEn
				messageKh
			}
		}`

	var resp struct {
		Result remote.MutationStatus `json:"deleteUser"`
	}
	if err := r.client.Run(ctx, query, map[string]any{"id": id}, &resp); err != nil {
		return err
	}
	return resp.Result.Err("customer was not deleted")
}
