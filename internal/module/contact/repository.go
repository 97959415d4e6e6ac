package contact

import (
	"context"

	"github.com/freshmart/admin-console/internal/domain"
	"github.com/freshmart/admin-console/internal/remote"
)

const contactFields = `
	_id
	contactName
	email
	subject
	message
	reply
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

type wireContact struct {
	ID          string `json:"_id"`
	ContactName string `json:"contactName"`
	Email       string `json:"email"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
	Reply       string `json:"reply"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func (w wireContact) toDomain() domain.Contact {
	return domain.Contact{
		ID:          w.ID,
		ContactName: w.ContactName,
		Email:       w.Email,
		Subject:     w.Subject,
		Message:     w.Message,
		Reply:       w.Reply,
		Status:      w.Status,
		ReceivedAt:  w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

// contactRepository implements domain.ContactRepository against the remote
// GraphQL API.
type contactRepository struct {
	client *remote.Client
}

// NewRepository creates a ContactRepository backed by the remote API.
func NewRepository(client *remote.Client) domain.ContactRepository {
	return &contactRepository{client: client}
}

func (r *contactRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Contact], error) {
	query := `
		query getContactWithPagination($page: Int!, $limit: Int!, $keyword: String!, $filter: String!) {
			getContactWithPagination(page: $page, limit: $limit, pagination: true, keyword: $keyword, filter: $filter) {
				contacts {` + contactFields + `}
				paginator {` + paginatorFields + `}
			}
		}`

	var resp struct {
		Result struct {
			Contacts  []wireContact    `json:"contacts"`
			Paginator domain.Paginator `json:"paginator"`
		} `json:"getContactWithPagination"`
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

	contacts := make([]domain.Contact, len(resp.Result.Contacts))
	for i, c := range resp.Result.Contacts {
		contacts[i] = c.toDomain()
	}
	return &domain.PageResult[domain.Contact]{
		Data:      contacts,
		Paginator: resp.Result.Paginator,
	}, nil
}

func (r *contactRepository) Create(ctx context.Context, input domain.ContactInput) error {
	query := `
		mutation createContact($input: ContactInput!) {
			createContact(input: $input) {
				isSuccess
				messageEn
				messageKh
			}
		}`

	var resp struct {
		Result remote.MutationStatus `json:"createContact"`
	}
	if err := r.client.Run(ctx, query, map[string]any{"input": input}, &resp); err != nil {
		return err
	}
	return resp.Result.Err("contact was not created")
}

func (r *contactRepository) Reply(ctx context.Context, id, message string) error {
	query := `
		mutation replyContact($id: ID!, $reply: String!) {
			replyContact(_id: $id, reply: $reply) {
				isSuccess
				messageEn
				messageKh
			}
		}`

	var resp struct {
		Result remote.MutationStatus `json:"replyContact"`
	}
	vars := map[string]any{"id": id, "reply": message}
	if err := r.client.Run(ctx, query, vars, &resp); err != nil {
		return err
	}
	return resp.Result.Err("reply was not sent")
}

func (r *contactRepository) Delete(ctx context.Context, id string) error {
	query := `
		mutation deleteContact($id: ID!) {
			deleteContact(_id: $id) {
				isSuccess
				messageEn
				messageKh
			}
		}`

	var resp struct {
		Result remote.MutationStatus `json:"deleteContact"`
	}
	if err := r.client.Run(ctx, query, map[string]any{"id": id}, &resp); err != nil {
		return err
	}
	return resp.Result.Err("contact was not deleted")
}
