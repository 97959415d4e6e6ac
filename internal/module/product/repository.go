package product

import (
	"context"

	"github.com/freshmart/admin-console/internal/domain"
	"github.com/freshmart/admin-console/internal/remote"
)

const productFields = `
	_id
	productName
	category
	imageUrl
	imagePublicId
	desc
	price
	averageRating
	reviewsCount
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

// wireProduct is the remote API's product shape; _id converts to ID.
type wireProduct struct {
	ID            string  `json:"_id"`
	ProductName   string  `json:"productName"`
	Category      string  `json:"category"`
	ImageURL      string  `json:"imageUrl"`
	ImagePublicID string  `json:"imagePublicId"`
	Desc          string  `json:"desc"`
	Price         float64 `json:"price"`
	AverageRating float64 `json:"averageRating"`
	ReviewsCount  int     `json:"reviewsCount"`
}

func (w wireProduct) toDomain() domain.Product {
	return domain.Product{
		ID:            w.ID,
		ProductName:   w.ProductName,
		Category:      w.Category,
		ImageURL:      w.ImageURL,
		ImagePublicID: w.ImagePublicID,
		Desc:          w.Desc,
		Price:         w.Price,
		AverageRating: w.AverageRating,
		ReviewsCount:  w.ReviewsCount,
	}
}

// productRepository implements domain.ProductRepository against the remote
// GraphQL API.
type productRepository struct {
	client *remote.Client
}

// NewRepository creates a ProductRepository backed by the remote API.
func NewRepository(client *remote.Client) domain.ProductRepository {
	return &productRepository{client: client}
}

func (r *productRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Product], error) {
	query := `
		query getProductWithPagination($page: Int!, $limit: Int!, $keyword: String!, $filter: String!) {
			getProductWithPagination(page: $page, limit: $limit, pagination: true, keyword: $keyword, filter: $filter) {
				products {` + productFields + `}
				paginator {` + paginatorFields + `}
			}
		}`

	var resp struct {
		Result struct {
			Products  []wireProduct    `json:"products"`
			Paginator domain.Paginator `json:"paginator"`
		} `json:"getProductWithPagination"`
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

	products := make([]domain.Product, len(resp.Result.Products))
	for i, p := range resp.Result.Products {
		products[i] = p.toDomain()
	}
	return &domain.PageResult[domain.Product]{
		Data:      products,
		Paginator: resp.Result.Paginator,
	}, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		query getProductById($id: ID!) {
			getProductById(_id: $id) {` + productFields + `}
		}`

	var resp struct {
		Product *wireProduct `json:"getProductById"`
	}
	if err := r.client.Run(ctx, query, map[string]any{"id": id}, &resp); err != nil {
		return nil, err
	}
	if resp.Product == nil || resp.Product.ID == "" {
		return nil, domain.ErrNotFound
	}
	p := resp.Product.toDomain()
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	query := `
		mutation createProduct($input: ProductInput!) {
			createProduct(input: $input) {
				isSuccess
				messageEn
				messageKh
				product {` + productFields + `}
			}
		}`

	var resp struct {
		Result struct {
			remote.MutationStatus
			Product *wireProduct `json:"product"`
		} `json:"createProduct"`
	}
	if err := r.client.Run(ctx, query, map[string]any{"input": input}, &resp); err != nil {
		return nil, err
	}
	if err := resp.Result.Err("product was not created"); err != nil {
		return nil, err
	}
	if resp.Result.Product == nil {
		return nil, domain.NewAppError(domain.CodeUpstream, "remote API returned no product", nil)
	}
	p := resp.Result.Product.toDomain()
	return &p, nil
}

func (r *productRepository) Update(ctx context.Context, id string, input domain.ProductInput) (*domain.Product, error) {
	query := `
		mutation updateProduct($id: ID!, $input: ProductInput!) {
			updateProduct(_id: $id, input: $input) {
				isSuccess
				messageEn
				messageKh
				product {` + productFields + `}
			}
		}`

	var resp struct {
		Result struct {
			remote.MutationStatus
			Product *wireProduct `json:"product"`
		} `json:"updateProduct"`
	}
	vars := map[string]any{"id": id, "input": input}
	if err := r.client.Run(ctx, query, vars, &resp); err != nil {
		return nil, err
	}
	if err := resp.Result.Err("product was not updated"); err != nil {
		return nil, err
	}
	if resp.Result.Product == nil {
		return nil, domain.NewAppError(domain.CodeUpstream, "remote API returned no product", nil)
	}
	p := resp.Result.Product.toDomain()
	return &p, nil
}

func (r *productRepository) Delete(ctx context.Context, id, imagePublicID string) error {
	query := `
		mutation deleteProduct($id: ID!, $imagePublicId: String!) {
			deleteProduct(_id: $id, imagePublicId: $imagePublicId) {
				isSuccess
				messageEn
				messageKh
			}
		}`

	var resp struct {
		Result remote.MutationStatus `json:"deleteProduct"`
	}
	vars := map[string]any{"id": id, "imagePublicId": imagePublicID}
	if err := r.client.Run(ctx, query, vars, &resp); err != nil {
		return err
	}
	return resp.Result.Err("product was not deleted")
}
