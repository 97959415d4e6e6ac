package domain

import "context"

// Product is a catalog item as served by the remote API.
type Product struct {
	ID            string  `json:"id"`
	ProductName   string  `json:"productName"`
	Category      string  `json:"category"`
	ImageURL      string  `json:"imageUrl"`
	ImagePublicID string  `json:"imagePublicId"`
	Desc          string  `json:"desc"`
	Price         float64 `json:"price"`
	AverageRating float64 `json:"averageRating"`
	ReviewsCount  int     `json:"reviewsCount"`
}

// ProductInput carries the writable product fields for create and update.
type ProductInput struct {
	ProductName   string  `json:"productName"`
	Category      string  `json:"category"`
	ImageURL      string  `json:"imageUrl"`
	ImagePublicID string  `json:"imagePublicId,omitempty"`
	Desc          string  `json:"desc"`
	Price         float64 `json:"price"`
}

// ProductRepository is the remote-API access interface for products.
type ProductRepository interface {
	List(ctx context.Context, req PageRequest) (*PageResult[Product], error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, input ProductInput) (*Product, error)
	Update(ctx context.Context, id string, input ProductInput) (*Product, error)
	Delete(ctx context.Context, id, imagePublicID string) error
}

// ProductService is the console-side business interface for products.
type ProductService interface {
	ListProducts(ctx context.Context, req PageRequest) (*PageResult[Product], error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, id string, input ProductInput) (*Product, error)
	// DeleteProduct removes a product. confirm must match the product's
	// display name exactly (case-sensitive) or the delete is refused.
	DeleteProduct(ctx context.Context, id, confirm string) error
}
