package product

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/freshmart/admin-console/internal/domain"
	"github.com/freshmart/admin-console/internal/notify"
)

// productService implements domain.ProductService.
type productService struct {
	repo     domain.ProductRepository
	notifier *notify.Hub
}

// NewService creates a ProductService with the given repository.
func NewService(repo domain.ProductRepository, notifier *notify.Hub) domain.ProductService {
	return &productService{repo: repo, notifier: notifier}
}

func (s *productService) ListProducts(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Product], error) {
	return s.repo.List(ctx, req)
}

func (s *productService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "product id is required", nil)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *productService) CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	input.ProductName = strings.TrimSpace(input.ProductName)
	input.Category = strings.TrimSpace(input.Category)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	product, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	s.notifier.Success("Product " + product.ProductName + " created")
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, input domain.ProductInput) (*domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "product id is required", nil)
	}
	input.ProductName = strings.TrimSpace(input.ProductName)
	input.Category = strings.TrimSpace(input.Category)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	product, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}

	s.notifier.Success("Product " + product.ProductName + " updated")
	return product, nil
}

// DeleteProduct removes a product after the operator retyped its name. The
// match is exact and case-sensitive; "apple" does not confirm "Apple".
func (s *productService) DeleteProduct(ctx context.Context, id, confirm string) error {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if confirm != product.ProductName {
		return domain.NewAppError(domain.CodeValidation,
			"confirmation does not match the product name", nil)
	}

	if err := s.repo.Delete(ctx, id, product.ImagePublicID); err != nil {
		return err
	}

	s.notifier.Success("Product " + product.ProductName + " deleted")
	return nil
}

func validateInput(input domain.ProductInput) error {
	if input.ProductName == "" {
		return domain.NewAppError(domain.CodeValidation, "product name is required", nil)
	}
	if utf8.RuneCountInString(input.ProductName) > 200 {
		return domain.NewAppError(domain.CodeValidation, "product name must not exceed 200 characters", nil)
	}
	if input.Category == "" {
		return domain.NewAppError(domain.CodeValidation, "category is required", nil)
	}
	if input.Price < 0 {
		return domain.NewAppError(domain.CodeValidation, "price must not be negative", nil)
	}
	return nil
}
