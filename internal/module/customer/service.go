package customer

import (
	"context"
	"net/mail"
	"strings"

	"github.com/freshmart/admin-console/internal/domain"
	"github.com/freshmart/admin-console/internal/notify"
)

// customerService implements domain.CustomerService.
type customerService struct {
	repo     domain.CustomerRepository
	notifier *notify.Hub
}

// NewService creates a CustomerService with the given repository.
func NewService(repo domain.CustomerRepository, notifier *notify.Hub) domain.CustomerService {
	return &customerService{repo: repo, notifier: notifier}
}

func (s *customerService) ListCustomers(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Customer], error) {
	return s.repo.List(ctx, req)
}

func (s *customerService) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "customer id is required", nil)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *customerService) UpdateCustomer(ctx context.Context, id string, input domain.CustomerInput) error {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	input.PhoneNumber = strings.TrimSpace(input.PhoneNumber)

	if input.Username == "" {
		return domain.NewAppError(domain.CodeValidation, "username is required", nil)
	}
	if input.Email != "" {
		if _, err := mail.ParseAddress(input.Email); err != nil {
			return domain.NewAppError(domain.CodeValidation, "email must be a valid email address", nil)
		}
	}

	if err := s.repo.Update(ctx, id, input); err != nil {
		return err
	}

	s.notifier.Success("Customer " + input.Username + " updated")
	return nil
}

// UpdateCustomerStatus toggles the account's verified flag.
func (s *customerService) UpdateCustomerStatus(ctx context.Context, id string, checked bool) error {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateStatus(ctx, id, checked); err != nil {
		return err
	}

	if checked {
		s.notifier.Success("Customer " + customer.Username + " verified")
	} else {
		s.notifier.Warning("Customer " + customer.Username + " unverified")
	}
	return nil
}

// DeleteCustomer removes a customer after the operator retyped the
// username. The match is exact and case-sensitive.
func (s *customerService) DeleteCustomer(ctx context.Context, id, confirm string) error {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if confirm != customer.Username {
		return domain.NewAppError(domain.CodeValidation,
			"confirmation does not match the username", nil)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.notifier.Success("Customer " + customer.Username + " deleted")
	return nil
}
