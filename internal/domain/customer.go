package domain

import "context"

// Customer is a storefront user account as served by the remote API.
type Customer struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Checked     bool   `json:"checked"`
	Role        string `json:"role"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// CustomerInput carries the writable customer fields for update.
type CustomerInput struct {
	Username    string `json:"username"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
}

// CustomerRepository is the remote-API access interface for customers.
type CustomerRepository interface {
	List(ctx context.Context, req PageRequest) (*PageResult[Customer], error)
	GetByID(ctx context.Context, id string) (*Customer, error)
	Update(ctx context.Context, id string, input CustomerInput) error
	UpdateStatus(ctx context.Context, id string, checked bool) error
	Delete(ctx context.Context, id string) error
}

// CustomerService is the console-side business interface for customers.
type CustomerService interface {
	ListCustomers(ctx context.Context, req PageRequest) (*PageResult[Customer], error)
	GetCustomer(ctx context.Context, id string) (*Customer, error)
	UpdateCustomer(ctx context.Context, id string, input CustomerInput) error
	UpdateCustomerStatus(ctx context.Context, id string, checked bool) error
	// DeleteCustomer removes a customer. confirm must match the customer's
	// username exactly (case-sensitive).
	DeleteCustomer(ctx context.Context, id, confirm string) error
}
