package domain

import "context"

// Contact is a contact-form submission as served by the remote API.
type Contact struct {
	ID          string `json:"id"`
	ContactName string `json:"contactName"`
	Email       string `json:"email"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
	Reply       string `json:"reply"`
	Status      string `json:"status"`
	ReceivedAt  string `json:"receivedAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// ContactInput carries the fields of a new contact-form submission.
type ContactInput struct {
	ContactName string `json:"contactName"`
	Email       string `json:"email"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
}

// ContactRepository is the remote-API access interface for contact submissions.
type ContactRepository interface {
	List(ctx context.Context, req PageRequest) (*PageResult[Contact], error)
	Create(ctx context.Context, input ContactInput) error
	Reply(ctx context.Context, id, message string) error
	Delete(ctx context.Context, id string) error
}

// ContactService is the console-side business interface for contact submissions.
type ContactService interface {
	ListContacts(ctx context.Context, req PageRequest) (*PageResult[Contact], error)
	CreateContact(ctx context.Context, input ContactInput) error
	ReplyContact(ctx context.Context, id, message string) error
	DeleteContact(ctx context.Context, id string) error
}
