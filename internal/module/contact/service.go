package contact

import (
	"context"
	"net/mail"
	"strings"

	"github.com/freshmart/admin-console/internal/domain"
	"github.com/freshmart/admin-console/internal/notify"
)

// contactService implements domain.ContactService.
type contactService struct {
	repo     domain.ContactRepository
	notifier *notify.Hub
}

// NewService creates a ContactService with the given repository.
func NewService(repo domain.ContactRepository, notifier *notify.Hub) domain.ContactService {
	return &contactService{repo: repo, notifier: notifier}
}

func (s *contactService) ListContacts(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Contact], error) {
	return s.repo.List(ctx, req)
}

func (s *contactService) CreateContact(ctx context.Context, input domain.ContactInput) error {
	input.ContactName = strings.TrimSpace(input.ContactName)
	input.Email = strings.TrimSpace(input.Email)
	input.Subject = strings.TrimSpace(input.Subject)
	input.Message = strings.TrimSpace(input.Message)

	if input.ContactName == "" {
		return domain.NewAppError(domain.CodeValidation, "name is required", nil)
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return domain.NewAppError(domain.CodeValidation, "email must be a valid email address", nil)
	}
	if input.Message == "" {
		return domain.NewAppError(domain.CodeValidation, "message is required", nil)
	}

	return s.repo.Create(ctx, input)
}

func (s *contactService) ReplyContact(ctx context.Context, id, message string) error {
	if strings.TrimSpace(id) == "" {
		return domain.NewAppError(domain.CodeValidation, "contact id is required", nil)
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return domain.NewAppError(domain.CodeValidation, "reply message is required", nil)
	}

	if err := s.repo.Reply(ctx, id, message); err != nil {
		return err
	}

	s.notifier.Success("Reply sent")
	return nil
}

func (s *contactService) DeleteContact(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.NewAppError(domain.CodeValidation, "contact id is required", nil)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.notifier.Success("Contact deleted")
	return nil
}
