package auth

import (
	"context"
	"strings"

	"github.com/freshmart/admin-console/internal/domain"
	"github.com/freshmart/admin-console/internal/remote"
)

// SessionStore is the durable single-operator session owned by the
// console. Implemented by *session.Store.
type SessionStore interface {
	Current() domain.Session
	Login(token string, user *domain.Profile) error
	Logout() error
}

// Service defines the console's authentication operations. Sign-in runs
// against the remote API; the resulting remote token and profile are kept
// in the session store and a console access token is handed to the
// browser.
type Service interface {
	Login(ctx context.Context, email, password string) (*TokenResponse, error)
	Register(ctx context.Context, username, email, password string) (*TokenResponse, error)
	Logout(ctx context.Context) error
	Session(ctx context.Context) *domain.Profile
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, password string) error
}

// authService implements Service.
type authService struct {
	client   *remote.Client
	sessions SessionStore
	tokens   *TokenService
}

// NewService creates an auth Service.
func NewService(client *remote.Client, sessions SessionStore, tokens *TokenService) Service {
	return &authService{client: client, sessions: sessions, tokens: tokens}
}

// wireProfile is the remote API's user shape on auth responses.
type wireProfile struct {
	ID          string `json:"_id"`
	Username    string `json:"username"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Checked     bool   `json:"checked"`
}

func (w wireProfile) toDomain() *domain.Profile {
	return &domain.Profile{
		ID:          w.ID,
		Username:    w.Username,
		PhoneNumber: w.PhoneNumber,
		Email:       w.Email,
		Role:        w.Role,
		Checked:     w.Checked,
	}
}

type authPayload struct {
	remote.MutationStatus
	Token string       `json:"token"`
	User  *wireProfile `json:"user"`
}

// Login signs the operator in against the remote API and establishes the
// process-wide session.
func (s *authService) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	email = strings.TrimSpace(email)

	query := `
		mutation loginUserForm($email: String!, $password: String!) {
			loginUserForm(email: $email, password: $password) {
				isSuccess
				messageEn
				messageKh
				token
				user {
					_id
					username
					phoneNumber
					email
					role
					checked
				}
			}
		}`

	var resp struct {
		Result authPayload `json:"loginUserForm"`
	}
	vars := map[string]any{"email": email, "password": password}
	if err := s.client.Run(ctx, query, vars, &resp); err != nil {
		return nil, err
	}
	if !resp.Result.IsSuccess {
		// A rejected sign-in is unauthorized, not a generic upstream
		// failure; the UI shows the remote message when there is one.
		msg := strings.TrimSpace(resp.Result.MessageEn)
		if msg == "" {
			msg = "invalid credentials"
		}
		return nil, domain.NewAppError(domain.CodeUnauthorized, msg, nil)
	}
	if resp.Result.Token == "" || resp.Result.User == nil {
		return nil, domain.NewAppError(domain.CodeUpstream, "remote API returned an incomplete session", nil)
	}

	return s.establish(resp.Result.Token, resp.Result.User.toDomain())
}

// Register creates an account on the remote API and signs the operator in
// with it.
func (s *authService) Register(ctx context.Context, username, email, password string) (*TokenResponse, error) {
	query := `
		mutation signupUserForm($username: String!, $email: String!, $password: String!) {
			signupUserForm(username: $username, email: $email, password: $password) {
				isSuccess
				messageEn
				messageKh
				token
				user {
					_id
					username
					phoneNumber
					email
					role
					checked
				}
			}
		}`

	var resp struct {
		Result authPayload `json:"signupUserForm"`
	}
	vars := map[string]any{
		"username": strings.TrimSpace(username),
		"email":    strings.TrimSpace(email),
		"password": password,
	}
	if err := s.client.Run(ctx, query, vars, &resp); err != nil {
		return nil, err
	}
	if err := resp.Result.Err("account was not created"); err != nil {
		return nil, err
	}
	if resp.Result.Token == "" || resp.Result.User == nil {
		return nil, domain.NewAppError(domain.CodeUpstream, "remote API returned an incomplete session", nil)
	}

	return s.establish(resp.Result.Token, resp.Result.User.toDomain())
}

// establish stores the remote session and mints the console access token.
func (s *authService) establish(remoteToken string, profile *domain.Profile) (*TokenResponse, error) {
	if err := s.sessions.Login(remoteToken, profile); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.Issue(profile.Username)
	if err != nil {
		// The session must not outlive a sign-in the browser never
		// learned about.
		_ = s.sessions.Logout()
		return nil, err
	}

	return &TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		User:      profile,
	}, nil
}

// Logout clears the process-wide session.
func (s *authService) Logout(ctx context.Context) error {
	return s.sessions.Logout()
}

// Session returns the signed-in operator's profile, or nil.
func (s *authService) Session(ctx context.Context) *domain.Profile {
	return s.sessions.Current().User
}

// ForgotPassword asks the remote API to start a password reset.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	query := `
		mutation forgotPassword($email: String!) {
			forgotPassword(email: $email) {
				isSuccess
				messageEn
				messageKh
			}
		}`

	var resp struct {
		Result remote.MutationStatus `json:"forgotPassword"`
	}
	vars := map[string]any{"email": strings.TrimSpace(email)}
	if err := s.client.Run(ctx, query, vars, &resp); err != nil {
		return err
	}
	return resp.Result.Err("password reset could not be started")
}

// ResetPassword completes a password reset with the emailed token.
func (s *authService) ResetPassword(ctx context.Context, resetToken, password string) error {
	query := `
		mutation resetPassword($token: String!, $password: String!) {
			resetPassword(token: $token, password: $password) {
				isSuccess
				messageEn
				messageKh
			}
		}`

	var resp struct {
		Result remote.MutationStatus `json:"resetPassword"`
	}
	vars := map[string]any{"token": resetToken, "password": password}
	if err := s.client.Run(ctx, query, vars, &resp); err != nil {
		return err
	}
	return resp.Result.Err("password was not reset")
}
