// Package remote is the console's single doorway to the FreshMart GraphQL
// API. Every entity module proxies through it; nothing else in the process
// talks to the remote endpoint.
package remote

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/machinebox/graphql"

	"github.com/freshmart/admin-console/internal/domain"
)

// TokenSource supplies the current session so each request can carry the
// operator's remote token. Implemented by *session.Store.
type TokenSource interface {
	Current() domain.Session
}

// Client wraps the GraphQL transport with session-aware headers, a
// per-request timeout, and error mapping into the console's taxonomy.
type Client struct {
	gql     *graphql.Client
	tokens  TokenSource
	timeout time.Duration
}

// NewClient creates a remote API client for the given endpoint.
func NewClient(endpoint string, timeout time.Duration, tokens TokenSource) *Client {
	httpClient := &http.Client{Timeout: timeout}
	return &Client{
		gql:     graphql.NewClient(endpoint, graphql.WithHTTPClient(httpClient)),
		tokens:  tokens,
		timeout: timeout,
	}
}

// Run executes one GraphQL operation and decodes the response data into out.
// The operator's remote token, when present, is attached as a bearer header.
func (c *Client) Run(ctx context.Context, query string, vars map[string]any, out any) error {
	req := graphql.NewRequest(query)
	for k, v := range vars {
		req.Var(k, v)
	}

	if c.tokens != nil {
		if sess := c.tokens.Current(); sess.Present() {
			req.Header.Set("Authorization", "Bearer "+sess.Token)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.gql.Run(ctx, req, out); err != nil {
		return MapError(err)
	}
	return nil
}

// Ping reports whether the remote endpoint answers at all. Used by the
// health endpoint; any GraphQL-level response (even an error about the
// trivial query) proves reachability.
func (c *Client) Ping(ctx context.Context) error {
	err := c.Run(ctx, `query { __typename }`, nil, &struct {
		Typename string `json:"__typename"`
	}{})
	if err != nil && domain.IsUnreachable(err) {
		return err
	}
	return nil
}

// MutationStatus is the acknowledgment block every remote mutation returns.
type MutationStatus struct {
	IsSuccess bool   `json:"isSuccess"`
	MessageEn string `json:"messageEn"`
	MessageKh string `json:"messageKh"`
}

// Err converts a rejected mutation into an upstream error carrying the
// server-supplied message, falling back to the given generic one.
func (m MutationStatus) Err(fallback string) error {
	if m.IsSuccess {
		return nil
	}
	msg := strings.TrimSpace(m.MessageEn)
	if msg == "" {
		msg = fallback
	}
	return domain.NewAppError(domain.CodeUpstream, msg, nil)
}

// MapError classifies a transport-layer error: requests that never produced
// a remote response become CodeUnreachable; responses the server answered
// with GraphQL errors become CodeUpstream with the server's message.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return err
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return domain.NewAppError(domain.CodeUnreachable, "remote API unreachable", err)
	}

	// machinebox/graphql prefixes server-side errors with "graphql: ".
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, "graphql: "); ok {
		return domain.NewAppError(domain.CodeUpstream, rest, err)
	}
	if strings.Contains(msg, "decoding response") {
		return domain.NewAppError(domain.CodeUpstream, "remote API returned an unexpected response", err)
	}

	return domain.NewAppError(domain.CodeUnreachable, "remote API unreachable", err)
}
