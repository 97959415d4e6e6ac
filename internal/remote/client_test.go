package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/freshmart/admin-console/internal/domain"
)

type staticTokens struct {
	sess domain.Session
}

func (s staticTokens) Current() domain.Session { return s.sess }

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"__typename": "Query"},
		})
	}))
	defer srv.Close()

	tokens := staticTokens{sess: domain.Session{Token: "tok-1", User: &domain.Profile{ID: "u"}}}
	c := NewClient(srv.URL, time.Second, tokens)

	var out struct {
		Typename string `json:"__typename"`
	}
	if err := c.Run(context.Background(), `query { __typename }`, nil, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
}

func TestClient_NoTokenWhenSignedOut(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, staticTokens{})
	var out struct{}
	if err := c.Run(context.Background(), `query { __typename }`, nil, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no auth header, got %q", gotAuth)
	}
}

func TestClient_GraphQLErrorBecomesUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"errors": []map[string]any{{"message": "duplicate email"}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, staticTokens{})
	var out struct{}
	err := c.Run(context.Background(), `mutation { noop }`, nil, &out)
	if err == nil {
		t.Fatal("expected error")
	}
	if !domain.IsUpstream(err) {
		t.Errorf("expected upstream error, got %v", err)
	}

	var appErr *domain.AppError
	if !errors.As(err, &appErr) || appErr.Message != "duplicate email" {
		t.Errorf("expected server message to be surfaced, got %v", err)
	}
}

func TestClient_ConnectionRefusedBecomesUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // deliberately closed: connection refused

	c := NewClient(srv.URL, time.Second, staticTokens{})
	var out struct{}
	err := c.Run(context.Background(), `query { __typename }`, nil, &out)
	if err == nil {
		t.Fatal("expected error")
	}
	if !domain.IsUnreachable(err) {
		t.Errorf("expected unreachable error, got %v", err)
	}
}

func TestMutationStatus_Err(t *testing.T) {
	ok := MutationStatus{IsSuccess: true}
	if err := ok.Err("fallback"); err != nil {
		t.Errorf("expected nil for successful mutation, got %v", err)
	}

	rejected := MutationStatus{IsSuccess: false, MessageEn: "product name already exists"}
	err := rejected.Err("fallback")
	if err == nil || !domain.IsUpstream(err) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if err.Error() != "product name already exists" {
		t.Errorf("expected server message, got %q", err.Error())
	}

	silent := MutationStatus{IsSuccess: false}
	if err := silent.Err("operation failed"); err == nil || err.Error() != "operation failed" {
		t.Errorf("expected fallback message, got %v", err)
	}
}
