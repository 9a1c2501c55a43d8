package pipefy

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAuthenticatorTokenFetchAndCache(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if err := r.ParseForm(); err != nil {
			t.Fatalf("Cannot parse token form: %v", err)
		}
		if got := r.PostForm.Get("grant_type"); got != "client_credentials" {
			t.Errorf("Expected grant_type client_credentials, got %q", got)
		}
		if got := r.PostForm.Get("client_id"); got != "my-id" {
			t.Errorf("Expected client_id my-id, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"access_token":"tok-123","expires_in":7200,"token_type":"Bearer"}`)
	}))
	defer server.Close()

	a := NewAuthenticator(server.URL, "my-id", "my-secret", nil)

	tok, err := a.Token(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if tok != "tok-123" {
		t.Errorf("Expected token tok-123, got %q", tok)
	}

	// Second call must come from the cache.
	tok, err = a.Token(context.Background())
	if err != nil {
		t.Fatalf("Expected no error on cached fetch, got %v", err)
	}
	if tok != "tok-123" {
		t.Errorf("Expected cached token tok-123, got %q", tok)
	}
	if calls != 1 {
		t.Errorf("Expected exactly 1 token request, got %d", calls)
	}
}

func TestAuthenticatorMissingCredentials(t *testing.T) {
	a := NewAuthenticator("http://unused.invalid", "", "", nil)
	if _, err := a.Token(context.Background()); err == nil {
		t.Error("Expected an error when client id/secret are not configured")
	}
}

func TestAuthenticatorEmptyAccessToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"expires_in":3600}`)
	}))
	defer server.Close()

	a := NewAuthenticator(server.URL, "id", "secret", nil)
	if _, err := a.Token(context.Background()); err == nil {
		t.Error("Expected an error for a response without access_token")
	}
}
