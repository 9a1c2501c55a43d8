package pipefy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"employee-sync/internal/httpx"
)

// Client talks to the Pipefy GraphQL API with a token from its
// Authenticator.
type Client struct {
	Endpoint string
	Auth     *Authenticator
	HTTP     *http.Client
	Log      *zap.SugaredLogger
}

func New(endpoint string, auth *Authenticator, log *zap.SugaredLogger) *Client {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	tr := &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 50,
		IdleConnTimeout:     90 * time.Second,
	}
	return &Client{
		Endpoint: endpoint,
		Auth:     auth,
		HTTP: &http.Client{
			Timeout:   2 * time.Minute,
			Transport: tr,
		},
		Log: log,
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// CallGraphQL posts one query/mutation and unmarshals the data payload into
// out (which may be nil when the caller only cares about success).
// Application-level errors[] are a failure even on HTTP 200.
func (c *Client) CallGraphQL(ctx context.Context, query string, variables map[string]any, out any) error {
	token, err := c.Auth.Token(ctx)
	if err != nil {
		return err
	}

	b, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("pipefy: marshal gql request: %w", err)
	}

	_, body, err := httpx.DoWithRetry(ctx, c.HTTP, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		return req, nil
	}, httpx.DefaultRetryConfig())
	if err != nil {
		return fmt.Errorf("pipefy: graphql call failed: %w", err)
	}

	var resp graphQLResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("pipefy: response is not JSON: %w body=%s", err, httpx.Snippet(body, 800))
	}
	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			msgs = append(msgs, e.Message)
		}
		return fmt.Errorf("pipefy: graphql errors: %s", strings.Join(msgs, "; "))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("pipefy: unmarshal data: %w", err)
	}
	return nil
}
