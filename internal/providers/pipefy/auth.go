package pipefy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"employee-sync/internal/httpx"
)

const tokenCacheKey = "pipefy_access_token"

// tokenMargin is subtracted from expires_in so a token is never used in the
// last minute of its life.
const tokenMargin = time.Minute

// Authenticator exchanges client_credentials for a bearer token and caches
// it for the token's lifetime. It is the only process-lifetime shared state
// in the service.
type Authenticator struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	HTTP         *http.Client
	Log          *zap.SugaredLogger

	cache *gocache.Cache
}

func NewAuthenticator(tokenURL, clientID, clientSecret string, log *zap.SugaredLogger) *Authenticator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Authenticator{
		TokenURL:     tokenURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
		Log:   log,
		cache: gocache.New(gocache.NoExpiration, 5*time.Minute),
	}
}

// Token returns a valid access token, refreshing when the cached one has
// expired (or was never fetched).
func (a *Authenticator) Token(ctx context.Context) (string, error) {
	if tok, ok := a.cache.Get(tokenCacheKey); ok {
		return tok.(string), nil
	}
	return a.refresh(ctx)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

func (a *Authenticator) refresh(ctx context.Context) (string, error) {
	if a.ClientID == "" || a.ClientSecret == "" {
		return "", errors.New("pipefy: client id/secret not configured")
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", a.ClientID)
	form.Set("client_secret", a.ClientSecret)

	a.Log.Debugw("requesting new pipefy access token")

	var tr tokenResponse
	err := httpx.DoJSON(ctx, a.HTTP, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.TokenURL, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	}, &tr, httpx.DefaultRetryConfig())
	if err != nil {
		return "", fmt.Errorf("pipefy: oauth token request failed: %w", err)
	}
	if tr.AccessToken == "" {
		return "", errors.New("pipefy: oauth response contained no access_token")
	}

	ttl := time.Duration(tr.ExpiresIn) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}
	if ttl > tokenMargin {
		ttl -= tokenMargin
	}
	a.cache.Set(tokenCacheKey, tr.AccessToken, ttl)
	a.Log.Debugw("pipefy access token refreshed", "expires_in", tr.ExpiresIn)

	return tr.AccessToken, nil
}
