package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

const loginPath = "/v1/auth/universal-auth/login"

// tokenSource is a client's token cell: at most one cached access token,
// populated lazily by the first call that needs it. No expiry is tracked;
// a token stays cached until the service rejects it and a refresh replaces
// it. Concurrent logins collapse into one round trip per flight key.
type tokenSource struct {
	login func(ctx context.Context) (string, error)

	mu    sync.Mutex
	token string

	flight singleflight.Group
}

func newTokenSource(login func(ctx context.Context) (string, error)) *tokenSource {
	return &tokenSource{login: login}
}

// Token returns the cached access token, logging in first when the cell is
// empty. Concurrent first-time callers share a single login.
func (s *tokenSource) Token(ctx context.Context) (string, error) {
	if token := s.cached(); token != "" {
		return token, nil
	}
	value, err, _ := s.flight.Do("token", func() (interface{}, error) {
		// An earlier flight may have filled the cell while this caller
		// waited its turn.
		if token := s.cached(); token != "" {
			return token, nil
		}
		return s.doLogin(ctx)
	})
	if err != nil {
		return "", err
	}
	return value.(string), nil
}

// Refresh logs in again and overwrites the cell, cached token or not. The
// old token stays visible to readers until the new login succeeds; a reader
// that picks it up in that window detects the rejection on its own call and
// refreshes again. Concurrent refreshes share one login.
func (s *tokenSource) Refresh(ctx context.Context) (string, error) {
	value, err, _ := s.flight.Do("refresh", func() (interface{}, error) {
		return s.doLogin(ctx)
	})
	if err != nil {
		return "", err
	}
	return value.(string), nil
}

func (s *tokenSource) cached() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *tokenSource) doLogin(ctx context.Context) (interface{}, error) {
	token, err := s.login(ctx)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return token, nil
}

// Login performs the Universal Auth login round trip and returns a fresh
// access token. It never reads or writes the token cache; Token and
// RefreshToken are the caching entry points.
func (c *Client) Login(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("clientId", c.credentials.ClientID)
	form.Set("clientSecret", c.credentials.ClientSecret)

	loginURL := c.baseURL + loginPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, loginURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &AuthenticationError{Err: fmt.Errorf("failed to create login request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", &AuthenticationError{Err: &TransportError{Op: "login", URL: loginURL, Err: err}}
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return "", &AuthenticationError{Err: &TransportError{Op: "login", URL: loginURL, Err: err}}
	}

	if res.StatusCode != http.StatusOK {
		return "", &AuthenticationError{StatusCode: res.StatusCode, Body: string(body)}
	}

	var response universalAuthLoginResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", &AuthenticationError{Err: &DecodeError{Op: "login", Err: err}}
	}
	if response.AccessToken == "" {
		return "", &AuthenticationError{Err: &DecodeError{Op: "login", Err: fmt.Errorf("missing accessToken field")}}
	}
	return response.AccessToken, nil
}

// Token returns the cached access token, performing the initial login when
// none exists yet.
func (c *Client) Token(ctx context.Context) (string, error) {
	return c.tokens.Token(ctx)
}

// RefreshToken forces a new login and replaces the cached token.
func (c *Client) RefreshToken(ctx context.Context) (string, error) {
	return c.tokens.Refresh(ctx)
}

// universalAuthLoginResponse is the login payload. accessToken is the only
// field the client consumes.
type universalAuthLoginResponse struct {
	AccessToken       string `json:"accessToken"`
	ExpiresIn         int    `json:"expiresIn"`
	AccessTokenMaxTTL int    `json:"accessTokenMaxTTL"`
	TokenType         string `json:"tokenType"`
}
