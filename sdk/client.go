package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the hosted service API endpoint. Self-hosted
	// deployments override it via ClientConfig.BaseURL.
	DefaultBaseURL = "https://app.infisical.com/api"

	defaultTimeout   = 30 * time.Second
	maxResponseBytes = 1 << 20
)

// ClientConfig carries everything a Client needs. Workspace, Environment and
// valid Credentials are required; BaseURL defaults to the hosted service.
type ClientConfig struct {
	BaseURL     string
	Workspace   string
	Environment string
	Credentials Credentials

	// HTTPClient overrides the transport, mostly for tests. Defaults to a
	// plain client with a 30 second timeout.
	HTTPClient *http.Client
	UserAgent  string
}

// Client retrieves secrets for one workspace/credential pair. It owns its
// token cell, so independently configured clients never share tokens.
// Construction performs no I/O; the first retrieval triggers the first login.
type Client struct {
	baseURL     string
	workspace   string
	environment string
	credentials Credentials
	userAgent   string
	httpClient  *http.Client
	tokens      *tokenSource
}

func NewClient(config ClientConfig) (*Client, error) {
	if !config.Credentials.IsValid() {
		return nil, fmt.Errorf("client id and client secret are required")
	}
	if config.Workspace == "" {
		return nil, fmt.Errorf("workspace is required")
	}
	if config.Environment == "" {
		return nil, fmt.Errorf("default environment is required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = fmt.Sprintf("infisical-go/%s (%s) commit/%s", GetVersion(), GetOsArch(), GetCommitHash())
	}

	client := &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		workspace:   config.Workspace,
		environment: config.Environment,
		credentials: config.Credentials,
		userAgent:   userAgent,
		httpClient:  httpClient,
	}
	client.tokens = newTokenSource(client.Login)
	return client, nil
}

func (c *Client) Workspace() string { return c.workspace }

// Environment returns the default environment used when an operation does
// not name one.
func (c *Client) Environment() string { return c.environment }

// get runs one authenticated GET with the bounded retry policy: obtain a
// token (logging in when the cell is empty), issue the request, and when
// the response carries the bad-token discriminator refresh the token and
// reissue the request exactly once. Every other outcome returns immediately:
// transport failures and decode failures are never retried, and a non-200
// without the discriminator is the caller's error, verbatim.
func (c *Client) get(ctx context.Context, op, path string, query url.Values, out interface{}) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	retried := false
	for {
		status, body, err := c.roundTrip(ctx, op, path, query, token)
		if err != nil {
			return err
		}
		if status == http.StatusOK {
			if err := json.Unmarshal(body, out); err != nil {
				return &DecodeError{Op: op, Err: err}
			}
			return nil
		}

		apiErr := newAPIError(status, body)
		if !apiErr.IsTokenError() || retried {
			return apiErr
		}

		// The token was rejected. One forced re-login, one more attempt;
		// a second rejection surfaces as a normal failure.
		token, err = c.tokens.Refresh(ctx)
		if err != nil {
			return err
		}
		retried = true
	}
}

func (c *Client) roundTrip(ctx context.Context, op, path string, query url.Values, token string) (int, []byte, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return 0, nil, &TransportError{Op: op, URL: requestURL, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &TransportError{Op: op, URL: requestURL, Err: err}
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, &TransportError{Op: op, URL: requestURL, Err: err}
	}
	return res.StatusCode, body, nil
}

// resolveEnvironment maps the empty string to the configured default.
func (c *Client) resolveEnvironment(environment string) string {
	if environment == "" {
		return c.environment
	}
	return environment
}
