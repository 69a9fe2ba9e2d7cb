package sdk

import (
	"encoding/json"
	"fmt"
)

// tokenErrorKind is the error discriminator the API sets when a request was
// rejected because the access token itself is invalid or expired. It is the
// only error kind that triggers a re-login.
const tokenErrorKind = "TokenError"

// TransportError reports that a request never produced an HTTP response:
// connection refused, DNS failure, timeout, canceled context.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: request to %s failed: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AuthenticationError reports that the login call itself failed, either
// because the service rejected the credentials or because the login request
// could not complete. Retrieval operations that cannot obtain a token fail
// with this error without issuing the retrieval request.
type AuthenticationError struct {
	// StatusCode is the HTTP status of the rejected login, or 0 when login
	// failed before any response was received.
	StatusCode int
	Body       string
	Err        error
}

func (e *AuthenticationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed: %v", e.Err)
	}
	return fmt.Sprintf("authentication failed (HTTP %d): %s", e.StatusCode, e.Body)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// APIError is a non-200 response from a secrets endpoint, surfaced verbatim.
// Message and Kind are filled from the service's JSON error envelope when the
// body parses as one; Body always holds the raw payload.
type APIError struct {
	StatusCode int
	Body       string
	Message    string
	Kind       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed (HTTP %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed (HTTP %d): %s", e.StatusCode, e.Body)
}

// IsTokenError reports whether the response carries the bad-token
// discriminator. The client handles one such error per call internally; a
// caller only ever sees it when the post-refresh retry was rejected too.
func (e *APIError) IsTokenError() bool { return e.Kind == tokenErrorKind }

// NotFound reports whether the secret (or workspace/environment) does not
// exist. Convenience for callers that treat missing secrets as a soft case.
func (e *APIError) NotFound() bool { return e.StatusCode == 404 }

// DecodeError reports a 200 response whose body does not match the expected
// shape. Never retried: the service accepted the request, the payload is the
// problem.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: unexpected response shape: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// apiErrorResponse is the service's error envelope. The token-error shape is
// tried first; anything that does not parse stays a generic APIError carrying
// the raw body.
type apiErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
}

func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode, Body: string(body)}
	var envelope apiErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil {
		apiErr.Message = envelope.Message
		apiErr.Kind = envelope.Error
	}
	return apiErr
}
