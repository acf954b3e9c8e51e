package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/hueful/hueful/internal/palette"
	"github.com/hueful/hueful/internal/session"
)

// RequestError is a non-2xx, non-401 response.
type RequestError struct {
	Status int
	Detail string
	// FromServer is true when Detail came from the response body rather than
	// the "HTTP <status>" fallback.
	FromServer bool
	// JSONBody is true when the body was a JSON object, with or without a
	// usable detail.
	JSONBody bool
}

func (e *RequestError) Error() string {
	return e.Detail
}

// MalformedResponseError reports a payload that does not match the expected
// contract.
type MalformedResponseError struct {
	Endpoint string
	Err      error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("unexpected response from %s: %v", e.Endpoint, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// NetworkError reports a transport failure: the backend could not be reached
// or the connection broke before a response arrived.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("cannot reach %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// newRequestError builds a RequestError from a failed response body. The
// backend sends {"detail": "..."}; validation failures send a list instead,
// which falls back to the status line.
func newRequestError(status int, body []byte) *RequestError {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return &RequestError{Status: status, Detail: fmt.Sprintf("HTTP %d", status)}
	}
	if len(payload.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(payload.Detail, &detail); err == nil && strings.TrimSpace(detail) != "" {
			return &RequestError{Status: status, Detail: detail, FromServer: true, JSONBody: true}
		}
	}
	return &RequestError{Status: status, Detail: fmt.Sprintf("HTTP %d", status), JSONBody: true}
}

// UserMessage turns any client error into the line shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var (
		reqErr *RequestError
		malErr *MalformedResponseError
		netErr *NetworkError
	)
	switch {
	case errors.Is(err, session.ErrSessionExpired):
		return session.ExpiredNotice
	case errors.Is(err, session.ErrUnauthenticated):
		return "You are not logged in."
	case errors.As(err, &reqErr):
		return reqErr.Detail
	case errors.As(err, &malErr):
		if errors.Is(malErr.Err, palette.ErrNoColors) {
			return "No valid colors received"
		}
		return "The server sent an unexpected response"
	case errors.As(err, &netErr):
		return "Cannot connect to the server"
	default:
		return err.Error()
	}
}

// Hints returns remediation lines for a failure talking to baseURL.
func Hints(err error, baseURL string) []string {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return []string{
			fmt.Sprintf("Make sure the backend is running at %s", baseURL),
			"Check the api.base_url setting or HUEFUL_API_URL",
		}
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		switch {
		case reqErr.Status >= 500:
			return []string{
				"The server reported an internal error",
				fmt.Sprintf("Check the backend logs at %s", baseURL),
			}
		case reqErr.Status != http.StatusUnauthorized && reqErr.Status != http.StatusForbidden:
			return []string{fmt.Sprintf("See the API docs at %s/docs", baseURL)}
		}
	}
	var malErr *MalformedResponseError
	if errors.As(err, &malErr) {
		return []string{fmt.Sprintf("Check that %s is a palette API", baseURL)}
	}
	return nil
}
