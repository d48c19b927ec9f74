package evaluation

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

const defaultServerMessage = "Server error"

// ErrNoResponse is matched by errors returned when the request was sent but no
// response arrived: connection refused, timeouts, dropped connections.
var ErrNoResponse = errors.New("no response from server")

// ErrMalformedResponse is returned when a successful response body is not a JSON object.
var ErrMalformedResponse = errors.New("malformed evaluation response")

// APIError is returned when the server answered with a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API Error (%d): %s", e.StatusCode, e.Message)
}

func newAPIError(resp *http.Response, body []byte) *APIError {
	message := ""
	if gjson.ValidBytes(body) {
		message = strings.TrimSpace(gjson.GetBytes(body, "message").String())
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	if message == "" {
		message = defaultServerMessage
	}

	return &APIError{StatusCode: resp.StatusCode, Message: message}
}

type noResponseError struct {
	baseURL string
	err     error
}

func (e *noResponseError) Error() string {
	return fmt.Sprintf("No response from server. Make sure the backend is running on %s", e.baseURL)
}

func (e *noResponseError) Unwrap() []error {
	return []error{ErrNoResponse, e.err}
}

// IsNoResponse reports whether err means the server could not be reached.
func IsNoResponse(err error) bool {
	return errors.Is(err, ErrNoResponse)
}

// StatusCode extracts the HTTP status of an APIError, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
