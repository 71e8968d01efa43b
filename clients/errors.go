package clients

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx backend response. Code and Message are lifted from
// the JSON body's "error" and "message" fields when present; Payload keeps
// the whole decoded body for error-specific numbers.
type APIError struct {
	StatusCode int
	StatusText string
	Code       string
	Message    string
	Payload    map[string]interface{}
	Body       []byte
}

func newAPIError(resp *http.Response, body []byte) *APIError {
	e := &APIError{
		StatusCode: resp.StatusCode,
		StatusText: strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprintf("%d", resp.StatusCode))),
		Body:       body,
	}
	if e.StatusText == "" {
		e.StatusText = http.StatusText(resp.StatusCode)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err == nil {
		e.Payload = payload
		if s, ok := payload["error"].(string); ok {
			e.Code = s
		}
		if s, ok := payload["message"].(string); ok {
			e.Message = s
		}
	}
	return e
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream error: status=%d body=%s", e.StatusCode, string(e.Body))
}

// IsUnauthorized reports whether err is a backend 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
