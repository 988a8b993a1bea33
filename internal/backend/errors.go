package backend

import (
	"errors"   // Sentinel errors
	"net/http" // HTTP status codes

	"github.com/tidwall/gjson" // Error body inspection
)

// FallbackDetail is shown when the backend gives no readable reason
const FallbackDetail = "Request failed"

var (
	// ErrUnauthorized means the token is missing, invalid or expired
	ErrUnauthorized = errors.New("backend: unauthorized")
	// ErrForbidden means the token is valid but lacks the capability
	ErrForbidden = errors.New("backend: forbidden")
	// ErrUnavailable wraps every transport level failure
	ErrUnavailable = errors.New("backend: unavailable")
)

// APIError is a non-2xx answer from the backend
type APIError struct {
	Status int    // HTTP status code
	Detail string // Human readable reason, never empty
}

func (e *APIError) Error() string {
	return e.Detail
}

// Is lets callers match auth failures with errors.Is
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	}
	return false
}

// Detail returns the backend's reason for err, or "" when err did not come from the backend
func Detail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}

// newAPIError reads the reason out of an error body.
// The backend answers {"detail": "..."} or, for rejected payloads,
// {"detail": [{"msg": "..."}]}.
func newAPIError(status int, body []byte) *APIError {
	var text string
	detail := gjson.GetBytes(body, "detail")
	switch {
	case detail.Type == gjson.String:
		text = detail.String()
	case detail.IsArray():
		text = detail.Get("0.msg").String()
	}
	if text == "" {
		if e := gjson.GetBytes(body, "error"); e.Type == gjson.String {
			text = e.String()
		}
	}
	if text == "" {
		text = FallbackDetail
	}
	return &APIError{Status: status, Detail: text}
}
