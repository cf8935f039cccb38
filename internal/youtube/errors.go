package youtube

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// APIError is a non-2xx answer from the YouTube Data API.
type APIError struct {
	StatusCode int
	Operation  string
	Message    string
	Cause      error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Operation)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// handleAPIError turns a failed call into an error a user can act on.
func handleAPIError(operation string, err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("YouTube %s request failed: %w", operation, err)
	}

	return &APIError{
		StatusCode: apiErr.Code,
		Operation:  operation,
		Message:    statusMessage(apiErr.Code),
		Cause:      err,
	}
}

func statusMessage(statusCode int) string {
	switch statusCode {
	case http.StatusUnauthorized:
		return "YouTube API authentication failed - please run 'likestats auth' to re-authenticate"
	case http.StatusForbidden:
		return "YouTube API access denied - check your OAuth permissions and quota"
	case http.StatusTooManyRequests:
		return "YouTube API rate limit exceeded - please try again later"
	case http.StatusServiceUnavailable:
		return "YouTube API temporarily unavailable - please try again in a few minutes"
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusGatewayTimeout:
		return "YouTube API server error - please try again later"
	default:
		return fmt.Sprintf("YouTube API error (status %d) - please try again", statusCode)
	}
}
