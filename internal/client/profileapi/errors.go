package profileapi

import (
	"errors"
	"fmt"
)

var (
	ErrMissingBaseURL    = errors.New("profile api base url is not configured")
	ErrMissingCredential = errors.New("profile api credential is not available")
	ErrEmptyResponse     = errors.New("profile api returned no data")
)

// ServiceError is a non-2xx answer from the profile service
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("profile service unexpected status: %d", e.StatusCode)
	}
	return fmt.Sprintf("profile service status %d: %s", e.StatusCode, e.Message)
}

// Reason is the message the service attached to the failure
func (e *ServiceError) Reason() string {
	return e.Message
}
