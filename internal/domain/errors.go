package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigurationMissing is returned when a required startup value is absent.
	ErrConfigurationMissing = errors.New("configuration missing")

	// ErrUnauthenticated is returned when the presented bearer token is rejected.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidParameter is returned when tool arguments fail validation.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrExternalService is returned when the upstream meme provider cannot be reached
	// or its response cannot be parsed.
	ErrExternalService = errors.New("external service error")

	// ErrUpstreamFieldMissing is returned when an upstream meme element lacks an expected field.
	ErrUpstreamFieldMissing = errors.New("upstream field missing")
)

// ExternalServiceError carries the original failure text of an upstream call.
// It matches ErrExternalService, and also ErrUpstreamFieldMissing when the
// failure was a missing field.
type ExternalServiceError struct {
	Service string
	Err     error
}

// NewExternalServiceError wraps err as a failure of the named service.
func NewExternalServiceError(service string, err error) *ExternalServiceError {
	return &ExternalServiceError{Service: service, Err: err}
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s error: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() []error {
	return []error{ErrExternalService, e.Err}
}

// InvalidParameterError describes a rejected tool argument.
type InvalidParameterError struct {
	Param  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("invalid parameters: %s", e.Reason)
	}
	return fmt.Sprintf("invalid parameter %q: %s", e.Param, e.Reason)
}

func (e *InvalidParameterError) Unwrap() error {
	return ErrInvalidParameter
}
