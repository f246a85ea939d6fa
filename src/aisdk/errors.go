package aisdk

import (
	"errors"
	"fmt"
)

// ErrorKind classifies provider failures so callers can decide whether a
// fallback model is worth trying.
type ErrorKind int

const (
	// ErrKindOther covers everything without a more specific classification.
	ErrKindOther ErrorKind = iota
	// ErrKindNotFound means the requested model does not exist.
	ErrKindNotFound
	// ErrKindUnauthorized means the API key was rejected for this request.
	ErrKindUnauthorized
	// ErrKindRateLimited means the provider is throttling us.
	ErrKindRateLimited
)

// ProviderError is a classified error from the model API boundary.
type ProviderError struct {
	Kind       ErrorKind
	StatusCode int
	Code       string
	Message    string
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("provider error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("provider error %d: %s", e.StatusCode, e.Message)
}

// KindOf extracts the classification from an error chain. Errors that are not
// ProviderErrors report ErrKindOther.
func KindOf(err error) ErrorKind {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ErrKindOther
}

// IsModelUnavailable reports whether the error indicates the model identifier
// was rejected (not-found or unauthorized), the class worth retrying against a
// fallback model.
func IsModelUnavailable(err error) bool {
	switch KindOf(err) {
	case ErrKindNotFound, ErrKindUnauthorized:
		return true
	}
	return false
}
