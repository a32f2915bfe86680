package oddsapi

import (
	"errors"
	"fmt"

	"github.com/yourusername/oddsfeed/internal/models"
)

// ConfigurationError signals missing or unusable client configuration.
// Fatal: no network call is attempted and no retry can help.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// AuthenticationError signals the provider rejected the configured
// credentials. Fatal: retrying cannot help.
type AuthenticationError struct {
	Message string
	Cause   error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication error: %s", e.Message)
}

func (e *AuthenticationError) Unwrap() error { return e.Cause }

// RateLimitError signals the provider kept rate-limiting us until the
// attempt ceiling was reached.
type RateLimitError struct {
	Attempts int
	Cause    error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited: failed after %d attempts", e.Attempts)
}

func (e *RateLimitError) Unwrap() error { return e.Cause }

// TransientError signals a timeout or connection failure that persisted
// through all retry attempts.
type TransientError struct {
	Attempts int
	Cause    error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("network error: failed after %d attempts", e.Attempts)
}

func (e *TransientError) Unwrap() error { return e.Cause }

// UnsupportedSportError signals the provider has no mapping for a requested
// sport. Surfaced per sport, never fatal to a batch.
type UnsupportedSportError struct {
	Sport models.Sport
}

func (e *UnsupportedSportError) Error() string {
	return fmt.Sprintf("sport %s not supported by provider", e.Sport)
}

// NewConfigurationError creates a configuration error.
func NewConfigurationError(message string) *ConfigurationError {
	return &ConfigurationError{Message: message}
}

// NewAuthenticationError creates an authentication error.
func NewAuthenticationError(message string, cause error) *AuthenticationError {
	return &AuthenticationError{Message: message, Cause: cause}
}

// IsFatal reports whether an error should interrupt a whole batch fetch
// instead of being recorded per sport.
func IsFatal(err error) bool {
	var cfgErr *ConfigurationError
	var authErr *AuthenticationError
	return errors.As(err, &cfgErr) || errors.As(err, &authErr)
}
