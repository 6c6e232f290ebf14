package cardrules

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration matches every *ConfigurationError via errors.Is.
	ErrConfiguration = errors.New("cardrules: invalid rule configuration")

	ErrUnknownNetworkAlias = errors.New("cardrules: unknown network alias")
	ErrMissingArgument     = errors.New("cardrules: card number must be provided")
	ErrNoMatchingNetwork   = errors.New("cardrules: no matching network")
	ErrInvalidRange        = errors.New("cardrules: invalid range")
)

// ConfigurationError describes a rule that could not be built.
type ConfigurationError struct {
	NetworkID string
	Field     string
	Reason    string
	Err       error
}

func (e *ConfigurationError) Error() string {
	id := e.NetworkID
	if id == "" {
		id = "<unnamed>"
	}
	if e.Field == "" {
		return fmt.Sprintf("cardrules: network %s: %s", id, e.Reason)
	}
	return fmt.Sprintf("cardrules: network %s: %s: %s", id, e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func configError(id, field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{
		NetworkID: id,
		Field:     field,
		Reason:    fmt.Sprintf(format, args...),
	}
}
