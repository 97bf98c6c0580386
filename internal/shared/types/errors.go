package types

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists = errors.New("inference profile already exists")
	ErrNotFound      = errors.New("inference profile not found")
	ErrConfig        = errors.New("invalid batch configuration")
	ErrInput         = errors.New("invalid input")
	ErrNoTags        = errors.New("no tags found in configuration file")
	ErrNoProfiles    = errors.New("no inference profiles found")
)

// RemoteError is a transport or service failure returned by Bedrock.
// Message carries the remote error text verbatim.
type RemoteError struct {
	Op      string
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// ConfigError wraps a batch file problem so that errors.Is(err, ErrConfig) holds.
func ConfigError(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, a...))
}

// InputError wraps an interactive selection problem so that errors.Is(err, ErrInput) holds.
func InputError(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInput, fmt.Sprintf(format, a...))
}
