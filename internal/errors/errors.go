package errors

import (
	"errors"
	"fmt"
)

// Common error types for the intelligence client
var (
	// Session errors
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNoToken         = errors.New("no access token")
	ErrNoUser          = errors.New("no stored user")

	// Transport errors
	ErrNetwork         = errors.New("network error")
	ErrUnexpectedReply = errors.New("unexpected response")

	// Storage errors
	ErrKeyNotFound     = errors.New("key not found")
	ErrUnknownBackend  = errors.New("unknown storage backend")
	ErrStoreClosed     = errors.New("store closed")
	ErrCorruptSnapshot = errors.New("corrupt store snapshot")

	// Queue errors
	ErrOperationPanic = errors.New("operation panicked")
	ErrNilOperation   = errors.New("nil operation")

	// Validation errors
	ErrInvalidRequest = errors.New("invalid request")
	ErrInvalidConfig  = errors.New("invalid configuration")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
