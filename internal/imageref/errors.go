package imageref

import (
	"errors"
	"fmt"
)

// ErrorKind classifies image subsystem failures so callers can match on
// kind instead of catching generically.
type ErrorKind string

const (
	// KindConfigMissing means an optional configuration value (base URL,
	// version token) was absent. Always has a safe default; never fatal.
	KindConfigMissing ErrorKind = "config_missing"

	// KindNotFound means no branch of the resolver produced a reference.
	// Expected and common; surfaced as a placeholder, never as a page error.
	KindNotFound ErrorKind = "not_found"

	// KindCorrupt covers zero-byte and unreadably small files.
	KindCorrupt ErrorKind = "corrupt"

	// KindBlackout means the file decoded but is almost entirely black.
	KindBlackout ErrorKind = "blackout"

	// KindDecode means the file exists but could not be decoded or rendered.
	KindDecode ErrorKind = "decode_error"
)

// Error is the image subsystem error type. Path is the candidate that
// failed, when one exists.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		if e.Err != nil {
			return fmt.Sprintf("image %s: %s: %v", e.Kind, e.Path, e.Err)
		}
		return fmt.Sprintf("image %s: %s", e.Kind, e.Path)
	}
	if e.Err != nil {
		return fmt.Sprintf("image %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("image %s", e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds an Error with the given kind, candidate path, and cause.
func NewError(kind ErrorKind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// KindOf extracts the ErrorKind from err. Errors outside the taxonomy
// report KindDecode, the catch-all render failure class.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindDecode
}
