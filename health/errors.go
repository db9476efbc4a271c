package health

import (
	"errors"
	"fmt"
)

// ErrInvalidData indicates a Status payload could not be encoded or decoded.
// Every *InvalidDataError unwraps to it.
var ErrInvalidData = errors.New("health: invalid data")

// ErrorKind tells which direction of the codec rejected the data.
type ErrorKind int

const (
	// KindDeserialization is reported when decoding a payload fails.
	KindDeserialization ErrorKind = iota
	// KindSerialization is reported when encoding a value fails.
	KindSerialization
)

func (k ErrorKind) String() string {
	switch k {
	case KindDeserialization:
		return "deserialization"
	case KindSerialization:
		return "serialization"
	default:
		return "unknown"
	}
}

// InvalidDataError describes a rejected value during Status encoding or decoding.
type InvalidDataError struct {
	Kind  ErrorKind
	Field string
	Value string
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("health: %s failed: invalid %s %q", e.Kind, e.Field, e.Value)
}

// Unwrap returns ErrInvalidData.
func (e *InvalidDataError) Unwrap() error {
	return ErrInvalidData
}

func deserializationError(field, value string) error {
	return &InvalidDataError{Kind: KindDeserialization, Field: field, Value: value}
}

func serializationError(field, value string) error {
	return &InvalidDataError{Kind: KindSerialization, Field: field, Value: value}
}
