package mapper

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrNotStruct indicates a source or destination type is not a struct.
	ErrNotStruct = errors.New("type is not a struct")

	// ErrUnresolvedMember indicates a destination selector did not address a field.
	ErrUnresolvedMember = errors.New("could not resolve member from expression")

	// ErrIncompatibleTypes indicates two matched fields have no conversion.
	ErrIncompatibleTypes = errors.New("incompatible field types")

	// ErrDuplicateMap indicates the type pair is already registered.
	ErrDuplicateMap = errors.New("duplicate map")

	// ErrInvalidRule indicates a rule was configured without a source expression.
	ErrInvalidRule = errors.New("invalid rule")

	// ErrMapNotFound indicates no map is registered for a type pair.
	ErrMapNotFound = errors.New("map not found")

	// ErrNotCompiled indicates a map was invoked before Compile.
	ErrNotCompiled = errors.New("map not compiled")

	// ErrInvalidArgument indicates a source or destination of the wrong shape.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConversion indicates a value could not be converted at map time.
	ErrConversion = errors.New("conversion failed")

	// ErrOverflow indicates a numeric value does not fit the destination.
	ErrOverflow = errors.New("value overflows destination")

	// ErrTransform indicates a user transform returned an error.
	ErrTransform = errors.New("transform failed")

	// ErrMarshal indicates the codec failed to marshal a manifest.
	ErrMarshal = errors.New("marshal failed")

	// ErrUnmarshal indicates the codec failed to unmarshal a manifest.
	ErrUnmarshal = errors.New("unmarshal failed")
)

// ConfigError represents a mapping configuration error raised while building
// or compiling rules. It wraps a sentinel error with the map identifier, the
// field names involved and the underlying cause.
type ConfigError struct {
	Err         error  // Underlying sentinel error (ErrIncompatibleTypes, etc.)
	Map         string // Map identifier, "source||destination"
	Source      string // Source field name, empty for custom rules
	Destination string // Destination field name
	Cause       error  // Original error, if any
}

func (e *ConfigError) Error() string {
	msg := "mapper: " + e.Err.Error()
	if e.Map != "" {
		msg += " in map " + e.Map
	}
	switch {
	case e.Source != "" && e.Destination != "":
		msg += fmt.Sprintf(" (field %s -> %s)", e.Source, e.Destination)
	case e.Destination != "":
		msg += fmt.Sprintf(" (field %s)", e.Destination)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// MapError represents a failure while invoking a map: no map registered,
// map not compiled, bad arguments or a value that failed to convert.
type MapError struct {
	Err   error  // Underlying sentinel error (ErrMapNotFound, ErrNotCompiled, etc.)
	Map   string // Map identifier, "source||destination"
	Field string // Destination field, when a single assignment failed
	Cause error  // Original error, if any
}

func (e *MapError) Error() string {
	msg := "mapper: " + e.Err.Error()
	if e.Map != "" {
		msg += " for " + e.Map
	}
	if e.Field != "" {
		msg += fmt.Sprintf(" (field %s)", e.Field)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *MapError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// CodecError represents a manifest marshal/unmarshal error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

func newConfigError(sentinel error, id, source, destination string, cause error) error {
	return &ConfigError{
		Err:         sentinel,
		Map:         id,
		Source:      source,
		Destination: destination,
		Cause:       cause,
	}
}

func newMapError(sentinel error, id, field string, cause error) error {
	return &MapError{
		Err:   sentinel,
		Map:   id,
		Field: field,
		Cause: cause,
	}
}

func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}
