// Package errs defines the failure taxonomy shared by the token, document
// and project operations: configuration, transport and decoding errors.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration is matched by every [ConfigurationError].
	ErrConfiguration = errors.New("missing configuration")
	// ErrTransport is matched by every [TransportError].
	ErrTransport = errors.New("retrieval failed")
	// ErrDecoding is matched by every [DecodingError].
	ErrDecoding = errors.New("decoding failed")
	// ErrInvalidArgument is returned when a caller supplied argument
	// cannot be used to build a request.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ConfigurationError reports a required configuration field that is not set,
// or, when Reason is given, set to an unusable value.
type ConfigurationError struct {
	Field  string
	Reason string
}

// NewConfigurationError constructs a ConfigurationError for field.
func NewConfigurationError(field string) *ConfigurationError {
	return &ConfigurationError{Field: field}
}

// NewInvalidConfigurationError constructs a ConfigurationError for a field
// holding an unusable value.
func NewInvalidConfigurationError(field, reason string) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: reason}
}

func (e *ConfigurationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
	}

	return fmt.Sprintf("%v: %s is not set", ErrConfiguration, e.Field)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// /////////////////////////////////////////////////////////////////////////////////////////////

// Param identifies an entity involved in a failed operation.
type Param struct {
	Key   string
	Value string
}

// P is shorthand for building a Param.
func P(key string, value any) Param {
	return Param{Key: key, Value: fmt.Sprint(value)}
}

// TransportError reports an HTTP exchange that did not complete successfully,
// either because of a network failure or a non-success status.
type TransportError struct {
	Op     string
	Params []Param
	Err    error
}

// NewTransportError wraps err as a failure of op.
func NewTransportError(op string, err error, params ...Param) *TransportError {
	return &TransportError{Op: op, Params: params, Err: err}
}

func (e *TransportError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(" retrieval failed")
	writeParams(&b, e.Params)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// /////////////////////////////////////////////////////////////////////////////////////////////

// DecodingError reports a response body that could not be transformed
// into the expected result.
type DecodingError struct {
	Op  string
	Err error
}

// NewDecodingError wraps err as a decoding failure of op.
func NewDecodingError(op string, err error) *DecodingError {
	return &DecodingError{Op: op, Err: err}
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("%s decoding failed: %v", e.Op, e.Err)
}

func (e *DecodingError) Unwrap() error {
	return e.Err
}

func (e *DecodingError) Is(target error) bool {
	return target == ErrDecoding
}

// /////////////////////////////////////////////////////////////////////////////////////////////

// IsConfiguration reports whether err contains a ConfigurationError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsTransport reports whether err contains a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsDecoding reports whether err contains a DecodingError.
func IsDecoding(err error) bool {
	var de *DecodingError
	return errors.As(err, &de)
}

// MissingFields returns the configuration fields reported as not set in err,
// which may be a single ConfigurationError or several joined together.
func MissingFields(err error) []string {
	var fields []string
	collect(err, &fields)

	return fields
}

func collect(err error, fields *[]string) {
	if err == nil {
		return
	}

	if ce, ok := err.(*ConfigurationError); ok {
		if ce.Reason == "" {
			*fields = append(*fields, ce.Field)
		}
		return
	}

	switch e := err.(type) {
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			collect(inner, fields)
		}
	case interface{ Unwrap() error }:
		collect(e.Unwrap(), fields)
	}
}

func writeParams(b *strings.Builder, params []Param) {
	if len(params) == 0 {
		return
	}

	b.WriteString(" (")
	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Key)
		b.WriteString(": ")
		b.WriteString(p.Value)
	}
	b.WriteString(")")
}
