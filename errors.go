package jpeg2000part2

import "fmt"

// Kind classifies an Error into the taxonomy shared by every package in this
// module.
type Kind int

const (
	// InvalidParameter marks a bounds or shape violation at any API boundary.
	InvalidParameter Kind = iota
	// EncodingError marks a bit-packing failure while serialising a wire
	// format (the DCO marker segment).
	EncodingError
	// DecodingError marks a malformed DCO segment: short buffer, bad Sdco,
	// or a misaligned length field.
	DecodingError
	// MetricError is a sub-kind of InvalidParameter emitted by the metric
	// engine when dimensions mismatch or a sliding window would overrun.
	MetricError
)

// IsInvalidParameter reports whether k falls under the InvalidParameter
// family. MetricError is a sub-kind of InvalidParameter (dimension
// mismatches and window overruns in the metric engine), so it reports true
// here as well as comparing equal to MetricError itself.
func (k Kind) IsInvalidParameter() bool {
	return k == InvalidParameter || k == MetricError
}

// String returns the name of the error kind.
func (k Kind) String() string {
	switch k {
	case InvalidParameter:
		return "InvalidParameter"
	case EncodingError:
		return "EncodingError"
	case DecodingError:
		return "DecodingError"
	case MetricError:
		return "MetricError"
	default:
		return "Unknown"
	}
}

// Error is the single error type returned by every package in this module.
// It carries a Kind, a short diagnostic message with the offending numeric
// values, and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped cause, if any, so callers can use errors.Is
// and errors.As against it.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError constructs an Error of the given kind with a formatted message.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError constructs an Error of the given kind that wraps cause.
func WrapError(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// ComponentError is a diagnostic error that additionally carries the index
// and offending value of the component that triggered it, so callers can
// errors.As it instead of parsing the message string.
type ComponentError struct {
	*Error
	ComponentIndex int
	Value          float64
}

// NewComponentError constructs a ComponentError of the given kind.
func NewComponentError(kind Kind, componentIndex int, value float64, format string, args ...any) *ComponentError {
	return &ComponentError{
		Error:          NewError(kind, format, args...),
		ComponentIndex: componentIndex,
		Value:          value,
	}
}
