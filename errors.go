package cqldb

import (
	"errors"
	"fmt"
)

// ErrMixedValues is returned when a statement is constructed with both
// positional and named values.
var ErrMixedValues = errors.New("cqldb: statement cannot have both positional and named values")

// EncodeError is returned when a value cannot be encoded to its wire
// representation.
type EncodeError string

func (e EncodeError) Error() string {
	return string(e)
}

func encodeErrorf(format string, args ...interface{}) EncodeError {
	return EncodeError("cqldb: " + fmt.Sprintf(format, args...))
}

// DecodeError is returned when wire bytes do not match the layout their
// type mandates, for example a wrong length for a fixed-width type. The
// bytes are never truncated or padded to fit.
type DecodeError string

func (e DecodeError) Error() string {
	return string(e)
}

func decodeErrorf(format string, args ...interface{}) DecodeError {
	return DecodeError("cqldb: " + fmt.Sprintf(format, args...))
}

// ParseError is returned when a CQL literal matches none of the
// alternatives of its type's literal grammar.
type ParseError string

func (e ParseError) Error() string {
	return string(e)
}

func parseErrorf(format string, args ...interface{}) ParseError {
	return ParseError("cqldb: " + fmt.Sprintf(format, args...))
}

// CodecNotFoundError is returned when the registry has no codec for a
// (wire type, target type) pair. It carries both types so the caller knows
// what to register.
type CodecNotFoundError struct {
	DataType DataType
	Target   *TargetType // nil when resolution was value-driven
	Value    interface{} // runtime value for value-driven resolution
	Index    int         // offending variable index during binding, -1 otherwise
}

func (e *CodecNotFoundError) Error() string {
	var msg string
	if e.Target != nil {
		msg = fmt.Sprintf("cqldb: no codec for wire type %s and target type %s", e.DataType, *e.Target)
	} else {
		msg = fmt.Sprintf("cqldb: no codec for wire type %s and value of type %T", e.DataType, e.Value)
	}
	if e.Index >= 0 {
		msg += fmt.Sprintf(" (variable %d)", e.Index)
	}
	return msg
}

// IndexOutOfRangeError is returned by any accessor given an invalid slot
// index.
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("cqldb: index %d out of range (%d slots)", e.Index, e.Len)
}

// NameNotFoundError is returned by name-based accessors when the schema
// declares no such column or variable.
type NameNotFoundError struct {
	Name string
}

func (e *NameNotFoundError) Error() string {
	return fmt.Sprintf("cqldb: no column or variable named %q", e.Name)
}

// ArgumentCountError is returned by Bind when the number of supplied values
// does not match the number of declared variables.
type ArgumentCountError struct {
	Expected int
	Actual   int
}

func (e *ArgumentCountError) Error() string {
	return fmt.Sprintf("cqldb: statement declares %d variables, got %d values", e.Expected, e.Actual)
}
