package cqldb

import (
	"encoding/binary"
	"strings"
)

// Codec converts between the wire representation of one protocol type and
// one Go representation, and between Go values and CQL literals. A codec
// declares exactly one wire type and one target type; the registry never
// mutates a codec, so codec values are safe for unbounded concurrent use.
//
// Encode returns nil bytes only for a nil value; it never fails for a value
// representable by the target type. Decode accepts nil bytes and returns the
// type's null representation (a nil interface); for fixed-width types any
// other length than the mandated one is a DecodeError, never a truncation.
//
// Format renders a value as a CQL literal, with Format(nil) == "NULL".
// Parse is the inverse and must accept every Format output; it maps the
// literals NULL (any case), the empty string and all-whitespace to nil.
type Codec interface {
	DataType() DataType
	TargetType() TargetType
	Encode(value interface{}, version ProtocolVersion) ([]byte, error)
	Decode(data []byte, version ProtocolVersion) (interface{}, error)
	Format(value interface{}) (string, error)
	Parse(literal string) (interface{}, error)

	// Accepts reports whether the codec can encode the runtime value. It
	// backs value-driven registry resolution and may accept more Go types
	// than the declared target (for example plain int for an int32 column).
	Accepts(value interface{}) bool
}

// Fixed-width big-endian readers and writers. Decoders check the exact
// length their type mandates.

func encLong(x int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(x))
	return b
}

func decLong(typ Type, data []byte) (int64, error) {
	if len(data) != 8 {
		return 0, decodeErrorf("%s: expected 8 bytes, got %d", typ, len(data))
	}
	return int64(binary.BigEndian.Uint64(data)), nil
}

func encInt(x int32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, uint32(x))
	return b
}

func decInt(typ Type, data []byte) (int32, error) {
	if len(data) != 4 {
		return 0, decodeErrorf("%s: expected 4 bytes, got %d", typ, len(data))
	}
	return int32(binary.BigEndian.Uint32(data)), nil
}

func encShort(x int16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, uint16(x))
	return b
}

func decShort(typ Type, data []byte) (int16, error) {
	if len(data) != 2 {
		return 0, decodeErrorf("%s: expected 2 bytes, got %d", typ, len(data))
	}
	return int16(binary.BigEndian.Uint16(data)), nil
}

// nullLiteral is what Format emits for nil values, always unquoted.
const nullLiteral = "NULL"

// isNullLiteral reports whether a literal denotes null: the keyword NULL in
// any case, the empty string, or whitespace only.
func isNullLiteral(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "NULL")
}

// quote wraps s in single quotes, doubling embedded quotes per CQL string
// literal rules.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// unquote strips surrounding single quotes and undoubles embedded quotes.
// The second return is false when s is not a quoted literal.
func unquote(s string) (string, bool) {
	if len(s) < 2 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return "", false
	}
	return strings.ReplaceAll(s[1:len(s)-1], "''", "'"), true
}

// unquoteIfQuoted strips quotes when present, otherwise returns the trimmed
// input. Several literal grammars (temporal ones in particular) accept both
// forms.
func unquoteIfQuoted(s string) string {
	if inner, ok := unquote(s); ok {
		return inner
	}
	return s
}
