package cqldb

import (
	"encoding/hex"
	"net"
	"strings"

	"github.com/google/uuid"
)

// stringCodec covers ascii, text and varchar. The wire representation is the
// raw UTF-8 bytes; ascii additionally rejects non-ASCII input on encode.
type stringCodec struct {
	code Type
}

func (c stringCodec) DataType() DataType   { return PrimitiveType(c.code) }
func (stringCodec) TargetType() TargetType { return TargetString }

func (stringCodec) Accepts(value interface{}) bool {
	_, ok := value.(string)
	return ok
}

func (c stringCodec) Encode(value interface{}, _ ProtocolVersion) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	v, ok := value.(string)
	if !ok {
		return nil, encodeErrorf("%s: cannot encode %T", c.code, value)
	}
	if c.code == TypeAscii {
		for i := 0; i < len(v); i++ {
			if v[i] > 127 {
				return nil, encodeErrorf("ascii: non-ASCII byte 0x%02x at offset %d", v[i], i)
			}
		}
	}
	return []byte(v), nil
}

func (stringCodec) Decode(data []byte, _ ProtocolVersion) (interface{}, error) {
	if data == nil {
		return nil, nil
	}
	return string(data), nil
}

func (c stringCodec) Format(value interface{}) (string, error) {
	if value == nil {
		return nullLiteral, nil
	}
	v, ok := value.(string)
	if !ok {
		return "", encodeErrorf("%s: cannot format %T", c.code, value)
	}
	return quote(v), nil
}

func (c stringCodec) Parse(literal string) (interface{}, error) {
	if isNullLiteral(literal) {
		return nil, nil
	}
	v, ok := unquote(strings.TrimSpace(literal))
	if !ok {
		return nil, parseErrorf("cannot parse %q as %s: not a quoted string", literal, c.code)
	}
	return v, nil
}

type blobCodec struct{}

func (blobCodec) DataType() DataType     { return PrimitiveType(TypeBlob) }
func (blobCodec) TargetType() TargetType { return TargetBytes }

func (blobCodec) Accepts(value interface{}) bool {
	_, ok := value.([]byte)
	return ok
}

func (blobCodec) Encode(value interface{}, _ ProtocolVersion) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	v, ok := value.([]byte)
	if !ok {
		return nil, encodeErrorf("blob: cannot encode %T", value)
	}
	return v, nil
}

func (blobCodec) Decode(data []byte, _ ProtocolVersion) (interface{}, error) {
	if data == nil {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (blobCodec) Format(value interface{}) (string, error) {
	if value == nil {
		return nullLiteral, nil
	}
	v, ok := value.([]byte)
	if !ok {
		return "", encodeErrorf("blob: cannot format %T", value)
	}
	return "0x" + hex.EncodeToString(v), nil
}

func (blobCodec) Parse(literal string) (interface{}, error) {
	if isNullLiteral(literal) {
		return nil, nil
	}
	s := strings.TrimSpace(literal)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return nil, parseErrorf("cannot parse %q as blob: missing 0x prefix", literal)
	}
	v, err := hex.DecodeString(s[2:])
	if err != nil {
		return nil, parseErrorf("cannot parse %q as blob: %v", literal, err)
	}
	return v, nil
}

// uuidCodec covers uuid and, with a different wire code, timeuuid.
type uuidCodec struct {
	code Type
}

func (c uuidCodec) DataType() DataType   { return PrimitiveType(c.code) }
func (uuidCodec) TargetType() TargetType { return TargetUUID }

func (uuidCodec) Accepts(value interface{}) bool {
	_, ok := value.(uuid.UUID)
	return ok
}

func (c uuidCodec) Encode(value interface{}, _ ProtocolVersion) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	v, ok := value.(uuid.UUID)
	if !ok {
		return nil, encodeErrorf("%s: cannot encode %T", c.code, value)
	}
	b := make([]byte, 16)
	copy(b, v[:])
	return b, nil
}

func (c uuidCodec) Decode(data []byte, _ ProtocolVersion) (interface{}, error) {
	if data == nil {
		return nil, nil
	}
	if len(data) != 16 {
		return nil, decodeErrorf("%s: expected 16 bytes, got %d", c.code, len(data))
	}
	var v uuid.UUID
	copy(v[:], data)
	return v, nil
}

func (c uuidCodec) Format(value interface{}) (string, error) {
	if value == nil {
		return nullLiteral, nil
	}
	v, ok := value.(uuid.UUID)
	if !ok {
		return "", encodeErrorf("%s: cannot format %T", c.code, value)
	}
	// uuid literals are unquoted in CQL
	return v.String(), nil
}

func (c uuidCodec) Parse(literal string) (interface{}, error) {
	if isNullLiteral(literal) {
		return nil, nil
	}
	v, err := uuid.Parse(strings.TrimSpace(literal))
	if err != nil {
		return nil, parseErrorf("cannot parse %q as %s", literal, c.code)
	}
	return v, nil
}

type inetCodec struct{}

func (inetCodec) DataType() DataType     { return PrimitiveType(TypeInet) }
func (inetCodec) TargetType() TargetType { return TargetIP }

func (inetCodec) Accepts(value interface{}) bool {
	_, ok := value.(net.IP)
	return ok
}

func (inetCodec) Encode(value interface{}, _ ProtocolVersion) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	v, ok := value.(net.IP)
	if !ok {
		return nil, encodeErrorf("inet: cannot encode %T", value)
	}
	if v4 := v.To4(); v4 != nil {
		return v4, nil
	}
	if v16 := v.To16(); v16 != nil {
		return v16, nil
	}
	return nil, encodeErrorf("inet: invalid IP %v", v)
}

func (inetCodec) Decode(data []byte, _ ProtocolVersion) (interface{}, error) {
	if data == nil {
		return nil, nil
	}
	if len(data) != 4 && len(data) != 16 {
		return nil, decodeErrorf("inet: expected 4 or 16 bytes, got %d", len(data))
	}
	ip := make(net.IP, len(data))
	copy(ip, data)
	return ip, nil
}

func (inetCodec) Format(value interface{}) (string, error) {
	if value == nil {
		return nullLiteral, nil
	}
	v, ok := value.(net.IP)
	if !ok {
		return "", encodeErrorf("inet: cannot format %T", value)
	}
	return quote(v.String()), nil
}

func (inetCodec) Parse(literal string) (interface{}, error) {
	if isNullLiteral(literal) {
		return nil, nil
	}
	s := unquoteIfQuoted(strings.TrimSpace(literal))
	ip := net.ParseIP(s)
	if ip == nil {
		return nil, parseErrorf("cannot parse %q as inet", literal)
	}
	if v4 := ip.To4(); v4 != nil {
		return v4, nil
	}
	return ip, nil
}
