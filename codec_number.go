package cqldb

import (
	"math"
	"strconv"
	"strings"
)

// Built-in numeric and boolean codecs. All integer types are big-endian
// two's complement at their fixed width.

type booleanCodec struct{}

func (booleanCodec) DataType() DataType     { return PrimitiveType(TypeBoolean) }
func (booleanCodec) TargetType() TargetType { return TargetBool }

func (booleanCodec) Accepts(value interface{}) bool {
	_, ok := value.(bool)
	return ok
}

func (booleanCodec) Encode(value interface{}, _ ProtocolVersion) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	v, ok := value.(bool)
	if !ok {
		return nil, encodeErrorf("boolean: cannot encode %T", value)
	}
	if v {
		return []byte{1}, nil
	}
	return []byte{0}, nil
}

func (booleanCodec) Decode(data []byte, _ ProtocolVersion) (interface{}, error) {
	if data == nil {
		return nil, nil
	}
	if len(data) != 1 {
		return nil, decodeErrorf("boolean: expected 1 byte, got %d", len(data))
	}
	return data[0] != 0, nil
}

func (booleanCodec) Format(value interface{}) (string, error) {
	if value == nil {
		return nullLiteral, nil
	}
	v, ok := value.(bool)
	if !ok {
		return "", encodeErrorf("boolean: cannot format %T", value)
	}
	return strconv.FormatBool(v), nil
}

func (booleanCodec) Parse(literal string) (interface{}, error) {
	if isNullLiteral(literal) {
		return nil, nil
	}
	switch strings.ToLower(strings.TrimSpace(literal)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return nil, parseErrorf("cannot parse %q as boolean", literal)
}

// intValue widens any accepted integer input to int64. The bool return is
// false for non-integer values.
func intValue(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	}
	return 0, false
}

type tinyIntCodec struct{}

func (tinyIntCodec) DataType() DataType     { return PrimitiveType(TypeTinyInt) }
func (tinyIntCodec) TargetType() TargetType { return TargetInt8 }

func (tinyIntCodec) Accepts(value interface{}) bool {
	v, ok := intValue(value)
	return ok && v >= math.MinInt8 && v <= math.MaxInt8
}

func (tinyIntCodec) Encode(value interface{}, _ ProtocolVersion) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	v, ok := intValue(value)
	if !ok {
		return nil, encodeErrorf("tinyint: cannot encode %T", value)
	}
	if v < math.MinInt8 || v > math.MaxInt8 {
		return nil, encodeErrorf("tinyint: value %d out of range", v)
	}
	return []byte{byte(int8(v))}, nil
}

func (tinyIntCodec) Decode(data []byte, _ ProtocolVersion) (interface{}, error) {
	if data == nil {
		return nil, nil
	}
	if len(data) != 1 {
		return nil, decodeErrorf("tinyint: expected 1 byte, got %d", len(data))
	}
	return int8(data[0]), nil
}

func (tinyIntCodec) Format(value interface{}) (string, error) {
	return formatInt(TypeTinyInt, value)
}

func (tinyIntCodec) Parse(literal string) (interface{}, error) {
	v, null, err := parseInt(TypeTinyInt, literal, 8)
	if null || err != nil {
		return nil, err
	}
	return int8(v), nil
}

type smallIntCodec struct{}

func (smallIntCodec) DataType() DataType     { return PrimitiveType(TypeSmallInt) }
func (smallIntCodec) TargetType() TargetType { return TargetInt16 }

func (smallIntCodec) Accepts(value interface{}) bool {
	v, ok := intValue(value)
	return ok && v >= math.MinInt16 && v <= math.MaxInt16
}

func (smallIntCodec) Encode(value interface{}, _ ProtocolVersion) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	v, ok := intValue(value)
	if !ok {
		return nil, encodeErrorf("smallint: cannot encode %T", value)
	}
	if v < math.MinInt16 || v > math.MaxInt16 {
		return nil, encodeErrorf("smallint: value %d out of range", v)
	}
	return encShort(int16(v)), nil
}

func (smallIntCodec) Decode(data []byte, _ ProtocolVersion) (interface{}, error) {
	if data == nil {
		return nil, nil
	}
	v, err := decShort(TypeSmallInt, data)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (smallIntCodec) Format(value interface{}) (string, error) {
	return formatInt(TypeSmallInt, value)
}

func (smallIntCodec) Parse(literal string) (interface{}, error) {
	v, null, err := parseInt(TypeSmallInt, literal, 16)
	if null || err != nil {
		return nil, err
	}
	return int16(v), nil
}

type intCodec struct{}

func (intCodec) DataType() DataType     { return PrimitiveType(TypeInt) }
func (intCodec) TargetType() TargetType { return TargetInt32 }

func (intCodec) Accepts(value interface{}) bool {
	v, ok := intValue(value)
	return ok && v >= math.MinInt32 && v <= math.MaxInt32
}

func (intCodec) Encode(value interface{}, _ ProtocolVersion) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	v, ok := intValue(value)
	if !ok {
		return nil, encodeErrorf("int: cannot encode %T", value)
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return nil, encodeErrorf("int: value %d out of range", v)
	}
	return encInt(int32(v)), nil
}

func (intCodec) Decode(data []byte, _ ProtocolVersion) (interface{}, error) {
	if data == nil {
		return nil, nil
	}
	v, err := decInt(TypeInt, data)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (intCodec) Format(value interface{}) (string, error) {
	return formatInt(TypeInt, value)
}

func (intCodec) Parse(literal string) (interface{}, error) {
	v, null, err := parseInt(TypeInt, literal, 32)
	if null || err != nil {
		return nil, err
	}
	return int32(v), nil
}

// bigIntCodec covers bigint and, with a different wire code, counter.
type bigIntCodec struct {
	code Type
}

func (c bigIntCodec) DataType() DataType   { return PrimitiveType(c.code) }
func (bigIntCodec) TargetType() TargetType { return TargetInt64 }

func (bigIntCodec) Accepts(value interface{}) bool {
	_, ok := intValue(value)
	return ok
}

func (c bigIntCodec) Encode(value interface{}, _ ProtocolVersion) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	v, ok := intValue(value)
	if !ok {
		return nil, encodeErrorf("%s: cannot encode %T", c.code, value)
	}
	return encLong(v), nil
}

func (c bigIntCodec) Decode(data []byte, _ ProtocolVersion) (interface{}, error) {
	if data == nil {
		return nil, nil
	}
	v, err := decLong(c.code, data)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (c bigIntCodec) Format(value interface{}) (string, error) {
	return formatInt(c.code, value)
}

func (c bigIntCodec) Parse(literal string) (interface{}, error) {
	v, null, err := parseInt(c.code, literal, 64)
	if null || err != nil {
		return nil, err
	}
	return v, nil
}

func formatInt(typ Type, value interface{}) (string, error) {
	if value == nil {
		return nullLiteral, nil
	}
	v, ok := intValue(value)
	if !ok {
		return "", encodeErrorf("%s: cannot format %T", typ, value)
	}
	return strconv.FormatInt(v, 10), nil
}

func parseInt(typ Type, literal string, bits int) (v int64, null bool, err error) {
	if isNullLiteral(literal) {
		return 0, true, nil
	}
	v, perr := strconv.ParseInt(strings.TrimSpace(literal), 10, bits)
	if perr != nil {
		return 0, false, parseErrorf("cannot parse %q as %s", literal, typ)
	}
	return v, false, nil
}

type floatCodec struct{}

func (floatCodec) DataType() DataType     { return PrimitiveType(TypeFloat) }
func (floatCodec) TargetType() TargetType { return TargetFloat32 }

func (floatCodec) Accepts(value interface{}) bool {
	_, ok := value.(float32)
	return ok
}

func (floatCodec) Encode(value interface{}, _ ProtocolVersion) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	v, ok := value.(float32)
	if !ok {
		return nil, encodeErrorf("float: cannot encode %T", value)
	}
	return encInt(int32(math.Float32bits(v))), nil
}

func (floatCodec) Decode(data []byte, _ ProtocolVersion) (interface{}, error) {
	if data == nil {
		return nil, nil
	}
	v, err := decInt(TypeFloat, data)
	if err != nil {
		return nil, err
	}
	return math.Float32frombits(uint32(v)), nil
}

func (floatCodec) Format(value interface{}) (string, error) {
	if value == nil {
		return nullLiteral, nil
	}
	v, ok := value.(float32)
	if !ok {
		return "", encodeErrorf("float: cannot format %T", value)
	}
	return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
}

func (floatCodec) Parse(literal string) (interface{}, error) {
	if isNullLiteral(literal) {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(literal), 32)
	if err != nil {
		return nil, parseErrorf("cannot parse %q as float", literal)
	}
	return float32(v), nil
}

type doubleCodec struct{}

func (doubleCodec) DataType() DataType     { return PrimitiveType(TypeDouble) }
func (doubleCodec) TargetType() TargetType { return TargetFloat64 }

func (doubleCodec) Accepts(value interface{}) bool {
	_, ok := value.(float64)
	return ok
}

func (doubleCodec) Encode(value interface{}, _ ProtocolVersion) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	v, ok := value.(float64)
	if !ok {
		return nil, encodeErrorf("double: cannot encode %T", value)
	}
	return encLong(int64(math.Float64bits(v))), nil
}

func (doubleCodec) Decode(data []byte, _ ProtocolVersion) (interface{}, error) {
	if data == nil {
		return nil, nil
	}
	v, err := decLong(TypeDouble, data)
	if err != nil {
		return nil, err
	}
	return math.Float64frombits(uint64(v)), nil
}

func (doubleCodec) Format(value interface{}) (string, error) {
	if value == nil {
		return nullLiteral, nil
	}
	v, ok := value.(float64)
	if !ok {
		return "", encodeErrorf("double: cannot format %T", value)
	}
	return strconv.FormatFloat(v, 'g', -1, 64), nil
}

func (doubleCodec) Parse(literal string) (interface{}, error) {
	if isNullLiteral(literal) {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(literal), 64)
	if err != nil {
		return nil, parseErrorf("cannot parse %q as double", literal)
	}
	return v, nil
}
