package cqldb

import (
	"math/big"
	"strings"

	"gopkg.in/inf.v0"
)

// varintCodec converts the wire type varint to *big.Int. The wire
// representation is a variable-length big-endian two's complement integer.
type varintCodec struct{}

func (varintCodec) DataType() DataType     { return PrimitiveType(TypeVarint) }
func (varintCodec) TargetType() TargetType { return TargetBigInt }

func (varintCodec) Accepts(value interface{}) bool {
	_, ok := value.(*big.Int)
	return ok
}

func (varintCodec) Encode(value interface{}, _ ProtocolVersion) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	v, ok := value.(*big.Int)
	if !ok || v == nil {
		return nil, encodeErrorf("varint: cannot encode %T", value)
	}
	return encBigInt2C(v), nil
}

func (varintCodec) Decode(data []byte, _ ProtocolVersion) (interface{}, error) {
	if data == nil {
		return nil, nil
	}
	if len(data) == 0 {
		return nil, decodeErrorf("varint: empty payload")
	}
	return decBigInt2C(data), nil
}

func (varintCodec) Format(value interface{}) (string, error) {
	if value == nil {
		return nullLiteral, nil
	}
	v, ok := value.(*big.Int)
	if !ok || v == nil {
		return "", encodeErrorf("varint: cannot format %T", value)
	}
	return v.String(), nil
}

func (varintCodec) Parse(literal string) (interface{}, error) {
	if isNullLiteral(literal) {
		return nil, nil
	}
	v, ok := new(big.Int).SetString(strings.TrimSpace(literal), 10)
	if !ok {
		return nil, parseErrorf("cannot parse %q as varint", literal)
	}
	return v, nil
}

// decimalCodec converts the wire type decimal to *inf.Dec. The wire
// representation is a 4-byte big-endian scale followed by the two's
// complement unscaled value.
type decimalCodec struct{}

func (decimalCodec) DataType() DataType     { return PrimitiveType(TypeDecimal) }
func (decimalCodec) TargetType() TargetType { return TargetDecimal }

func (decimalCodec) Accepts(value interface{}) bool {
	switch value.(type) {
	case *inf.Dec, inf.Dec:
		return true
	}
	return false
}

func (decimalCodec) Encode(value interface{}, _ ProtocolVersion) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	var d *inf.Dec
	switch v := value.(type) {
	case *inf.Dec:
		d = v
	case inf.Dec:
		d = &v
	default:
		return nil, encodeErrorf("decimal: cannot encode %T", value)
	}
	if d == nil {
		return nil, nil
	}
	unscaled := encBigInt2C(d.UnscaledBig())
	buf := make([]byte, 4+len(unscaled))
	copy(buf[0:4], encInt(int32(d.Scale())))
	copy(buf[4:], unscaled)
	return buf, nil
}

func (decimalCodec) Decode(data []byte, _ ProtocolVersion) (interface{}, error) {
	if data == nil {
		return nil, nil
	}
	if len(data) < 5 {
		return nil, decodeErrorf("decimal: need at least 5 bytes, got %d", len(data))
	}
	scale, err := decInt(TypeDecimal, data[0:4])
	if err != nil {
		return nil, err
	}
	unscaled := decBigInt2C(data[4:])
	return inf.NewDecBig(unscaled, inf.Scale(scale)), nil
}

func (decimalCodec) Format(value interface{}) (string, error) {
	if value == nil {
		return nullLiteral, nil
	}
	switch v := value.(type) {
	case *inf.Dec:
		if v == nil {
			return nullLiteral, nil
		}
		return v.String(), nil
	case inf.Dec:
		return v.String(), nil
	}
	return "", encodeErrorf("decimal: cannot format %T", value)
}

func (decimalCodec) Parse(literal string) (interface{}, error) {
	if isNullLiteral(literal) {
		return nil, nil
	}
	v, ok := new(inf.Dec).SetString(strings.TrimSpace(literal))
	if !ok {
		return nil, parseErrorf("cannot parse %q as decimal", literal)
	}
	return v, nil
}

// decBigInt2C reads a big-endian two's complement value. An empty slice
// decodes to zero.
func decBigInt2C(data []byte) *big.Int {
	n := new(big.Int).SetBytes(data)
	if len(data) > 0 && data[0]&0x80 != 0 {
		n.Sub(n, new(big.Int).Lsh(big.NewInt(1), uint(len(data))*8))
	}
	return n
}

// encBigInt2C writes the shortest big-endian two's complement encoding.
func encBigInt2C(n *big.Int) []byte {
	switch n.Sign() {
	case 0:
		return []byte{0}
	case 1:
		b := n.Bytes()
		if b[0]&0x80 != 0 {
			b = append([]byte{0}, b...)
		}
		return b
	default:
		length := uint(n.BitLen()/8+1) * 8
		b := new(big.Int).Add(n, new(big.Int).Lsh(big.NewInt(1), length)).Bytes()
		// A negative value whose magnitude sits on a byte boundary picks up
		// a redundant leading 0xff; strip it.
		if len(b) >= 2 && b[0] == 0xff && b[1]&0x80 != 0 {
			b = b[1:]
		}
		return b
	}
}
