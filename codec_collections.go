package cqldb

import (
	"encoding/binary"
	"strings"
)

// Collection codecs are composed on demand from their element codecs, so a
// list<text> resolves to a different codec value than a list<int> while the
// registry only ever stores primitive registrations. The Go representations
// are []interface{} for lists and sets and map[interface{}]interface{} for
// maps; elements are typed by the element codec.
//
// Wire layout: a 4-byte big-endian element count, then per element a 4-byte
// big-endian byte length (-1 for a null element) followed by the element
// bytes.

type listCodec struct {
	dt   DataType // list<E> or set<E>
	elem Codec
}

func (c listCodec) DataType() DataType { return c.dt }

func (c listCodec) TargetType() TargetType {
	return TargetSliceOf(c.elem.TargetType())
}

func (c listCodec) Accepts(value interface{}) bool {
	v, ok := value.([]interface{})
	if !ok {
		return false
	}
	for _, e := range v {
		if e != nil && !c.elem.Accepts(e) {
			return false
		}
	}
	return true
}

func (c listCodec) Encode(value interface{}, version ProtocolVersion) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	v, ok := value.([]interface{})
	if !ok {
		return nil, encodeErrorf("%s: cannot encode %T", c.dt, value)
	}
	buf := encInt(int32(len(v)))
	for i, e := range v {
		var err error
		buf, err = appendElement(buf, c.elem, e, version)
		if err != nil {
			return nil, encodeErrorf("%s: element %d: %v", c.dt, i, err)
		}
	}
	return buf, nil
}

func (c listCodec) Decode(data []byte, version ProtocolVersion) (interface{}, error) {
	if data == nil {
		return nil, nil
	}
	n, rest, err := readCount(c.dt, data)
	if err != nil {
		return nil, err
	}
	out := make([]interface{}, 0, n)
	for i := 0; i < n; i++ {
		var raw []byte
		raw, rest, err = readElement(c.dt, rest)
		if err != nil {
			return nil, err
		}
		e, err := c.elem.Decode(raw, version)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if len(rest) != 0 {
		return nil, decodeErrorf("%s: %d trailing bytes", c.dt, len(rest))
	}
	return out, nil
}

func (c listCodec) Format(value interface{}) (string, error) {
	if value == nil {
		return nullLiteral, nil
	}
	v, ok := value.([]interface{})
	if !ok {
		return "", encodeErrorf("%s: cannot format %T", c.dt, value)
	}
	lb, rb := "[", "]"
	if c.dt.code == TypeSet {
		lb, rb = "{", "}"
	}
	parts := make([]string, len(v))
	for i, e := range v {
		s, err := c.elem.Format(e)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return lb + strings.Join(parts, ", ") + rb, nil
}

func (c listCodec) Parse(literal string) (interface{}, error) {
	if isNullLiteral(literal) {
		return nil, nil
	}
	s := strings.TrimSpace(literal)
	lb, rb := byte('['), byte(']')
	if c.dt.code == TypeSet {
		lb, rb = '{', '}'
	}
	if len(s) < 2 || s[0] != lb || s[len(s)-1] != rb {
		return nil, parseErrorf("cannot parse %q as %s", literal, c.dt)
	}
	parts, err := splitTopLevel(s[1 : len(s)-1])
	if err != nil {
		return nil, parseErrorf("cannot parse %q as %s", literal, c.dt)
	}
	out := make([]interface{}, 0, len(parts))
	for _, p := range parts {
		e, err := c.elem.Parse(p)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

type mapCodec struct {
	dt  DataType // map<K, V>
	key Codec
	val Codec
}

func (c mapCodec) DataType() DataType { return c.dt }

func (c mapCodec) TargetType() TargetType {
	return TargetMapOf(c.key.TargetType(), c.val.TargetType())
}

func (c mapCodec) Accepts(value interface{}) bool {
	v, ok := value.(map[interface{}]interface{})
	if !ok {
		return false
	}
	for k, e := range v {
		if !c.key.Accepts(k) {
			return false
		}
		if e != nil && !c.val.Accepts(e) {
			return false
		}
	}
	return true
}

func (c mapCodec) Encode(value interface{}, version ProtocolVersion) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	v, ok := value.(map[interface{}]interface{})
	if !ok {
		return nil, encodeErrorf("%s: cannot encode %T", c.dt, value)
	}
	buf := encInt(int32(len(v)))
	for k, e := range v {
		if k == nil {
			return nil, encodeErrorf("%s: nil key", c.dt)
		}
		var err error
		buf, err = appendElement(buf, c.key, k, version)
		if err != nil {
			return nil, encodeErrorf("%s: key %v: %v", c.dt, k, err)
		}
		buf, err = appendElement(buf, c.val, e, version)
		if err != nil {
			return nil, encodeErrorf("%s: value for key %v: %v", c.dt, k, err)
		}
	}
	return buf, nil
}

func (c mapCodec) Decode(data []byte, version ProtocolVersion) (interface{}, error) {
	if data == nil {
		return nil, nil
	}
	n, rest, err := readCount(c.dt, data)
	if err != nil {
		return nil, err
	}
	out := make(map[interface{}]interface{}, n)
	for i := 0; i < n; i++ {
		var rawKey, rawVal []byte
		rawKey, rest, err = readElement(c.dt, rest)
		if err != nil {
			return nil, err
		}
		rawVal, rest, err = readElement(c.dt, rest)
		if err != nil {
			return nil, err
		}
		k, err := c.key.Decode(rawKey, version)
		if err != nil {
			return nil, err
		}
		if !comparableKey(k) {
			return nil, decodeErrorf("%s: key type %T is not usable as a Go map key", c.dt, k)
		}
		e, err := c.val.Decode(rawVal, version)
		if err != nil {
			return nil, err
		}
		out[k] = e
	}
	if len(rest) != 0 {
		return nil, decodeErrorf("%s: %d trailing bytes", c.dt, len(rest))
	}
	return out, nil
}

func (c mapCodec) Format(value interface{}) (string, error) {
	if value == nil {
		return nullLiteral, nil
	}
	v, ok := value.(map[interface{}]interface{})
	if !ok {
		return "", encodeErrorf("%s: cannot format %T", c.dt, value)
	}
	parts := make([]string, 0, len(v))
	for k, e := range v {
		ks, err := c.key.Format(k)
		if err != nil {
			return "", err
		}
		vs, err := c.val.Format(e)
		if err != nil {
			return "", err
		}
		parts = append(parts, ks+": "+vs)
	}
	return "{" + strings.Join(parts, ", ") + "}", nil
}

func (c mapCodec) Parse(literal string) (interface{}, error) {
	if isNullLiteral(literal) {
		return nil, nil
	}
	s := strings.TrimSpace(literal)
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return nil, parseErrorf("cannot parse %q as %s", literal, c.dt)
	}
	parts, err := splitTopLevel(s[1 : len(s)-1])
	if err != nil {
		return nil, parseErrorf("cannot parse %q as %s", literal, c.dt)
	}
	out := make(map[interface{}]interface{}, len(parts))
	for _, p := range parts {
		kv, err := splitPair(p)
		if err != nil {
			return nil, parseErrorf("cannot parse %q as %s", literal, c.dt)
		}
		k, err := c.key.Parse(kv[0])
		if err != nil {
			return nil, err
		}
		if !comparableKey(k) {
			return nil, parseErrorf("cannot parse %q as %s: unusable key", literal, c.dt)
		}
		e, err := c.val.Parse(kv[1])
		if err != nil {
			return nil, err
		}
		out[k] = e
	}
	return out, nil
}

func appendElement(buf []byte, codec Codec, value interface{}, version ProtocolVersion) ([]byte, error) {
	if value == nil {
		return append(buf, encInt(-1)...), nil
	}
	b, err := codec.Encode(value, version)
	if err != nil {
		return nil, err
	}
	buf = append(buf, encInt(int32(len(b)))...)
	return append(buf, b...), nil
}

func readCount(dt DataType, data []byte) (int, []byte, error) {
	if len(data) < 4 {
		return 0, nil, decodeErrorf("%s: truncated element count", dt)
	}
	n := int(int32(binary.BigEndian.Uint32(data)))
	if n < 0 {
		return 0, nil, decodeErrorf("%s: negative element count %d", dt, n)
	}
	return n, data[4:], nil
}

func readElement(dt DataType, data []byte) (elem, rest []byte, err error) {
	if len(data) < 4 {
		return nil, nil, decodeErrorf("%s: truncated element length", dt)
	}
	n := int(int32(binary.BigEndian.Uint32(data)))
	data = data[4:]
	if n < 0 {
		return nil, data, nil // null element
	}
	if len(data) < n {
		return nil, nil, decodeErrorf("%s: element needs %d bytes, %d left", dt, n, len(data))
	}
	return data[:n], data[n:], nil
}

// comparableKey reports whether a decoded value can be used as a Go map
// key. Blob and collection keys cannot.
func comparableKey(k interface{}) bool {
	switch k.(type) {
	case nil, []byte, []interface{}, map[interface{}]interface{}:
		return false
	}
	return true
}

// splitTopLevel splits a comma-separated literal body, ignoring commas
// inside quotes and nested brackets. Whitespace-only input yields no parts.
func splitTopLevel(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var parts []string
	depth := 0
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case inQuote:
			if ch == '\'' {
				if i+1 < len(s) && s[i+1] == '\'' {
					i++ // escaped quote
				} else {
					inQuote = false
				}
			}
		case ch == '\'':
			inQuote = true
		case ch == '[' || ch == '{' || ch == '(':
			depth++
		case ch == ']' || ch == '}' || ch == ')':
			depth--
			if depth < 0 {
				return nil, parseErrorf("unbalanced brackets in %q", s)
			}
		case ch == ',' && depth == 0:
			parts = append(parts, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	if inQuote || depth != 0 {
		return nil, parseErrorf("unbalanced literal %q", s)
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts, nil
}

// splitPair splits one "key: value" map entry at the first top-level colon.
func splitPair(s string) ([2]string, error) {
	depth := 0
	inQuote := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case inQuote:
			if ch == '\'' {
				if i+1 < len(s) && s[i+1] == '\'' {
					i++
				} else {
					inQuote = false
				}
			}
		case ch == '\'':
			inQuote = true
		case ch == '[' || ch == '{' || ch == '(':
			depth++
		case ch == ']' || ch == '}' || ch == ')':
			depth--
		case ch == ':' && depth == 0:
			return [2]string{strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:])}, nil
		}
	}
	return [2]string{}, parseErrorf("missing colon in map entry %q", s)
}
