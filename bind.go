package cqldb

import "encoding/binary"

// encodeBoundValues walks the declared variable schema in order, resolves a
// codec per variable from its wire type and the caller value's runtime
// type, and encodes each value into a slot. The value count must match the
// variable count exactly.
func encodeBoundValues(defs ColumnDefinitions, registry *CodecRegistry, version ProtocolVersion, values []interface{}) (*valueSet, error) {
	if len(values) != len(defs) {
		return nil, &ArgumentCountError{Expected: len(defs), Actual: len(values)}
	}
	vs := newValueSet(defs, registry, version)
	for i, v := range values {
		rv, err := encodeValue(defs[i].Type, v, registry, version)
		if err != nil {
			if cnf, ok := err.(*CodecNotFoundError); ok {
				cnf.Index = i
			}
			return nil, err
		}
		vs.slots[i] = rv
	}
	return vs, nil
}

// routingKey derives the routing key from the slots at the partition-key
// indices. A single-component key is the component's raw bytes; a composite
// key frames each component with a 2-byte big-endian length and a 0x00
// terminator, concatenated in partition-key order. If any component lacks
// encoded bytes (null, unset, or out of range) no key is derived and
// routing falls back to other signals.
func routingKey(slots []rawValue, pkIndices []int) []byte {
	if len(pkIndices) == 0 {
		return nil
	}
	for _, i := range pkIndices {
		if i < 0 || i >= len(slots) || slots[i].state != slotValue {
			return nil
		}
	}
	if len(pkIndices) == 1 {
		data := slots[pkIndices[0]].data
		key := make([]byte, len(data))
		copy(key, data)
		return key
	}
	size := 0
	for _, i := range pkIndices {
		size += 2 + len(slots[i].data) + 1
	}
	key := make([]byte, 0, size)
	for _, i := range pkIndices {
		data := slots[i].data
		var length [2]byte
		binary.BigEndian.PutUint16(length[:], uint16(len(data)))
		key = append(key, length[:]...)
		key = append(key, data...)
		key = append(key, 0)
	}
	return key
}

// AppendValues serializes the bound values with the protocol's value
// framing, ready to splice into an EXECUTE body: a 2-byte big-endian slot
// count, then per slot a 4-byte big-endian byte length, or -1 for NULL, or
// -2 for unset. Unset slots require protocol v4.
func (bs *BoundStatement) AppendValues(dst []byte) ([]byte, error) {
	var count [2]byte
	binary.BigEndian.PutUint16(count[:], uint16(len(bs.values.slots)))
	dst = append(dst, count[:]...)
	for i, slot := range bs.values.slots {
		switch slot.state {
		case slotNull:
			dst = append(dst, encInt(-1)...)
		case slotUnset:
			if !bs.values.version.SupportsUnset() {
				return nil, encodeErrorf("variable %d is unset, which requires protocol v4, have %s", i, bs.values.version)
			}
			dst = append(dst, encInt(-2)...)
		default:
			dst = append(dst, encInt(int32(len(slot.data)))...)
			dst = append(dst, slot.data...)
		}
	}
	return dst, nil
}
