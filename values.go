package cqldb

import (
	"math/big"
	"net"
	"time"

	"github.com/golang-sql/civil"
	"github.com/google/uuid"
	"gopkg.in/inf.v0"
)

// unsetValue is the type of Unset.
type unsetValue struct{}

// Unset marks a bound-value slot as deliberately not supplied. Unlike nil,
// which sends an explicit NULL, an unset slot tells the server to leave the
// column untouched. Requires protocol v4 or later.
var Unset unsetValue

// slotState is the three-state optionality of one value slot: never
// written, explicitly NULL, or holding encoded bytes.
type slotState uint8

const (
	slotUnset slotState = iota
	slotNull
	slotValue
)

// rawValue is one slot of a value container.
type rawValue struct {
	state slotState
	data  []byte
}

// valueSet is an ordered sequence of raw byte slots plus the schema needed
// to type them. The slot count is fixed at construction and equals the
// declared variable count. valueSet itself is unexported and mutable; the
// statement types wrap it behind copy-on-write accessors.
type valueSet struct {
	defs     ColumnDefinitions
	slots    []rawValue
	registry *CodecRegistry
	version  ProtocolVersion
}

func newValueSet(defs ColumnDefinitions, registry *CodecRegistry, version ProtocolVersion) *valueSet {
	return &valueSet{
		defs:     defs,
		slots:    make([]rawValue, len(defs)),
		registry: registry,
		version:  version,
	}
}

func (vs *valueSet) checkIndex(i int) error {
	if i < 0 || i >= len(vs.slots) {
		return &IndexOutOfRangeError{Index: i, Len: len(vs.slots)}
	}
	return nil
}

func (vs *valueSet) indexOf(name string) (int, error) {
	i, ok := vs.defs.IndexOf(name)
	if !ok {
		return -1, &NameNotFoundError{Name: name}
	}
	return i, nil
}

func (vs *valueSet) isNull(i int) (bool, error) {
	if err := vs.checkIndex(i); err != nil {
		return false, err
	}
	return vs.slots[i].state == slotNull, nil
}

func (vs *valueSet) isSet(i int) (bool, error) {
	if err := vs.checkIndex(i); err != nil {
		return false, err
	}
	return vs.slots[i].state != slotUnset, nil
}

// bytesUnsafe returns the retained byte slice without copying; nil for NULL
// and unset slots. Mutating the returned slice has undefined effects on
// later reads.
func (vs *valueSet) bytesUnsafe(i int) ([]byte, error) {
	if err := vs.checkIndex(i); err != nil {
		return nil, err
	}
	if vs.slots[i].state != slotValue {
		return nil, nil
	}
	return vs.slots[i].data, nil
}

// get decodes slot i into the requested target representation.
func (vs *valueSet) get(i int, target TargetType) (interface{}, error) {
	if err := vs.checkIndex(i); err != nil {
		return nil, err
	}
	codec, err := vs.registry.Resolve(vs.defs[i].Type, target)
	if err != nil {
		return nil, err
	}
	return vs.decode(i, codec)
}

// getDefault decodes slot i into the wire type's default representation.
func (vs *valueSet) getDefault(i int) (interface{}, error) {
	if err := vs.checkIndex(i); err != nil {
		return nil, err
	}
	codec, err := vs.registry.ResolveType(vs.defs[i].Type)
	if err != nil {
		return nil, err
	}
	return vs.decode(i, codec)
}

func (vs *valueSet) decode(i int, codec Codec) (interface{}, error) {
	if vs.slots[i].state != slotValue {
		return nil, nil
	}
	return codec.Decode(vs.slots[i].data, vs.version)
}

// set encodes a value into slot i, resolving the codec from the value's
// runtime type. nil writes an explicit NULL, Unset clears the slot.
func (vs *valueSet) set(i int, value interface{}) error {
	if err := vs.checkIndex(i); err != nil {
		return err
	}
	rv, err := encodeValue(vs.defs[i].Type, value, vs.registry, vs.version)
	if err != nil {
		return err
	}
	vs.slots[i] = rv
	return nil
}

// setBytesUnsafe stores the slice as slot i's payload without copying. A
// nil slice stores an explicit NULL.
func (vs *valueSet) setBytesUnsafe(i int, data []byte) error {
	if err := vs.checkIndex(i); err != nil {
		return err
	}
	if data == nil {
		vs.slots[i] = rawValue{state: slotNull}
	} else {
		vs.slots[i] = rawValue{state: slotValue, data: data}
	}
	return nil
}

// clone copies the slot array so copy-on-write wrappers can diverge. Schema,
// registry and payload slices stay shared.
func (vs *valueSet) clone() *valueSet {
	out := *vs
	out.slots = make([]rawValue, len(vs.slots))
	copy(out.slots, vs.slots)
	return &out
}

// encodeValue turns one caller value into a slot, resolving a codec by the
// value's runtime type.
func encodeValue(dt DataType, value interface{}, registry *CodecRegistry, version ProtocolVersion) (rawValue, error) {
	switch value.(type) {
	case nil:
		return rawValue{state: slotNull}, nil
	case unsetValue:
		if !version.SupportsUnset() {
			return rawValue{}, encodeErrorf("unset values require protocol v4, have %s", version)
		}
		return rawValue{state: slotUnset}, nil
	}
	codec, err := registry.ResolveValue(dt, value)
	if err != nil {
		return rawValue{}, err
	}
	data, err := codec.Encode(value, version)
	if err != nil {
		return rawValue{}, err
	}
	if data == nil {
		return rawValue{state: slotNull}, nil
	}
	return rawValue{state: slotValue, data: data}, nil
}

// Typed decoding helpers shared by the statement getters. Primitive
// accessors return the type's zero value for NULL slots; callers that must
// tell NULL from a genuine zero check IsNull first.

func (vs *valueSet) getBool(i int) (bool, error) {
	v, err := vs.get(i, TargetBool)
	if err != nil || v == nil {
		return false, err
	}
	return v.(bool), nil
}

func (vs *valueSet) getInt8(i int) (int8, error) {
	v, err := vs.get(i, TargetInt8)
	if err != nil || v == nil {
		return 0, err
	}
	return v.(int8), nil
}

func (vs *valueSet) getInt16(i int) (int16, error) {
	v, err := vs.get(i, TargetInt16)
	if err != nil || v == nil {
		return 0, err
	}
	return v.(int16), nil
}

func (vs *valueSet) getInt32(i int) (int32, error) {
	v, err := vs.get(i, TargetInt32)
	if err != nil || v == nil {
		return 0, err
	}
	return v.(int32), nil
}

func (vs *valueSet) getInt64(i int) (int64, error) {
	v, err := vs.get(i, TargetInt64)
	if err != nil || v == nil {
		return 0, err
	}
	return v.(int64), nil
}

func (vs *valueSet) getFloat32(i int) (float32, error) {
	v, err := vs.get(i, TargetFloat32)
	if err != nil || v == nil {
		return 0, err
	}
	return v.(float32), nil
}

func (vs *valueSet) getFloat64(i int) (float64, error) {
	v, err := vs.get(i, TargetFloat64)
	if err != nil || v == nil {
		return 0, err
	}
	return v.(float64), nil
}

func (vs *valueSet) getString(i int) (string, error) {
	v, err := vs.get(i, TargetString)
	if err != nil || v == nil {
		return "", err
	}
	return v.(string), nil
}

func (vs *valueSet) getBytes(i int) ([]byte, error) {
	v, err := vs.get(i, TargetBytes)
	if err != nil || v == nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (vs *valueSet) getTime(i int) (time.Time, error) {
	v, err := vs.get(i, TargetTime)
	if err != nil || v == nil {
		return time.Time{}, err
	}
	return v.(time.Time), nil
}

func (vs *valueSet) getDate(i int) (civil.Date, error) {
	v, err := vs.get(i, TargetDate)
	if err != nil || v == nil {
		return civil.Date{}, err
	}
	return v.(civil.Date), nil
}

func (vs *valueSet) getTimeOfDay(i int) (civil.Time, error) {
	v, err := vs.get(i, TargetTimeOfDay)
	if err != nil || v == nil {
		return civil.Time{}, err
	}
	return v.(civil.Time), nil
}

func (vs *valueSet) getUUID(i int) (uuid.UUID, error) {
	v, err := vs.get(i, TargetUUID)
	if err != nil || v == nil {
		return uuid.UUID{}, err
	}
	return v.(uuid.UUID), nil
}

func (vs *valueSet) getDecimal(i int) (*inf.Dec, error) {
	v, err := vs.get(i, TargetDecimal)
	if err != nil || v == nil {
		return nil, err
	}
	return v.(*inf.Dec), nil
}

func (vs *valueSet) getVarint(i int) (*big.Int, error) {
	v, err := vs.get(i, TargetBigInt)
	if err != nil || v == nil {
		return nil, err
	}
	return v.(*big.Int), nil
}

func (vs *valueSet) getInet(i int) (net.IP, error) {
	v, err := vs.get(i, TargetIP)
	if err != nil || v == nil {
		return nil, err
	}
	return v.(net.IP), nil
}
