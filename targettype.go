package cqldb

import (
	"fmt"
	"math/big"
	"net"
	"time"

	"github.com/golang-sql/civil"
	"github.com/google/uuid"
	"gopkg.in/inf.v0"
)

// TargetKind enumerates the Go-side representations codecs can produce and
// consume. The set is closed: codec matching is driven by these tags rather
// than by reflection.
type TargetKind int

const (
	KindBool TargetKind = iota + 1
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindString
	KindBytes
	KindTime      // time.Time
	KindDate      // civil.Date
	KindTimeOfDay // civil.Time
	KindUUID      // uuid.UUID
	KindDecimal   // *inf.Dec
	KindBigInt    // *big.Int
	KindIP        // net.IP
	KindSlice     // []interface{}, element kind in Elem
	KindMapOf     // map[interface{}]interface{}, key/value kinds in Key/Elem
)

// TargetType is a reified description of a codec's Go-side type. Generic
// containers carry their element descriptors so that, say, a set<text> and a
// set<int> codec stay distinguishable. Compared structurally.
type TargetType struct {
	Kind TargetKind
	Key  *TargetType
	Elem *TargetType
}

var (
	TargetBool      = TargetType{Kind: KindBool}
	TargetInt8      = TargetType{Kind: KindInt8}
	TargetInt16     = TargetType{Kind: KindInt16}
	TargetInt32     = TargetType{Kind: KindInt32}
	TargetInt64     = TargetType{Kind: KindInt64}
	TargetFloat32   = TargetType{Kind: KindFloat32}
	TargetFloat64   = TargetType{Kind: KindFloat64}
	TargetString    = TargetType{Kind: KindString}
	TargetBytes     = TargetType{Kind: KindBytes}
	TargetTime      = TargetType{Kind: KindTime}
	TargetDate      = TargetType{Kind: KindDate}
	TargetTimeOfDay = TargetType{Kind: KindTimeOfDay}
	TargetUUID      = TargetType{Kind: KindUUID}
	TargetDecimal   = TargetType{Kind: KindDecimal}
	TargetBigInt    = TargetType{Kind: KindBigInt}
	TargetIP        = TargetType{Kind: KindIP}
)

// TargetSliceOf returns the descriptor of a slice with the given element
// representation.
func TargetSliceOf(elem TargetType) TargetType {
	return TargetType{Kind: KindSlice, Elem: &elem}
}

// TargetMapOf returns the descriptor of a map with the given key and value
// representations.
func TargetMapOf(key, value TargetType) TargetType {
	return TargetType{Kind: KindMapOf, Key: &key, Elem: &value}
}

// Equal reports structural equality.
func (t TargetType) Equal(o TargetType) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindSlice:
		return t.Elem.Equal(*o.Elem)
	case KindMapOf:
		return t.Key.Equal(*o.Key) && t.Elem.Equal(*o.Elem)
	}
	return true
}

func (t TargetType) String() string {
	switch t.Kind {
	case KindBool:
		return "bool"
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	case KindBytes:
		return "[]byte"
	case KindTime:
		return "time.Time"
	case KindDate:
		return "civil.Date"
	case KindTimeOfDay:
		return "civil.Time"
	case KindUUID:
		return "uuid.UUID"
	case KindDecimal:
		return "*inf.Dec"
	case KindBigInt:
		return "*big.Int"
	case KindIP:
		return "net.IP"
	case KindSlice:
		return "[]" + t.Elem.String()
	case KindMapOf:
		return "map[" + t.Key.String() + "]" + t.Elem.String()
	}
	return fmt.Sprintf("unknown(%d)", int(t.Kind))
}

// inferTarget maps a runtime value to its target descriptor. Plain int maps
// to int64; per-wire-type acceptance of int is handled by the codecs'
// Accepts during value-driven resolution.
func inferTarget(value interface{}) (TargetType, bool) {
	switch value.(type) {
	case bool:
		return TargetBool, true
	case int8:
		return TargetInt8, true
	case int16:
		return TargetInt16, true
	case int32:
		return TargetInt32, true
	case int64, int:
		return TargetInt64, true
	case float32:
		return TargetFloat32, true
	case float64:
		return TargetFloat64, true
	case string:
		return TargetString, true
	case []byte:
		return TargetBytes, true
	case time.Time:
		return TargetTime, true
	case civil.Date:
		return TargetDate, true
	case civil.Time:
		return TargetTimeOfDay, true
	case uuid.UUID:
		return TargetUUID, true
	case *inf.Dec, inf.Dec:
		return TargetDecimal, true
	case *big.Int:
		return TargetBigInt, true
	case net.IP:
		return TargetIP, true
	}
	return TargetType{}, false
}
