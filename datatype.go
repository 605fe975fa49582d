package cqldb

import (
	"fmt"
	"strings"
)

// Type is the wire-level type id from the native protocol option codes.
type Type int

const (
	TypeCustom    Type = 0x0000
	TypeAscii     Type = 0x0001
	TypeBigInt    Type = 0x0002
	TypeBlob      Type = 0x0003
	TypeBoolean   Type = 0x0004
	TypeCounter   Type = 0x0005
	TypeDecimal   Type = 0x0006
	TypeDouble    Type = 0x0007
	TypeFloat     Type = 0x0008
	TypeInt       Type = 0x0009
	TypeText      Type = 0x000A
	TypeTimestamp Type = 0x000B
	TypeUUID      Type = 0x000C
	TypeVarchar   Type = 0x000D
	TypeVarint    Type = 0x000E
	TypeTimeUUID  Type = 0x000F
	TypeInet      Type = 0x0010
	TypeDate      Type = 0x0011
	TypeTime      Type = 0x0012
	TypeSmallInt  Type = 0x0013
	TypeTinyInt   Type = 0x0014
	TypeList      Type = 0x0020
	TypeMap       Type = 0x0021
	TypeSet       Type = 0x0022
	TypeUDT       Type = 0x0030
	TypeTuple     Type = 0x0031
)

// UDTField is one named field of a user-defined type.
type UDTField struct {
	Name string
	Type DataType
}

// DataType describes a protocol-level type independently of any Go
// representation. Values are immutable and compared structurally.
type DataType struct {
	code       Type
	elem       *DataType // list and set element, map value
	key        *DataType // map key
	tupleElems []DataType
	keyspace   string // UDT only
	name       string // UDT only
	fields     []UDTField
}

// PrimitiveType returns the DataType for a primitive option code. Passing a
// structured code (list, set, map, tuple, UDT) is a programming error.
func PrimitiveType(code Type) DataType {
	switch code {
	case TypeList, TypeSet, TypeMap, TypeTuple, TypeUDT:
		panic(fmt.Sprintf("cqldb: %v is not a primitive type", code))
	}
	return DataType{code: code}
}

// ListType returns the DataType list<elem>.
func ListType(elem DataType) DataType {
	return DataType{code: TypeList, elem: &elem}
}

// SetType returns the DataType set<elem>.
func SetType(elem DataType) DataType {
	return DataType{code: TypeSet, elem: &elem}
}

// MapType returns the DataType map<key, value>.
func MapType(key, value DataType) DataType {
	return DataType{code: TypeMap, key: &key, elem: &value}
}

// TupleType returns the DataType tuple<elems...>.
func TupleType(elems ...DataType) DataType {
	return DataType{code: TypeTuple, tupleElems: elems}
}

// UDTType returns the DataType of the user-defined type keyspace.name with
// the given fields, in declared order.
func UDTType(keyspace, name string, fields ...UDTField) DataType {
	return DataType{code: TypeUDT, keyspace: keyspace, name: name, fields: fields}
}

// Code returns the protocol option code.
func (t DataType) Code() Type {
	return t.code
}

// Elem returns the element type of a list or set, or the value type of a
// map. The second return is false for other types.
func (t DataType) Elem() (DataType, bool) {
	if t.elem == nil {
		return DataType{}, false
	}
	return *t.elem, true
}

// Key returns the key type of a map.
func (t DataType) Key() (DataType, bool) {
	if t.key == nil {
		return DataType{}, false
	}
	return *t.key, true
}

// TupleElems returns the element types of a tuple, in order.
func (t DataType) TupleElems() []DataType {
	return t.tupleElems
}

// UDTName returns the keyspace and name of a user-defined type.
func (t DataType) UDTName() (keyspace, name string) {
	return t.keyspace, t.name
}

// UDTFields returns the fields of a user-defined type, in declared order.
func (t DataType) UDTFields() []UDTField {
	return t.fields
}

// Equal reports structural equality.
func (t DataType) Equal(o DataType) bool {
	if t.code != o.code {
		return false
	}
	switch t.code {
	case TypeList, TypeSet:
		return t.elem.Equal(*o.elem)
	case TypeMap:
		return t.key.Equal(*o.key) && t.elem.Equal(*o.elem)
	case TypeTuple:
		if len(t.tupleElems) != len(o.tupleElems) {
			return false
		}
		for i := range t.tupleElems {
			if !t.tupleElems[i].Equal(o.tupleElems[i]) {
				return false
			}
		}
		return true
	case TypeUDT:
		if t.keyspace != o.keyspace || t.name != o.name || len(t.fields) != len(o.fields) {
			return false
		}
		for i := range t.fields {
			if t.fields[i].Name != o.fields[i].Name || !t.fields[i].Type.Equal(o.fields[i].Type) {
				return false
			}
		}
		return true
	}
	return true
}

// String renders the type with CQL syntax, e.g. "map<text, bigint>".
func (t DataType) String() string {
	switch t.code {
	case TypeList:
		return "list<" + t.elem.String() + ">"
	case TypeSet:
		return "set<" + t.elem.String() + ">"
	case TypeMap:
		return "map<" + t.key.String() + ", " + t.elem.String() + ">"
	case TypeTuple:
		names := make([]string, len(t.tupleElems))
		for i, e := range t.tupleElems {
			names[i] = e.String()
		}
		return "tuple<" + strings.Join(names, ", ") + ">"
	case TypeUDT:
		if t.keyspace == "" {
			return t.name
		}
		return t.keyspace + "." + t.name
	}
	return t.code.String()
}

func (c Type) String() string {
	switch c {
	case TypeCustom:
		return "custom"
	case TypeAscii:
		return "ascii"
	case TypeBigInt:
		return "bigint"
	case TypeBlob:
		return "blob"
	case TypeBoolean:
		return "boolean"
	case TypeCounter:
		return "counter"
	case TypeDecimal:
		return "decimal"
	case TypeDouble:
		return "double"
	case TypeFloat:
		return "float"
	case TypeInt:
		return "int"
	case TypeText:
		return "text"
	case TypeTimestamp:
		return "timestamp"
	case TypeUUID:
		return "uuid"
	case TypeVarchar:
		return "varchar"
	case TypeVarint:
		return "varint"
	case TypeTimeUUID:
		return "timeuuid"
	case TypeInet:
		return "inet"
	case TypeDate:
		return "date"
	case TypeTime:
		return "time"
	case TypeSmallInt:
		return "smallint"
	case TypeTinyInt:
		return "tinyint"
	case TypeList:
		return "list"
	case TypeMap:
		return "map"
	case TypeSet:
		return "set"
	case TypeUDT:
		return "udt"
	case TypeTuple:
		return "tuple"
	}
	return fmt.Sprintf("unknown(0x%04x)", int(c))
}
