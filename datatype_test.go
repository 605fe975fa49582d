package cqldb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataTypeString(t *testing.T) {
	assert.Equal(t, "int", PrimitiveType(TypeInt).String())
	assert.Equal(t, "list<text>", ListType(PrimitiveType(TypeText)).String())
	assert.Equal(t, "set<uuid>", SetType(PrimitiveType(TypeUUID)).String())
	assert.Equal(t, "map<text, bigint>",
		MapType(PrimitiveType(TypeText), PrimitiveType(TypeBigInt)).String())
	assert.Equal(t, "tuple<int, list<text>>",
		TupleType(PrimitiveType(TypeInt), ListType(PrimitiveType(TypeText))).String())
	assert.Equal(t, "ks.addr", UDTType("ks", "addr").String())
}

func TestDataTypeEqual(t *testing.T) {
	assert.True(t, PrimitiveType(TypeInt).Equal(PrimitiveType(TypeInt)))
	assert.False(t, PrimitiveType(TypeInt).Equal(PrimitiveType(TypeBigInt)))

	listText := ListType(PrimitiveType(TypeText))
	assert.True(t, listText.Equal(ListType(PrimitiveType(TypeText))))
	assert.False(t, listText.Equal(ListType(PrimitiveType(TypeInt))))
	assert.False(t, listText.Equal(SetType(PrimitiveType(TypeText))))

	m := MapType(PrimitiveType(TypeText), PrimitiveType(TypeInt))
	assert.True(t, m.Equal(MapType(PrimitiveType(TypeText), PrimitiveType(TypeInt))))
	assert.False(t, m.Equal(MapType(PrimitiveType(TypeInt), PrimitiveType(TypeInt))))

	u := UDTType("ks", "addr", UDTField{Name: "street", Type: PrimitiveType(TypeText)})
	assert.True(t, u.Equal(UDTType("ks", "addr", UDTField{Name: "street", Type: PrimitiveType(TypeText)})))
	assert.False(t, u.Equal(UDTType("ks", "addr", UDTField{Name: "city", Type: PrimitiveType(TypeText)})))
	assert.False(t, u.Equal(UDTType("other", "addr", UDTField{Name: "street", Type: PrimitiveType(TypeText)})))
}

func TestPrimitiveTypeRejectsStructuredCodes(t *testing.T) {
	for _, code := range []Type{TypeList, TypeSet, TypeMap, TypeTuple, TypeUDT} {
		assert.Panics(t, func() { PrimitiveType(code) }, "%s", code)
	}
}

func TestTargetTypeString(t *testing.T) {
	assert.Equal(t, "int32", TargetInt32.String())
	assert.Equal(t, "[]string", TargetSliceOf(TargetString).String())
	assert.Equal(t, "map[string][]int64",
		TargetMapOf(TargetString, TargetSliceOf(TargetInt64)).String())
}

func TestTargetTypeEqual(t *testing.T) {
	assert.True(t, TargetSliceOf(TargetInt32).Equal(TargetSliceOf(TargetInt32)))
	assert.False(t, TargetSliceOf(TargetInt32).Equal(TargetSliceOf(TargetInt64)))
	assert.False(t, TargetInt32.Equal(TargetSliceOf(TargetInt32)))
	assert.True(t, TargetMapOf(TargetString, TargetBool).Equal(TargetMapOf(TargetString, TargetBool)))
	assert.False(t, TargetMapOf(TargetString, TargetBool).Equal(TargetMapOf(TargetBool, TargetBool)))
}

func TestProtocolVersion(t *testing.T) {
	assert.False(t, ProtocolV3.SupportsUnset())
	assert.True(t, ProtocolV4.SupportsUnset())
	assert.True(t, ProtocolV5.SupportsUnset())
	assert.Equal(t, "protocol v4", ProtocolV4.String())
}
