package cqldb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listOfInt() listCodec {
	return listCodec{dt: ListType(PrimitiveType(TypeInt)), elem: intCodec{}}
}

func setOfText() listCodec {
	return listCodec{dt: SetType(PrimitiveType(TypeText)), elem: stringCodec{code: TypeText}}
}

func mapTextToInt() mapCodec {
	return mapCodec{
		dt:  MapType(PrimitiveType(TypeText), PrimitiveType(TypeInt)),
		key: stringCodec{code: TypeText},
		val: intCodec{},
	}
}

func TestListEncode(t *testing.T) {
	c := listOfInt()

	b, err := c.Encode([]interface{}{int32(1), int32(2)}, ProtocolV4)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0, 0, 0, 2, // count
		0, 0, 0, 4, 0, 0, 0, 1,
		0, 0, 0, 4, 0, 0, 0, 2,
	}, b)

	// null elements carry length -1
	b, err = c.Encode([]interface{}{nil}, ProtocolV4)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0, 0, 0, 1,
		0xff, 0xff, 0xff, 0xff,
	}, b)

	b, err = c.Encode([]interface{}{}, ProtocolV4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0}, b)

	_, err = c.Encode([]interface{}{"x"}, ProtocolV4)
	var encErr EncodeError
	require.ErrorAs(t, err, &encErr)
}

func TestListDecode(t *testing.T) {
	c := listOfInt()

	v, err := c.Decode([]byte{
		0, 0, 0, 2,
		0, 0, 0, 4, 0, 0, 0, 1,
		0xff, 0xff, 0xff, 0xff,
	}, ProtocolV4)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int32(1), nil}, v)

	var decErr DecodeError
	_, err = c.Decode([]byte{0, 0}, ProtocolV4)
	require.ErrorAs(t, err, &decErr)
	_, err = c.Decode([]byte{0xff, 0xff, 0xff, 0xff}, ProtocolV4)
	require.ErrorAs(t, err, &decErr)
	_, err = c.Decode([]byte{0, 0, 0, 1, 0, 0, 0, 4, 0, 0}, ProtocolV4)
	require.ErrorAs(t, err, &decErr)
	// bytes after the last element are an error, not ignored
	_, err = c.Decode([]byte{0, 0, 0, 0, 9}, ProtocolV4)
	require.ErrorAs(t, err, &decErr)
}

func TestListRoundTrip(t *testing.T) {
	c := setOfText()
	in := []interface{}{"a", "it's", ""}

	for _, version := range testVersions {
		b, err := c.Encode(in, version)
		require.NoError(t, err)
		out, err := c.Decode(b, version)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	}
}

func TestListLiterals(t *testing.T) {
	c := listOfInt()

	s, err := c.Format([]interface{}{int32(1), nil, int32(3)})
	require.NoError(t, err)
	assert.Equal(t, "[1, NULL, 3]", s)

	v, err := c.Parse("[1, NULL, 3]")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int32(1), nil, int32(3)}, v)

	v, err = c.Parse("[]")
	require.NoError(t, err)
	assert.Empty(t, v)

	// sets use braces
	s, err = setOfText().Format([]interface{}{"a, b", "c"})
	require.NoError(t, err)
	assert.Equal(t, "{'a, b', 'c'}", s)
	v, err = setOfText().Parse(s)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"a, b", "c"}, v)

	var parseErr ParseError
	_, err = c.Parse("{1}")
	require.ErrorAs(t, err, &parseErr)
	_, err = c.Parse("[1, [2]")
	require.ErrorAs(t, err, &parseErr)
}

func TestMapEncodeDecode(t *testing.T) {
	c := mapTextToInt()

	b, err := c.Encode(map[interface{}]interface{}{"ab": int32(7)}, ProtocolV4)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0, 0, 0, 1,
		0, 0, 0, 2, 'a', 'b',
		0, 0, 0, 4, 0, 0, 0, 7,
	}, b)

	in := map[interface{}]interface{}{"a": int32(1), "b": nil, "c": int32(3)}
	b, err = c.Encode(in, ProtocolV4)
	require.NoError(t, err)
	out, err := c.Decode(b, ProtocolV4)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	var decErr DecodeError
	_, err = c.Decode([]byte{0, 0, 0, 1, 0, 0, 0, 1, 'a'}, ProtocolV4)
	require.ErrorAs(t, err, &decErr)
}

func TestMapRejectsNilKey(t *testing.T) {
	c := mapTextToInt()
	in := map[interface{}]interface{}{nil: int32(1)}

	// a nil key never reaches the wire as a null element
	_, err := c.Encode(in, ProtocolV4)
	var encErr EncodeError
	require.ErrorAs(t, err, &encErr)
	assert.False(t, c.Accepts(in))
}

func TestMapRejectsUnusableKeys(t *testing.T) {
	c := mapCodec{
		dt:  MapType(PrimitiveType(TypeBlob), PrimitiveType(TypeInt)),
		key: blobCodec{},
		val: intCodec{},
	}
	_, err := c.Decode([]byte{
		0, 0, 0, 1,
		0, 0, 0, 1, 0xca,
		0, 0, 0, 4, 0, 0, 0, 1,
	}, ProtocolV4)
	var decErr DecodeError
	require.ErrorAs(t, err, &decErr)

	_, err = c.Parse("{0xca: 1}")
	var parseErr ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestMapLiterals(t *testing.T) {
	c := mapTextToInt()

	s, err := c.Format(map[interface{}]interface{}{"k:1": int32(1)})
	require.NoError(t, err)
	assert.Equal(t, "{'k:1': 1}", s)

	v, err := c.Parse("{'a': 1, 'b': NULL}")
	require.NoError(t, err)
	assert.Equal(t, map[interface{}]interface{}{"a": int32(1), "b": nil}, v)

	v, err = c.Parse("{}")
	require.NoError(t, err)
	assert.Empty(t, v)

	var parseErr ParseError
	_, err = c.Parse("{'a' 1}")
	require.ErrorAs(t, err, &parseErr)
	_, err = c.Parse("['a': 1]")
	require.ErrorAs(t, err, &parseErr)
}

func TestNestedCollectionLiterals(t *testing.T) {
	inner := listOfInt()
	c := listCodec{dt: ListType(inner.dt), elem: inner}

	s, err := c.Format([]interface{}{
		[]interface{}{int32(1), int32(2)},
		[]interface{}{},
	})
	require.NoError(t, err)
	assert.Equal(t, "[[1, 2], []]", s)

	v, err := c.Parse(s)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{
		[]interface{}{int32(1), int32(2)},
		[]interface{}{},
	}, v)
}

func TestCollectionNilPassThrough(t *testing.T) {
	for _, c := range []Codec{listOfInt(), setOfText(), mapTextToInt()} {
		b, err := c.Encode(nil, ProtocolV4)
		require.NoError(t, err)
		assert.Nil(t, b)

		v, err := c.Decode(nil, ProtocolV4)
		require.NoError(t, err)
		assert.Nil(t, v)

		s, err := c.Format(nil)
		require.NoError(t, err)
		assert.Equal(t, "NULL", s)

		v, err = c.Parse("null")
		require.NoError(t, err)
		assert.Nil(t, v)
	}
}
