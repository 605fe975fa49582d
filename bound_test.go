package cqldb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindRoundTrip(t *testing.T) {
	ps := testPrepared(t, nil, ProtocolV4)

	bs, err := ps.Bind("u1", "Ann", int32(34))
	require.NoError(t, err)
	assert.Equal(t, 3, bs.Len())

	v, err := bs.GetString(0)
	require.NoError(t, err)
	assert.Equal(t, "u1", v)

	age, err := bs.GetInt32(2)
	require.NoError(t, err)
	assert.Equal(t, int32(34), age)

	// default representation follows the wire type
	anyAge, err := bs.GetValue(2)
	require.NoError(t, err)
	assert.Equal(t, int32(34), anyAge)

	byName, err := bs.GetByName("name")
	require.NoError(t, err)
	assert.Equal(t, "Ann", byName)
}

func TestBindArityMismatch(t *testing.T) {
	ps := testPrepared(t, nil, ProtocolV4)

	_, err := ps.Bind("u1")
	var arity *ArgumentCountError
	require.ErrorAs(t, err, &arity)
	assert.Equal(t, 3, arity.Expected)
	assert.Equal(t, 1, arity.Actual)

	_, err = ps.Bind("u1", "Ann", int32(1), "extra")
	require.ErrorAs(t, err, &arity)
	assert.Equal(t, 4, arity.Actual)
}

func TestBindCodecNotFoundNamesIndex(t *testing.T) {
	ps := testPrepared(t, nil, ProtocolV4)

	_, err := ps.Bind("u1", struct{}{}, int32(1))
	var notFound *CodecNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, 1, notFound.Index)
	assert.Contains(t, err.Error(), "variable 1")
}

func TestBoundNullAndUnset(t *testing.T) {
	ps := testPrepared(t, nil, ProtocolV4)

	bs, err := ps.Bind("u1", nil, Unset)
	require.NoError(t, err)

	null, err := bs.IsNull(1)
	require.NoError(t, err)
	assert.True(t, null)
	set, err := bs.IsSet(1)
	require.NoError(t, err)
	assert.True(t, set)

	null, err = bs.IsNull(2)
	require.NoError(t, err)
	assert.False(t, null)
	set, err = bs.IsSet(2)
	require.NoError(t, err)
	assert.False(t, set)

	// NULL decodes to the zero value through the primitive getters
	s, err := bs.GetString(1)
	require.NoError(t, err)
	assert.Equal(t, "", s)
	age, err := bs.GetInt32(2)
	require.NoError(t, err)
	assert.Equal(t, int32(0), age)

	_, err = bs.IsNull(3)
	var oob *IndexOutOfRangeError
	require.ErrorAs(t, err, &oob)
	assert.Equal(t, 3, oob.Index)
	assert.Equal(t, 3, oob.Len)

	_, err = bs.GetByName("nope")
	var noName *NameNotFoundError
	require.ErrorAs(t, err, &noName)
	assert.Equal(t, "nope", noName.Name)
}

func TestBoundUnsetRequiresV4(t *testing.T) {
	ps := testPrepared(t, nil, ProtocolV3)

	_, err := ps.Bind("u1", "Ann", Unset)
	var encErr EncodeError
	require.ErrorAs(t, err, &encErr)

	bs, err := ps.Bind("u1", "Ann", int32(1))
	require.NoError(t, err)
	_, err = bs.WithUnset(2)
	require.ErrorAs(t, err, &encErr)
}

func TestBoundBytesUnsafe(t *testing.T) {
	ps := testPrepared(t, nil, ProtocolV4)

	bs, err := ps.Bind("u1", "Ann", int32(34))
	require.NoError(t, err)

	// the retained slice itself, not a copy
	b, err := bs.BytesUnsafe(0)
	require.NoError(t, err)
	assert.Equal(t, []byte("u1"), b)
	b[0] = 'x'
	b2, err := bs.BytesUnsafe(0)
	require.NoError(t, err)
	assert.Equal(t, []byte("x1"), b2)

	// NULL and unset slots read back as nil
	bs, err = ps.Bind(nil, Unset, int32(1))
	require.NoError(t, err)
	b, err = bs.BytesUnsafe(0)
	require.NoError(t, err)
	assert.Nil(t, b)
	b, err = bs.BytesUnsafe(1)
	require.NoError(t, err)
	assert.Nil(t, b)

	// stored payloads are retained as-is too
	bs, err = bs.WithBytesUnsafe(2, []byte{0, 0, 0, 5})
	require.NoError(t, err)
	v, err := bs.GetInt32(2)
	require.NoError(t, err)
	assert.Equal(t, int32(5), v)
}

func TestBoundImmutability(t *testing.T) {
	ps := testPrepared(t, nil, ProtocolV4)

	base, err := ps.Bind("u1", "Ann", int32(34))
	require.NoError(t, err)

	derived, err := base.WithValue(1, "Bea")
	require.NoError(t, err)
	derived, err = derived.WithValueByName("age", int32(35))
	require.NoError(t, err)
	derived = derived.
		WithConsistency(LocalQuorum).
		WithSerialConsistency(Serial).
		WithTimeout(time.Second).
		WithPageSize(10).
		WithPagingState([]byte{1}).
		WithCustomPayload(map[string][]byte{"k": {2}}).
		WithIdempotent(true).
		WithTracing(true).
		WithTimestamp(99).
		WithRoutingKeyspace("rks").
		WithRoutingToken(Token(7))

	name, err := base.GetString(1)
	require.NoError(t, err)
	assert.Equal(t, "Ann", name)
	assert.Equal(t, Any, base.Options().Consistency)
	assert.Nil(t, base.Options().Idempotent)
	assert.Nil(t, base.Routing().Token)

	name, err = derived.GetString(1)
	require.NoError(t, err)
	assert.Equal(t, "Bea", name)
	age, err := derived.GetInt32(2)
	require.NoError(t, err)
	assert.Equal(t, int32(35), age)
	assert.Equal(t, LocalQuorum, derived.Options().Consistency)
	assert.Equal(t, time.Second, derived.Options().Timeout)
	assert.Equal(t, "rks", derived.Routing().Keyspace)
	require.NotNil(t, derived.Routing().Token)
	assert.Equal(t, Token(7), *derived.Routing().Token)

	// shared unchanged slots still read through both
	id, err := derived.GetString(0)
	require.NoError(t, err)
	assert.Equal(t, "u1", id)
}

func TestRoutingKeySingleComponent(t *testing.T) {
	ps := testPrepared(t, []int{0}, ProtocolV4)

	bs, err := ps.Bind("hello", "Ann", int32(1))
	require.NoError(t, err)
	// a single component is its raw bytes, unframed
	assert.Equal(t, []byte("hello"), bs.Routing().Key)
	assert.Equal(t, "ks", bs.Routing().Keyspace)

	// a NULL component means no derived key
	bs, err = ps.Bind(nil, "Ann", int32(1))
	require.NoError(t, err)
	assert.Nil(t, bs.Routing().Key)
}

func TestRoutingKeyComposite(t *testing.T) {
	ps := testPrepared(t, []int{1, 0}, ProtocolV4)

	bs, err := ps.Bind("hello", "abc", int32(1))
	require.NoError(t, err)
	// components are framed and concatenated in partition-key order
	assert.Equal(t, []byte{
		0, 3, 'a', 'b', 'c', 0,
		0, 5, 'h', 'e', 'l', 'l', 'o', 0,
	}, bs.Routing().Key)

	// an unset component means no derived key
	bs, err = ps.Bind("hello", Unset, int32(1))
	require.NoError(t, err)
	assert.Nil(t, bs.Routing().Key)
}

func TestRoutingKeyFollowsValues(t *testing.T) {
	ps := testPrepared(t, []int{0}, ProtocolV4)

	bs, err := ps.Bind("a", "Ann", int32(1))
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), bs.Routing().Key)

	changed, err := bs.WithValue(0, "b")
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), changed.Routing().Key)
	assert.Equal(t, []byte("a"), bs.Routing().Key)

	// an explicit key pins derivation off
	pinned := bs.WithRoutingKey([]byte{9})
	pinned, err = pinned.WithValue(0, "c")
	require.NoError(t, err)
	assert.Equal(t, []byte{9}, pinned.Routing().Key)
}

func TestBoundStatementBuilder(t *testing.T) {
	ps := testPrepared(t, []int{0}, ProtocolV4)

	b, err := ps.BoundStatementBuilder()
	require.NoError(t, err)
	bs, err := b.
		SetString(0, "u1").
		SetByName("name", "Ann").
		SetNull(2).
		WithConsistency(LocalQuorum).
		WithTimeout(time.Second).
		WithTracing(true).
		WithIdempotent(true).
		Build()
	require.NoError(t, err)

	id, err := bs.GetString(0)
	require.NoError(t, err)
	assert.Equal(t, "u1", id)
	null, err := bs.IsNull(2)
	require.NoError(t, err)
	assert.True(t, null)
	assert.Equal(t, LocalQuorum, bs.Options().Consistency)
	assert.True(t, bs.Options().Tracing)
	assert.Equal(t, []byte("u1"), bs.Routing().Key)
}

func TestBoundStatementBuilderPartialSeed(t *testing.T) {
	ps := testPrepared(t, nil, ProtocolV4)

	// seeding fewer values than variables is allowed here, unlike Bind
	b, err := ps.BoundStatementBuilder("u1")
	require.NoError(t, err)
	bs, err := b.SetString(1, "Ann").SetInt32(2, 7).Build()
	require.NoError(t, err)
	set, err := bs.IsSet(2)
	require.NoError(t, err)
	assert.True(t, set)

	_, err = ps.BoundStatementBuilder("u1", "Ann", int32(7), "extra")
	var arity *ArgumentCountError
	require.ErrorAs(t, err, &arity)
}

func TestBoundStatementBuilderStickyError(t *testing.T) {
	ps := testPrepared(t, nil, ProtocolV4)

	b, err := ps.BoundStatementBuilder()
	require.NoError(t, err)
	_, err = b.
		SetByName("nope", 1).
		SetString(0, "u1"). // ignored after the first error
		Build()
	var noName *NameNotFoundError
	require.ErrorAs(t, err, &noName)

	b, err = ps.BoundStatementBuilder()
	require.NoError(t, err)
	_, err = b.Set(99, "x").Build()
	var oob *IndexOutOfRangeError
	require.ErrorAs(t, err, &oob)
}

func TestAppendValues(t *testing.T) {
	ps := testPrepared(t, nil, ProtocolV4)

	bs, err := ps.Bind("ab", nil, Unset)
	require.NoError(t, err)

	out, err := bs.AppendValues([]byte{0xAA})
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0xAA, // existing prefix is kept
		0, 3, // slot count
		0, 0, 0, 2, 'a', 'b',
		0xff, 0xff, 0xff, 0xff, // NULL
		0xff, 0xff, 0xff, 0xfe, // unset
	}, out)
}
