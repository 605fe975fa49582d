package cqldb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleStatementValues(t *testing.T) {
	s := NewSimpleStatement("SELECT * FROM t WHERE k = ?", int32(1))
	assert.Equal(t, "SELECT * FROM t WHERE k = ?", s.Query())
	assert.Equal(t, []interface{}{int32(1)}, s.PositionalValues())
	assert.Nil(t, s.NamedValues())
	assert.Equal(t, int64(NoTimestamp), s.Options().Timestamp)

	n := NewSimpleStatementNamed("SELECT * FROM t WHERE k = :k", map[string]interface{}{"k": int32(1)})
	assert.Nil(t, n.PositionalValues())
	assert.Equal(t, map[string]interface{}{"k": int32(1)}, n.NamedValues())
}

func TestSimpleStatementMixedValues(t *testing.T) {
	s := NewSimpleStatement("UPDATE t SET v = ? WHERE k = ?", int32(1), "a")

	_, err := s.WithNamedValues(map[string]interface{}{"k": "a"})
	require.ErrorIs(t, err, ErrMixedValues)

	// clearing one side first makes the switch legal
	cleared, err := s.WithPositionalValues()
	require.NoError(t, err)
	named, err := cleared.WithNamedValues(map[string]interface{}{"k": "a"})
	require.NoError(t, err)
	_, err = named.WithPositionalValues(int32(1))
	require.ErrorIs(t, err, ErrMixedValues)
}

func TestSimpleStatementNullVsUnset(t *testing.T) {
	s := NewSimpleStatement("INSERT INTO t (a, b, c) VALUES (?, ?, ?)", nil, int32(1), Unset)

	assert.True(t, s.IsNull(0))
	assert.True(t, s.IsSet(0))

	assert.False(t, s.IsNull(1))
	assert.True(t, s.IsSet(1))

	assert.False(t, s.IsNull(2))
	assert.False(t, s.IsSet(2))

	// out of range is neither
	assert.False(t, s.IsNull(3))
	assert.False(t, s.IsSet(3))

	n := NewSimpleStatementNamed("q", map[string]interface{}{"a": nil, "c": Unset})
	assert.True(t, n.IsNullByName("a"))
	assert.True(t, n.IsSetByName("a"))
	assert.False(t, n.IsNullByName("b"))
	assert.False(t, n.IsSetByName("b"))
	assert.False(t, n.IsSetByName("c"))
}

func TestSimpleStatementImmutability(t *testing.T) {
	token := Token(42)
	base := NewSimpleStatement("q", int32(1))

	derived := base.
		WithQuery("q2").
		WithConsistency(LocalQuorum).
		WithSerialConsistency(LocalSerial).
		WithTimeout(time.Second).
		WithPageSize(100).
		WithPagingState([]byte{1}).
		WithCustomPayload(map[string][]byte{"k": {2}}).
		WithIdempotent(true).
		WithTracing(true).
		WithTimestamp(1234).
		WithKeyspace("ks").
		WithRoutingKeyspace("rks").
		WithRoutingKey([]byte{9}).
		WithRoutingToken(token)

	// the original never moved
	assert.Equal(t, "q", base.Query())
	assert.Equal(t, Any, base.Options().Consistency)
	assert.Equal(t, time.Duration(0), base.Options().Timeout)
	assert.Nil(t, base.Options().Idempotent)
	assert.False(t, base.Options().Tracing)
	assert.Equal(t, int64(NoTimestamp), base.Options().Timestamp)
	assert.Equal(t, RoutingInfo{}, base.Routing())

	assert.Equal(t, "q2", derived.Query())
	assert.Equal(t, LocalQuorum, derived.Options().Consistency)
	assert.Equal(t, LocalSerial, derived.Options().SerialConsistency)
	assert.Equal(t, time.Second, derived.Options().Timeout)
	assert.Equal(t, int32(100), derived.Options().PageSize)
	assert.Equal(t, []byte{1}, derived.Options().PagingState)
	assert.Equal(t, map[string][]byte{"k": {2}}, derived.Options().CustomPayload)
	require.NotNil(t, derived.Options().Idempotent)
	assert.True(t, *derived.Options().Idempotent)
	assert.True(t, derived.Options().Tracing)
	assert.Equal(t, int64(1234), derived.Options().Timestamp)
	assert.Equal(t, "ks", derived.Options().Keyspace)
	assert.Equal(t, "rks", derived.Routing().Keyspace)
	assert.Equal(t, []byte{9}, derived.Routing().Key)
	require.NotNil(t, derived.Routing().Token)
	assert.Equal(t, token, *derived.Routing().Token)

	// unchanged fields are shared, not reset
	assert.Equal(t, []interface{}{int32(1)}, derived.PositionalValues())
}

func TestConsistencyString(t *testing.T) {
	assert.Equal(t, "ANY", Any.String())
	assert.Equal(t, "LOCAL_QUORUM", LocalQuorum.String())
	assert.Equal(t, "EACH_QUORUM", EachQuorum.String())
	assert.Equal(t, "LOCAL_ONE", LocalOne.String())
	assert.Equal(t, "UNKNOWN", Consistency(0x1234).String())
}

func TestColumnDefinitionsIndexOf(t *testing.T) {
	defs := ColumnDefinitions{
		{Keyspace: "ks", Table: "t", Name: "Foo", Type: PrimitiveType(TypeInt)},
		{Keyspace: "ks", Table: "t", Name: "foo", Type: PrimitiveType(TypeText)},
		{Keyspace: "ks", Table: "t", Name: "bar", Type: PrimitiveType(TypeBoolean)},
	}

	// unquoted lookup is case-insensitive and the lowest index wins
	i, ok := defs.IndexOf("foo")
	require.True(t, ok)
	assert.Equal(t, 0, i)

	// double quotes force an exact match
	i, ok = defs.IndexOf(`"foo"`)
	require.True(t, ok)
	assert.Equal(t, 1, i)

	i, ok = defs.IndexOf("BAR")
	require.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = defs.IndexOf(`"BAR"`)
	assert.False(t, ok)
	_, ok = defs.IndexOf("baz")
	assert.False(t, ok)

	d, ok := defs.Get(`"Foo"`)
	require.True(t, ok)
	assert.True(t, d.Type.Equal(PrimitiveType(TypeInt)))
}
