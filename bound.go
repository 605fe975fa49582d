package cqldb

import (
	"math/big"
	"net"
	"time"

	"github.com/golang-sql/civil"
	"github.com/google/uuid"
	"gopkg.in/inf.v0"
)

// BoundStatement is a prepared statement with values attached. The variable
// schema is fixed at construction and values are positional; named access
// resolves a name to its first matching index through the schema.
//
// Like SimpleStatement it is immutable: With* methods return a new instance
// sharing unchanged state. The routing key is derived from the partition-key
// variables whenever all of them hold encoded bytes, unless one was set
// explicitly.
type BoundStatement struct {
	prepared    *PreparedStatement
	values      *valueSet
	opts        StatementOptions
	routing     RoutingInfo
	explicitKey bool
}

// Prepared returns the statement this was bound from. The prepared
// statement stays reachable so a session cache can re-prepare on demand.
func (bs *BoundStatement) Prepared() *PreparedStatement {
	return bs.prepared
}

// VariableDefinitions returns the declared bind variables, in order.
func (bs *BoundStatement) VariableDefinitions() ColumnDefinitions {
	return bs.values.defs
}

func (bs *BoundStatement) Len() int                  { return len(bs.values.slots) }
func (bs *BoundStatement) Options() StatementOptions { return bs.opts }
func (bs *BoundStatement) Routing() RoutingInfo      { return bs.routing }

// IndexOf resolves a variable name to its first matching index.
func (bs *BoundStatement) IndexOf(name string) (int, error) {
	return bs.values.indexOf(name)
}

// IsNull reports whether slot i holds an explicit NULL.
func (bs *BoundStatement) IsNull(i int) (bool, error) {
	return bs.values.isNull(i)
}

// IsSet reports whether slot i was supplied at all (as a value or an
// explicit NULL).
func (bs *BoundStatement) IsSet(i int) (bool, error) {
	return bs.values.isSet(i)
}

// BytesUnsafe returns slot i's encoded bytes exactly as retained, without a
// defensive copy; nil for NULL and unset slots. Callers that mutate the
// slice must duplicate it first.
func (bs *BoundStatement) BytesUnsafe(i int) ([]byte, error) {
	return bs.values.bytesUnsafe(i)
}

// Get decodes slot i into the requested representation.
func (bs *BoundStatement) Get(i int, target TargetType) (interface{}, error) {
	return bs.values.get(i, target)
}

// GetValue decodes slot i into the wire type's default representation.
func (bs *BoundStatement) GetValue(i int) (interface{}, error) {
	return bs.values.getDefault(i)
}

// GetByName decodes the first variable matching name into the wire type's
// default representation.
func (bs *BoundStatement) GetByName(name string) (interface{}, error) {
	i, err := bs.values.indexOf(name)
	if err != nil {
		return nil, err
	}
	return bs.values.getDefault(i)
}

// Primitive getters return the zero value for NULL slots rather than
// failing. This is deliberate API ergonomics inherited from the classic
// drivers, and an easy source of silent data loss: call IsNull first when a
// stored zero and a NULL must be told apart.

func (bs *BoundStatement) GetBool(i int) (bool, error)       { return bs.values.getBool(i) }
func (bs *BoundStatement) GetInt8(i int) (int8, error)       { return bs.values.getInt8(i) }
func (bs *BoundStatement) GetInt16(i int) (int16, error)     { return bs.values.getInt16(i) }
func (bs *BoundStatement) GetInt32(i int) (int32, error)     { return bs.values.getInt32(i) }
func (bs *BoundStatement) GetInt64(i int) (int64, error)     { return bs.values.getInt64(i) }
func (bs *BoundStatement) GetFloat32(i int) (float32, error) { return bs.values.getFloat32(i) }
func (bs *BoundStatement) GetFloat64(i int) (float64, error) { return bs.values.getFloat64(i) }
func (bs *BoundStatement) GetString(i int) (string, error)   { return bs.values.getString(i) }
func (bs *BoundStatement) GetBytes(i int) ([]byte, error)    { return bs.values.getBytes(i) }
func (bs *BoundStatement) GetTime(i int) (time.Time, error)  { return bs.values.getTime(i) }
func (bs *BoundStatement) GetDate(i int) (civil.Date, error) { return bs.values.getDate(i) }
func (bs *BoundStatement) GetTimeOfDay(i int) (civil.Time, error) {
	return bs.values.getTimeOfDay(i)
}
func (bs *BoundStatement) GetUUID(i int) (uuid.UUID, error)   { return bs.values.getUUID(i) }
func (bs *BoundStatement) GetDecimal(i int) (*inf.Dec, error) { return bs.values.getDecimal(i) }
func (bs *BoundStatement) GetVarint(i int) (*big.Int, error)  { return bs.values.getVarint(i) }
func (bs *BoundStatement) GetInet(i int) (net.IP, error)      { return bs.values.getInet(i) }

// WithValue returns a copy with slot i set to value, encoded by the codec
// resolved from the value's runtime type. nil sets an explicit NULL, Unset
// clears the slot.
func (bs *BoundStatement) WithValue(i int, value interface{}) (*BoundStatement, error) {
	c := bs.shallowCopy()
	c.values = bs.values.clone()
	if err := c.values.set(i, value); err != nil {
		return nil, err
	}
	c.refreshRoutingKey()
	return c, nil
}

// WithValueByName is WithValue for the first variable matching name.
func (bs *BoundStatement) WithValueByName(name string, value interface{}) (*BoundStatement, error) {
	i, err := bs.values.indexOf(name)
	if err != nil {
		return nil, err
	}
	return bs.WithValue(i, value)
}

// WithBytesUnsafe returns a copy with slot i's payload replaced by the
// given slice, without copying it. nil sets an explicit NULL.
func (bs *BoundStatement) WithBytesUnsafe(i int, data []byte) (*BoundStatement, error) {
	c := bs.shallowCopy()
	c.values = bs.values.clone()
	if err := c.values.setBytesUnsafe(i, data); err != nil {
		return nil, err
	}
	c.refreshRoutingKey()
	return c, nil
}

// WithUnset returns a copy with slot i cleared back to unset.
func (bs *BoundStatement) WithUnset(i int) (*BoundStatement, error) {
	return bs.WithValue(i, Unset)
}

func (bs *BoundStatement) WithConsistency(cl Consistency) *BoundStatement {
	c := bs.shallowCopy()
	c.opts.Consistency = cl
	return c
}

func (bs *BoundStatement) WithSerialConsistency(cl Consistency) *BoundStatement {
	c := bs.shallowCopy()
	c.opts.SerialConsistency = cl
	return c
}

func (bs *BoundStatement) WithTimeout(d time.Duration) *BoundStatement {
	c := bs.shallowCopy()
	c.opts.Timeout = d
	return c
}

func (bs *BoundStatement) WithPageSize(n int32) *BoundStatement {
	c := bs.shallowCopy()
	c.opts.PageSize = n
	return c
}

func (bs *BoundStatement) WithPagingState(state []byte) *BoundStatement {
	c := bs.shallowCopy()
	c.opts.PagingState = state
	return c
}

func (bs *BoundStatement) WithCustomPayload(payload map[string][]byte) *BoundStatement {
	c := bs.shallowCopy()
	c.opts.CustomPayload = payload
	return c
}

func (bs *BoundStatement) WithIdempotent(idempotent bool) *BoundStatement {
	c := bs.shallowCopy()
	c.opts.Idempotent = &idempotent
	return c
}

func (bs *BoundStatement) WithTracing(tracing bool) *BoundStatement {
	c := bs.shallowCopy()
	c.opts.Tracing = tracing
	return c
}

func (bs *BoundStatement) WithTimestamp(micros int64) *BoundStatement {
	c := bs.shallowCopy()
	c.opts.Timestamp = micros
	return c
}

func (bs *BoundStatement) WithRoutingKeyspace(keyspace string) *BoundStatement {
	c := bs.shallowCopy()
	c.routing.Keyspace = keyspace
	return c
}

// WithRoutingKey pins the routing key, overriding derivation from the
// partition-key variables.
func (bs *BoundStatement) WithRoutingKey(key []byte) *BoundStatement {
	c := bs.shallowCopy()
	c.routing.Key = key
	c.explicitKey = true
	return c
}

func (bs *BoundStatement) WithRoutingToken(token Token) *BoundStatement {
	c := bs.shallowCopy()
	c.routing.Token = &token
	return c
}

func (bs *BoundStatement) shallowCopy() *BoundStatement {
	c := *bs
	return &c
}

func (bs *BoundStatement) refreshRoutingKey() {
	if bs.explicitKey {
		return
	}
	bs.routing.Key = routingKey(bs.values.slots, bs.prepared.pkIndices)
}

// BoundStatementBuilder accumulates value and option changes without
// allocating an intermediate statement per change, then produces an
// immutable BoundStatement. The first error sticks and is reported by
// Build. Builders are not safe for concurrent use.
type BoundStatementBuilder struct {
	stmt *BoundStatement
	err  error
}

func (b *BoundStatementBuilder) set(i int, value interface{}) *BoundStatementBuilder {
	if b.err == nil {
		b.err = b.stmt.values.set(i, value)
	}
	return b
}

// Set encodes value into slot i, resolving the codec from the value's
// runtime type.
func (b *BoundStatementBuilder) Set(i int, value interface{}) *BoundStatementBuilder {
	return b.set(i, value)
}

// SetByName is Set for the first variable matching name.
func (b *BoundStatementBuilder) SetByName(name string, value interface{}) *BoundStatementBuilder {
	if b.err != nil {
		return b
	}
	i, err := b.stmt.values.indexOf(name)
	if err != nil {
		b.err = err
		return b
	}
	return b.set(i, value)
}

// SetNull writes an explicit NULL into slot i.
func (b *BoundStatementBuilder) SetNull(i int) *BoundStatementBuilder {
	return b.set(i, nil)
}

// SetUnset clears slot i back to unset.
func (b *BoundStatementBuilder) SetUnset(i int) *BoundStatementBuilder {
	return b.set(i, Unset)
}

// SetBytesUnsafe stores data as slot i's payload without copying.
func (b *BoundStatementBuilder) SetBytesUnsafe(i int, data []byte) *BoundStatementBuilder {
	if b.err == nil {
		b.err = b.stmt.values.setBytesUnsafe(i, data)
	}
	return b
}

func (b *BoundStatementBuilder) SetBool(i int, v bool) *BoundStatementBuilder {
	return b.set(i, v)
}

func (b *BoundStatementBuilder) SetInt32(i int, v int32) *BoundStatementBuilder {
	return b.set(i, v)
}

func (b *BoundStatementBuilder) SetInt64(i int, v int64) *BoundStatementBuilder {
	return b.set(i, v)
}

func (b *BoundStatementBuilder) SetFloat64(i int, v float64) *BoundStatementBuilder {
	return b.set(i, v)
}

func (b *BoundStatementBuilder) SetString(i int, v string) *BoundStatementBuilder {
	return b.set(i, v)
}

func (b *BoundStatementBuilder) SetTime(i int, v time.Time) *BoundStatementBuilder {
	return b.set(i, v)
}

func (b *BoundStatementBuilder) SetUUID(i int, v uuid.UUID) *BoundStatementBuilder {
	return b.set(i, v)
}

func (b *BoundStatementBuilder) WithConsistency(cl Consistency) *BoundStatementBuilder {
	b.stmt.opts.Consistency = cl
	return b
}

func (b *BoundStatementBuilder) WithTimeout(d time.Duration) *BoundStatementBuilder {
	b.stmt.opts.Timeout = d
	return b
}

func (b *BoundStatementBuilder) WithTracing(tracing bool) *BoundStatementBuilder {
	b.stmt.opts.Tracing = tracing
	return b
}

func (b *BoundStatementBuilder) WithIdempotent(idempotent bool) *BoundStatementBuilder {
	b.stmt.opts.Idempotent = &idempotent
	return b
}

// Build finalizes the statement, deriving its routing key from the
// partition-key variables. The builder must not be reused afterwards.
func (b *BoundStatementBuilder) Build() (*BoundStatement, error) {
	if b.err != nil {
		return nil, b.err
	}
	b.stmt.refreshRoutingKey()
	return b.stmt, nil
}
