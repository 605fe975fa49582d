package cqldb

import (
	"math"
	"time"
)

// Consistency is a CQL consistency level, using the protocol's wire codes.
type Consistency uint16

const (
	Any         Consistency = 0x0000
	One         Consistency = 0x0001
	Two         Consistency = 0x0002
	Three       Consistency = 0x0003
	Quorum      Consistency = 0x0004
	All         Consistency = 0x0005
	LocalQuorum Consistency = 0x0006
	EachQuorum  Consistency = 0x0007
	Serial      Consistency = 0x0008
	LocalSerial Consistency = 0x0009
	LocalOne    Consistency = 0x000A
)

func (c Consistency) String() string {
	switch c {
	case Any:
		return "ANY"
	case One:
		return "ONE"
	case Two:
		return "TWO"
	case Three:
		return "THREE"
	case Quorum:
		return "QUORUM"
	case All:
		return "ALL"
	case LocalQuorum:
		return "LOCAL_QUORUM"
	case EachQuorum:
		return "EACH_QUORUM"
	case Serial:
		return "SERIAL"
	case LocalSerial:
		return "LOCAL_SERIAL"
	case LocalOne:
		return "LOCAL_ONE"
	}
	return "UNKNOWN"
}

// Token is a position on the token ring, computed by a partitioner from a
// routing key. This layer only carries it; partitioners and replica
// selection live with the cluster metadata.
type Token int64

// NoTimestamp is the query-timestamp value meaning "let the server (or a
// timestamp generator) assign one".
const NoTimestamp = math.MinInt64

// StatementOptions groups the execution metadata every statement carries.
// The zero value means "use the driver defaults" for every field.
type StatementOptions struct {
	Consistency       Consistency
	SerialConsistency Consistency
	Timeout           time.Duration
	PageSize          int32
	PagingState       []byte
	CustomPayload     map[string][]byte
	Idempotent        *bool // nil means unknown
	Tracing           bool
	Timestamp         int64 // microseconds, NoTimestamp when unassigned
	Keyspace          string
}

// RoutingInfo groups the fields that steer token-aware routing. Any of them
// may be empty; routing then falls back to other signals.
type RoutingInfo struct {
	Keyspace string
	Key      []byte
	Token    *Token
}

// SimpleStatement is an ad-hoc query plus its values and execution
// metadata. It is immutable: every With* method returns a new instance that
// shares all unchanged fields with the receiver.
//
// Values are kept as the caller supplied them and encoded lazily at
// serialization time, since without a prepared schema the wire types are
// unknown. A nil entry is an explicit NULL; an index or name that was never
// supplied is unset. A statement carries positional values or named values,
// never both.
type SimpleStatement struct {
	query      string
	positional []interface{}
	named      map[string]interface{}
	opts       StatementOptions
	routing    RoutingInfo
}

// NewSimpleStatement builds a statement with positional values.
func NewSimpleStatement(query string, values ...interface{}) *SimpleStatement {
	return &SimpleStatement{
		query:      query,
		positional: values,
		opts:       StatementOptions{Timestamp: NoTimestamp},
	}
}

// NewSimpleStatementNamed builds a statement with named values.
func NewSimpleStatementNamed(query string, values map[string]interface{}) *SimpleStatement {
	return &SimpleStatement{
		query: query,
		named: values,
		opts:  StatementOptions{Timestamp: NoTimestamp},
	}
}

func (s *SimpleStatement) Query() string                   { return s.query }
func (s *SimpleStatement) PositionalValues() []interface{} { return s.positional }
func (s *SimpleStatement) NamedValues() map[string]interface{} {
	return s.named
}
func (s *SimpleStatement) Options() StatementOptions { return s.opts }
func (s *SimpleStatement) Routing() RoutingInfo      { return s.routing }

// IsNull reports whether positional index i was supplied as an explicit
// NULL. An index that was never supplied is not NULL, it is unset.
func (s *SimpleStatement) IsNull(i int) bool {
	return i >= 0 && i < len(s.positional) && s.positional[i] == nil
}

// IsSet reports whether positional index i was supplied at all.
func (s *SimpleStatement) IsSet(i int) bool {
	if i < 0 || i >= len(s.positional) {
		return false
	}
	_, unset := s.positional[i].(unsetValue)
	return !unset
}

// IsNullByName and IsSetByName are the named-value counterparts.
func (s *SimpleStatement) IsNullByName(name string) bool {
	v, ok := s.named[name]
	return ok && v == nil
}

func (s *SimpleStatement) IsSetByName(name string) bool {
	v, ok := s.named[name]
	if !ok {
		return false
	}
	_, unset := v.(unsetValue)
	return !unset
}

// WithQuery returns a copy with a different query string.
func (s *SimpleStatement) WithQuery(query string) *SimpleStatement {
	c := *s
	c.query = query
	return &c
}

// WithPositionalValues returns a copy with the positional values replaced.
// It fails with ErrMixedValues when the statement already has named values.
func (s *SimpleStatement) WithPositionalValues(values ...interface{}) (*SimpleStatement, error) {
	if len(values) > 0 && len(s.named) > 0 {
		return nil, ErrMixedValues
	}
	c := *s
	c.positional = values
	return &c, nil
}

// WithNamedValues returns a copy with the named values replaced. It fails
// with ErrMixedValues when the statement already has positional values.
func (s *SimpleStatement) WithNamedValues(values map[string]interface{}) (*SimpleStatement, error) {
	if len(values) > 0 && len(s.positional) > 0 {
		return nil, ErrMixedValues
	}
	c := *s
	c.named = values
	return &c, nil
}

func (s *SimpleStatement) WithConsistency(cl Consistency) *SimpleStatement {
	c := *s
	c.opts.Consistency = cl
	return &c
}

func (s *SimpleStatement) WithSerialConsistency(cl Consistency) *SimpleStatement {
	c := *s
	c.opts.SerialConsistency = cl
	return &c
}

func (s *SimpleStatement) WithTimeout(d time.Duration) *SimpleStatement {
	c := *s
	c.opts.Timeout = d
	return &c
}

func (s *SimpleStatement) WithPageSize(n int32) *SimpleStatement {
	c := *s
	c.opts.PageSize = n
	return &c
}

func (s *SimpleStatement) WithPagingState(state []byte) *SimpleStatement {
	c := *s
	c.opts.PagingState = state
	return &c
}

func (s *SimpleStatement) WithCustomPayload(payload map[string][]byte) *SimpleStatement {
	c := *s
	c.opts.CustomPayload = payload
	return &c
}

func (s *SimpleStatement) WithIdempotent(idempotent bool) *SimpleStatement {
	c := *s
	c.opts.Idempotent = &idempotent
	return &c
}

func (s *SimpleStatement) WithTracing(tracing bool) *SimpleStatement {
	c := *s
	c.opts.Tracing = tracing
	return &c
}

func (s *SimpleStatement) WithTimestamp(micros int64) *SimpleStatement {
	c := *s
	c.opts.Timestamp = micros
	return &c
}

func (s *SimpleStatement) WithKeyspace(keyspace string) *SimpleStatement {
	c := *s
	c.opts.Keyspace = keyspace
	return &c
}

func (s *SimpleStatement) WithRoutingKeyspace(keyspace string) *SimpleStatement {
	c := *s
	c.routing.Keyspace = keyspace
	return &c
}

func (s *SimpleStatement) WithRoutingKey(key []byte) *SimpleStatement {
	c := *s
	c.routing.Key = key
	return &c
}

func (s *SimpleStatement) WithRoutingToken(token Token) *SimpleStatement {
	c := *s
	c.routing.Token = &token
	return &c
}
