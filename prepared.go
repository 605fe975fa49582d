package cqldb

import "sync/atomic"

// RepreparePayload is everything a session-level statement cache needs to
// transparently re-prepare a statement after a cache miss: the original id,
// query text, keyspace and the custom payload sent with the PREPARE.
type RepreparePayload struct {
	ID            []byte
	Query         string
	Keyspace      string
	CustomPayload map[string][]byte
}

// resultMetadata pairs a result-metadata id with the column definitions it
// identifies. Readers must always observe the two together, so the pair is
// swapped through a single atomic reference.
type resultMetadata struct {
	id      []byte
	columns ColumnDefinitions
}

// PreparedStatementConfig carries everything needed to build a
// PreparedStatement. Variables, partition-key indices and result columns
// come from the server's PREPARED response; BoundOptions seeds the
// execution metadata of every statement bound from this one.
//
// A zero BoundOptions.Timestamp means "no preset timestamp" and is
// normalized to NoTimestamp. A deliberate epoch timestamp cannot be seeded
// here; set it per statement with WithTimestamp(0).
type PreparedStatementConfig struct {
	ID                  []byte
	Query               string
	Keyspace            string
	Variables           ColumnDefinitions
	PartitionKeyIndices []int
	ResultMetadataID    []byte
	ResultColumns       ColumnDefinitions
	CustomPayload       map[string][]byte
	BoundOptions        StatementOptions
	Registry            *CodecRegistry
	Version             ProtocolVersion
}

// PreparedStatement is the client-side handle of a server-side prepared
// query. It is safe for concurrent use: all fields are immutable except the
// result metadata, which is refreshed through an atomic swap when the
// server re-prepares the statement after a schema change.
//
// The statement keeps its reprepare payload reachable for as long as any
// bound statement derived from it lives, so a session cache can re-prepare
// on demand without the caller's involvement.
type PreparedStatement struct {
	id        []byte
	reprepare RepreparePayload
	variables ColumnDefinitions
	pkIndices []int
	result    atomic.Value // resultMetadata
	boundOpts StatementOptions
	registry  *CodecRegistry
	version   ProtocolVersion
}

// NewPreparedStatement builds a prepared statement from a PREPARED
// response.
func NewPreparedStatement(cfg PreparedStatementConfig) *PreparedStatement {
	ps := &PreparedStatement{
		id: cfg.ID,
		reprepare: RepreparePayload{
			ID:            cfg.ID,
			Query:         cfg.Query,
			Keyspace:      cfg.Keyspace,
			CustomPayload: cfg.CustomPayload,
		},
		variables: cfg.Variables,
		pkIndices: cfg.PartitionKeyIndices,
		boundOpts: cfg.BoundOptions,
		registry:  cfg.Registry,
		version:   cfg.Version,
	}
	if ps.boundOpts.Timestamp == 0 {
		ps.boundOpts.Timestamp = NoTimestamp
	}
	ps.result.Store(resultMetadata{id: cfg.ResultMetadataID, columns: cfg.ResultColumns})
	return ps
}

// ID returns the opaque server-assigned statement id.
func (ps *PreparedStatement) ID() []byte {
	return ps.id
}

// Query returns the original query text.
func (ps *PreparedStatement) Query() string {
	return ps.reprepare.Query
}

// Keyspace returns the keyspace the statement was prepared against, if any.
func (ps *PreparedStatement) Keyspace() string {
	return ps.reprepare.Keyspace
}

// VariableDefinitions returns the declared bind variables, in order.
func (ps *PreparedStatement) VariableDefinitions() ColumnDefinitions {
	return ps.variables
}

// PartitionKeyIndices returns the positions, within the variable schema, of
// the variables forming the partition key. Empty when the partition key is
// not fully bound by this statement.
func (ps *PreparedStatement) PartitionKeyIndices() []int {
	return ps.pkIndices
}

// ResultMetadataID returns the id identifying the current result columns.
func (ps *PreparedStatement) ResultMetadataID() []byte {
	return ps.result.Load().(resultMetadata).id
}

// ResultColumns returns the current result column definitions.
func (ps *PreparedStatement) ResultColumns() ColumnDefinitions {
	return ps.result.Load().(resultMetadata).columns
}

// SetResultMetadata atomically replaces the result-metadata pair after a
// server-side re-preparation. A reader sees either the old or the new pair,
// never a mix. Replaying the same update is harmless. Already-issued bound
// statements stay valid.
func (ps *PreparedStatement) SetResultMetadata(id []byte, columns ColumnDefinitions) {
	ps.result.Store(resultMetadata{id: id, columns: columns})
}

// RepreparePayload returns the payload a session cache uses to re-prepare
// this statement on a cache miss.
func (ps *PreparedStatement) RepreparePayload() RepreparePayload {
	return ps.reprepare
}

// Bind encodes the values against the declared variable schema, in order,
// and returns an executable bound statement. It fails with an
// ArgumentCountError on arity mismatch and a CodecNotFoundError naming the
// offending index when a value's runtime type has no codec for the declared
// wire type.
func (ps *PreparedStatement) Bind(values ...interface{}) (*BoundStatement, error) {
	vs, err := encodeBoundValues(ps.variables, ps.registry, ps.version, values)
	if err != nil {
		return nil, err
	}
	return ps.newBound(vs), nil
}

// BoundStatementBuilder starts a builder seeded like Bind. Values may be
// partial here; unsupplied slots stay unset until set on the builder.
func (ps *PreparedStatement) BoundStatementBuilder(values ...interface{}) (*BoundStatementBuilder, error) {
	if len(values) > len(ps.variables) {
		return nil, &ArgumentCountError{Expected: len(ps.variables), Actual: len(values)}
	}
	vs := newValueSet(ps.variables, ps.registry, ps.version)
	for i, v := range values {
		if err := vs.set(i, v); err != nil {
			return nil, err
		}
	}
	return &BoundStatementBuilder{stmt: ps.newBound(vs)}, nil
}

func (ps *PreparedStatement) newBound(vs *valueSet) *BoundStatement {
	opts := ps.boundOpts
	routing := RoutingInfo{Keyspace: ps.reprepare.Keyspace}
	routing.Key = routingKey(vs.slots, ps.pkIndices)
	return &BoundStatement{
		prepared: ps,
		values:   vs,
		opts:     opts,
		routing:  routing,
	}
}
