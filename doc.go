// Package cqldb implements the client-side data layer of a CQL native
// protocol driver: the codecs that convert between protocol byte
// representations and Go values, the registry that resolves a codec for a
// (wire type, Go type) pair, and the immutable statement objects (simple,
// prepared, bound) that carry encoded values and request routing metadata.
//
// The package performs no I/O. Transport, pooling, load balancing, topology
// and authentication are external collaborators: they supply the negotiated
// protocol version, the variable and partition-key schema obtained at
// prepare time, and consume the encoded values and routing key when a
// request is written to the wire.
//
// Statements are immutable. Every With* method returns a new instance that
// shares unchanged fields with the original, so statements can be reused and
// shared across goroutines without locking. The one deliberate exception is
// a prepared statement's result metadata, which the session layer refreshes
// after a server-side re-preparation through an atomic swap.
//
// Codec registries follow a single-writer-then-many-readers discipline:
// register custom codecs while configuring the driver, before the registry
// is exposed to request traffic. Resolution never mutates the registry.
package cqldb
