package cqldb

import "fmt"

// ProtocolVersion is the ordinal of the native protocol version negotiated
// at connection time. Wire width and semantics of some types depend on it,
// so it is threaded through every encode and decode call.
type ProtocolVersion byte

const (
	ProtocolV3 ProtocolVersion = 3
	ProtocolV4 ProtocolVersion = 4
	ProtocolV5 ProtocolVersion = 5
)

// SupportsUnset reports whether bound-value slots may be transmitted as
// "not set". The unset marker was introduced in protocol v4.
func (v ProtocolVersion) SupportsUnset() bool {
	return v >= ProtocolV4
}

func (v ProtocolVersion) String() string {
	return fmt.Sprintf("protocol v%d", byte(v))
}
