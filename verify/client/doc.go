// Package client implements the verification client: a synchronous call
// facade over the request/reply protocol.
//
// Each Test call opens one connection, exchanges one frame pair and closes
// the connection again. The call resolves to a decoded value, a
// *RemoteError carrying the tested serializer's own failure, or a
// *ProtocolError covering both Fault replies and transport failures; no
// other outcome is possible from the caller's perspective.
package client
