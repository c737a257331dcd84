// Package codec provides message serialization for the verification
// protocol. It defines a common interface and multiple implementations for
// serializing and deserializing protocol messages between client and server.
//
// A protocol codec is deliberately distinct from the serializer being
// verified: the protocol needs a trusted encoding for its own Request/Reply
// messages, including the value payload embedded in a request, regardless of
// how broken the serializer under test may be. Wire compatibility depends on
// both ends using the same codec.
//
// Key Components:
//
//   - IProtocolCodec: Core interface that all codec implementations must
//     satisfy, covering both message and value payload encoding.
//
//   - jsonCodecImpl: Implementation using JSON encoding, human-readable and
//     useful for debugging captured traffic.
//
//   - gobCodecImpl: Implementation using Go's built-in gob encoding, more
//     compact than JSON for binary payloads.
//
// Thread Safety:
//
//	All codec implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
package codec
