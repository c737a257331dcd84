// Package verify provides a remote verification harness for pluggable
// serialization engines. It exercises an engine from a separate process
// over a length-framed request/reply protocol and reports whether values
// survive an encode/decode round trip.
//
// The package is organized into several subpackages:
//
//   - common: Core data structures shared across the harness, including the
//     Message protocol, configuration structures, the type registry and
//     logging.
//
//   - transport: The frame codec, a length-prefixed byte unit shared by
//     server and client.
//
//   - codec: Protocol message serialization with multiple format options
//     (JSON, GOB) for the Request/Reply messages themselves.
//
//   - serializer: The boundary to the engine under verification, including
//     the name registry used by spawned server processes and reference
//     engines.
//
//   - server: The verification server owning the listening socket and the
//     sequential accept loop.
//
//   - client: The synchronous call facade that round-trips one value per
//     call.
//
//   - supervisor: The out-of-process runner isolating a crash-prone engine
//     from the test runner.
package verify
