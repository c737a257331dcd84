// Package common provides core data structures and utilities shared across
// the verification system. It defines the wire protocol messages,
// configuration structures, the type registry and logging.
//
// The package focuses on:
//   - Message protocol definition for the request/reply exchange
//   - Configuration structures for server and client components
//   - A registry mapping declared type names to Go types
//   - Custom logging implementation with consistent formatting
//
// Key Components:
//
//   - Message: Core data structure for all protocol communication, a tagged
//     union covering the Serialize request and the Success, Error and Fault
//     replies. Includes factory methods for creating each variant.
//
//   - ErrorInfo: Wire representation of a failure as explicit kind, message
//     and detail text. Errors are carried as data, never as reconstructed
//     error values.
//
//   - RegisterType / NameOf / NewPointer: The type registry used to
//     materialize a declared type descriptor into a fresh value on either
//     end of the wire.
//
//   - ServerConfig / ClientConfig: Configuration for the verification server
//     and client, covering endpoint, frame timeouts and logging.
package common
