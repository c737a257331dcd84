// Package server implements the verification server: a listening socket, a
// single background accept loop and the dispatch of Serialize requests to
// the tested serializer.
//
// The server is deliberately single-connection-at-a-time. Each connection
// carries exactly one request/reply exchange, and the next connection is
// only accepted once the previous one has been fully served. This trades
// throughput for determinism, which is what a test harness wants.
//
// Lifecycle is an explicit state machine (init, started, stopped) guarded
// by one mutex. Start and Stop validate the transition and fail immediately
// on misuse; Close forces the stopped state from anywhere and always
// succeeds. Per-request failures never terminate the server: a failure of
// the tested serializer becomes an Error reply, anything else becomes a
// Fault reply, and the accept loop keeps running until it is cancelled.
//
// Thread Safety:
//
//	Start, Stop, Close, Addr and State are safe for concurrent use. The
//	accept loop runs on exactly one goroutine.
package server
