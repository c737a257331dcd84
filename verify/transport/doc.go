// Package transport implements the frame codec of the verification
// protocol: a fixed-width length prefix followed by exactly that many
// payload bytes, shared by server and client.
//
// Frame I/O can be bounded with per-frame deadlines via the Timeout
// variants. A timeout of 0 reproduces fully blocking reads and writes, in
// which case a stalled peer can block its end of the exchange indefinitely.
package transport
