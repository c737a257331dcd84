package client

import (
	"fmt"

	"github.com/varon/sercheck/verify/common"
)

// RemoteError is returned by Test when the tested serializer raised on the
// server side. It re-surfaces the remote failure to the caller; only the
// kind and message text survive the process boundary.
type RemoteError struct {
	Info common.ErrorInfo
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote serializer error: %s", e.Info)
}

// ProtocolError is returned by Test for any protocol-level failure: a Fault
// reply from the server, or a transport failure before any reply was
// obtained. Callers never need to distinguish the two cases.
type ProtocolError struct {
	// Info carries the server-reported fault, if a Fault reply was received
	Info common.ErrorInfo

	// Cause is the local transport or decode failure, if no reply was obtained
	Cause error
}

func (e *ProtocolError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("protocol error: %v", e.Cause)
	}
	return fmt.Sprintf("protocol fault: %s", e.Info)
}

func (e *ProtocolError) Unwrap() error {
	return e.Cause
}

// protocolErrf wraps a local failure into a ProtocolError
func protocolErrf(format string, args ...interface{}) *ProtocolError {
	return &ProtocolError{Cause: fmt.Errorf(format, args...)}
}
