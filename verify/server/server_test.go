package server

import (
	"net"
	"testing"
	"time"

	"github.com/varon/sercheck/verify/codec"
	"github.com/varon/sercheck/verify/common"
	"github.com/varon/sercheck/verify/serializer"
	"github.com/varon/sercheck/verify/transport"
)

// newTestServer creates a started server on an ephemeral port
func newTestServer(t *testing.T, tested serializer.ITestedSerializer) *VerificationServer {
	t.Helper()

	s := NewVerificationServer(
		common.ServerConfig{Endpoint: "127.0.0.1:0", TimeoutSecond: 5},
		codec.NewJSONCodec(),
		tested,
	)
	if err := s.Start(); err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	return s
}

// exchange performs one raw frame round trip against the server
func exchange(t *testing.T, addr string, payload []byte) common.Message {
	t.Helper()

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	if err := transport.WriteFrameTimeout(conn, payload, 5*time.Second); err != nil {
		t.Fatalf("Failed to write frame: %v", err)
	}
	reply, err := transport.ReadFrameTimeout(conn, 5*time.Second)
	if err != nil {
		t.Fatalf("Failed to read reply frame: %v", err)
	}

	var msg common.Message
	if err := codec.NewJSONCodec().Deserialize(reply, &msg); err != nil {
		t.Fatalf("Failed to decode reply: %v", err)
	}
	return msg
}

// serializeRequest builds an encoded Serialize request for a value
func serializeRequest(t *testing.T, value any) []byte {
	t.Helper()

	c := codec.NewJSONCodec()
	typeName, err := common.NameOf(value)
	if err != nil {
		t.Fatal(err)
	}
	encoded, err := c.EncodeValue(value)
	if err != nil {
		t.Fatal(err)
	}
	data, err := c.Serialize(*common.NewSerializeRequest(typeName, encoded))
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestStateMachineTransitions(t *testing.T) {
	s := NewVerificationServer(
		common.ServerConfig{Endpoint: "127.0.0.1:0"},
		codec.NewJSONCodec(),
		serializer.NewJSONSerializer(),
	)

	if got := s.State(); got != StateInit {
		t.Fatalf("Initial state = %s, want init", got)
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start from init failed: %v", err)
	}
	if got := s.State(); got != StateStarted {
		t.Fatalf("State after Start = %s, want started", got)
	}

	// double start is a caller bug
	if err := s.Start(); err == nil {
		t.Fatal("Expected error for Start after Start, got nil")
	}

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop from started failed: %v", err)
	}
	if got := s.State(); got != StateStopped {
		t.Fatalf("State after Stop = %s, want stopped", got)
	}

	// no state is ever revisited
	if err := s.Stop(); err == nil {
		t.Fatal("Expected error for Stop after Stop, got nil")
	}
	if err := s.Start(); err == nil {
		t.Fatal("Expected error for Start after Stop, got nil")
	}
}

func TestStopBeforeStart(t *testing.T) {
	s := NewVerificationServer(
		common.ServerConfig{Endpoint: "127.0.0.1:0"},
		codec.NewJSONCodec(),
		serializer.NewJSONSerializer(),
	)

	if err := s.Stop(); err == nil {
		t.Fatal("Expected error for Stop before Start, got nil")
	}
}

func TestCloseSucceedsFromAnyState(t *testing.T) {
	// from init
	s := NewVerificationServer(
		common.ServerConfig{Endpoint: "127.0.0.1:0"},
		codec.NewJSONCodec(),
		serializer.NewJSONSerializer(),
	)
	if err := s.Close(); err != nil {
		t.Fatalf("Close from init failed: %v", err)
	}
	if got := s.State(); got != StateStopped {
		t.Fatalf("State after Close = %s, want stopped", got)
	}

	// from started, and again from stopped
	s = newTestServer(t, serializer.NewJSONSerializer())
	if err := s.Close(); err != nil {
		t.Fatalf("Close from started failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Second Close failed: %v", err)
	}
}

func TestServeSuccess(t *testing.T) {
	s := newTestServer(t, serializer.NewJSONSerializer())

	reply := exchange(t, s.Addr().String(), serializeRequest(t, 42))
	if reply.MsgType != common.MsgTSuccess {
		t.Fatalf("Reply type = %s, want success (%s)", reply.MsgType, reply.ErrorInfo())
	}

	decoded, err := serializer.NewJSONSerializer().Deserialize(reply.Data, "int")
	if err != nil {
		t.Fatalf("Failed to decode success payload: %v", err)
	}
	if decoded != 42 {
		t.Errorf("Decoded value = %v, want 42", decoded)
	}
}

func TestServeSerializerFailureYieldsError(t *testing.T) {
	s := newTestServer(t, serializer.NewFailingSerializer())

	reply := exchange(t, s.Addr().String(), serializeRequest(t, 42))
	if reply.MsgType != common.MsgTError {
		t.Fatalf("Reply type = %s, want error", reply.MsgType)
	}
	if reply.ErrMsg != serializer.ErrAlwaysFails.Error() {
		t.Errorf("Error message = %q, want %q", reply.ErrMsg, serializer.ErrAlwaysFails.Error())
	}
}

func TestServeGarbageFrameYieldsFault(t *testing.T) {
	s := newTestServer(t, serializer.NewJSONSerializer())

	reply := exchange(t, s.Addr().String(), []byte("this is not a protocol message"))
	if reply.MsgType != common.MsgTFault {
		t.Fatalf("Reply type = %s, want fault", reply.MsgType)
	}
}

func TestServeUnknownTypeYieldsFault(t *testing.T) {
	s := newTestServer(t, serializer.NewJSONSerializer())

	data, err := codec.NewJSONCodec().Serialize(*common.NewSerializeRequest("no.Such.Type", []byte("{}")))
	if err != nil {
		t.Fatal(err)
	}

	reply := exchange(t, s.Addr().String(), data)
	if reply.MsgType != common.MsgTFault {
		t.Fatalf("Reply type = %s, want fault", reply.MsgType)
	}
}

// TestServerContinuesAfterFault checks that a faulted connection only affects
// that client and the server keeps serving
func TestServerContinuesAfterFault(t *testing.T) {
	s := newTestServer(t, serializer.NewJSONSerializer())
	addr := s.Addr().String()

	reply := exchange(t, addr, []byte("garbage"))
	if reply.MsgType != common.MsgTFault {
		t.Fatalf("Reply type = %s, want fault", reply.MsgType)
	}

	// the next well-formed connection must still succeed
	reply = exchange(t, addr, serializeRequest(t, "still alive"))
	if reply.MsgType != common.MsgTSuccess {
		t.Fatalf("Reply after fault = %s, want success (%s)", reply.MsgType, reply.ErrorInfo())
	}
}

// TestServerContinuesAfterDroppedConnection checks that a client vanishing
// mid-frame does not end the accept loop
func TestServerContinuesAfterDroppedConnection(t *testing.T) {
	s := newTestServer(t, serializer.NewJSONSerializer())
	addr := s.Addr().String()

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatal(err)
	}
	// announce a payload that never arrives
	if _, err := conn.Write([]byte{0x00, 0x00, 0x01, 0x00}); err != nil {
		t.Fatal(err)
	}
	_ = conn.Close()

	reply := exchange(t, addr, serializeRequest(t, 7))
	if reply.MsgType != common.MsgTSuccess {
		t.Fatalf("Reply after dropped connection = %s, want success (%s)", reply.MsgType, reply.ErrorInfo())
	}
}
