package server

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/varon/sercheck/verify/codec"
	"github.com/varon/sercheck/verify/common"
	"github.com/varon/sercheck/verify/serializer"
	"github.com/varon/sercheck/verify/transport"
)

var Logger = logger.GetLogger("verify")

// --------------------------------------------------------------------------
// Request Metrics
// --------------------------------------------------------------------------

var (
	successCounter = metrics.GetOrCreateCounter(`sercheck_requests_total{result="success"}`)
	errorCounter   = metrics.GetOrCreateCounter(`sercheck_requests_total{result="error"}`)
	faultCounter   = metrics.GetOrCreateCounter(`sercheck_requests_total{result="fault"}`)
	acceptFailures = metrics.GetOrCreateCounter(`sercheck_accept_failures_total`)
)

// --------------------------------------------------------------------------
// Server State Machine
// --------------------------------------------------------------------------

// ServerState is the lifecycle state of a VerificationServer. The only legal
// transitions are Init -> Started -> Stopped; no state is ever revisited.
type ServerState int

const (
	StateInit ServerState = iota
	StateStarted
	StateStopped
)

// String returns the string representation of a ServerState
func (s ServerState) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateStarted:
		return "started"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// --------------------------------------------------------------------------
// Verification Server
// --------------------------------------------------------------------------

// VerificationServer accepts one connection at a time, decodes one Serialize
// request per connection, invokes the tested serializer and replies with
// Success, Error or Fault.
type VerificationServer struct {
	config common.ServerConfig
	codec  codec.IProtocolCodec
	tested serializer.ITestedSerializer

	mu       sync.Mutex // guards state, listener and stopCh transitions
	state    ServerState
	listener net.Listener
	stopCh   chan struct{}
}

// NewVerificationServer creates a new verification server
//
// Usage:
//
//	s := server.NewVerificationServer(
//		common.ServerConfig{Endpoint: "127.0.0.1:2323", TimeoutSecond: 10},
//		codec.NewJSONCodec(),
//		serializer.NewJSONSerializer(),
//	)
//
//	if err := s.Start(); err != nil {
//		panic(err)
//	}
//	defer s.Close()
func NewVerificationServer(
	config common.ServerConfig,
	protoCodec codec.IProtocolCodec,
	tested serializer.ITestedSerializer,
) *VerificationServer {
	return &VerificationServer{
		config: config,
		codec:  protoCodec,
		tested: tested,
		state:  StateInit,
		stopCh: make(chan struct{}),
	}
}

// Start binds the configured endpoint and launches the single background
// accept loop. It must be called exactly once, from state init; starting a
// started or stopped server is a caller bug and fails immediately.
func (s *VerificationServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInit {
		return fmt.Errorf("cannot start verification server in state %s", s.state)
	}

	listener, err := net.Listen("tcp", s.config.Endpoint)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %v", s.config.Endpoint, err)
	}
	s.listener = listener
	s.state = StateStarted

	Logger.Infof("verification server for %q serializer listening on %s", s.tested.Name(), listener.Addr())

	go s.acceptLoop(listener)

	return nil
}

// Stop cancels the accept loop and closes the listening socket. It requires
// a started server; stopping an unstarted or already stopped server is a
// caller bug and fails immediately. Cancellation is cooperative: an
// in-flight connection is served to completion.
func (s *VerificationServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateStarted {
		return fmt.Errorf("cannot stop verification server in state %s", s.state)
	}

	close(s.stopCh)
	err := s.listener.Close()
	s.state = StateStopped

	Logger.Infof("verification server stopped")

	if err != nil {
		return fmt.Errorf("failed to close listener: %v", err)
	}
	return nil
}

// Close unconditionally cancels the accept loop, closes the socket if one
// exists and forces the state to stopped. Unlike Stop it succeeds from any
// state, including init, and is safe to call more than once.
func (s *VerificationServer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateStopped {
		close(s.stopCh)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
	s.state = StateStopped

	return nil
}

// Addr returns the address the server is listening on, or nil if it is not
// started. With a port of 0 in the config this is the address the OS picked.
func (s *VerificationServer) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// State returns the current lifecycle state
func (s *VerificationServer) State() ServerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// --------------------------------------------------------------------------
// Accept Loop
// --------------------------------------------------------------------------

// acceptLoop accepts and fully serves one connection at a time. Request
// handling is strictly sequential; cancellation is only observed between
// connections, never mid-request.
func (s *VerificationServer) acceptLoop(listener net.Listener) {
	for {
		select {
		case <-s.stopCh:
			return
		default:
		}

		conn, err := listener.Accept()
		if err != nil {
			// Closing the listener during Stop/Close also surfaces here
			select {
			case <-s.stopCh:
				return
			default:
			}
			acceptFailures.Inc()
			Logger.Errorf("accept error: %v", err)
			continue
		}

		s.handleConnection(conn)
	}
}

// handleConnection serves exactly one request/reply exchange on the
// connection. A failure of the tested serializer yields an Error reply; any
// other failure yields a Fault reply. Neither ever terminates the server.
func (s *VerificationServer) handleConnection(conn net.Conn) {
	defer conn.Close()

	timeout := time.Duration(s.config.TimeoutSecond) * time.Second

	reply := s.serveRequest(conn, timeout)

	switch reply.MsgType {
	case common.MsgTSuccess:
		successCounter.Inc()
	case common.MsgTError:
		errorCounter.Inc()
	case common.MsgTFault:
		faultCounter.Inc()
		Logger.Errorf("protocol fault from %s: %s", conn.RemoteAddr(), reply.ErrorInfo())
	}

	data, err := s.codec.Serialize(*reply)
	if err != nil {
		// The reply itself failed to encode. Fall back to a bare fault so
		// the client still gets exactly one reply.
		Logger.Errorf("failed to encode reply: %v", err)
		faultCounter.Inc()
		data, err = s.codec.Serialize(*common.NewFaultReply(common.NewErrorInfo(err)))
		if err != nil {
			Logger.Errorf("failed to encode fault reply: %v", err)
			return
		}
	}

	if err := transport.WriteFrameTimeout(conn, data, timeout); err != nil {
		Logger.Errorf("failed to write reply to %s: %v", conn.RemoteAddr(), err)
	}
}

// serveRequest reads and dispatches one request and builds the reply for it
func (s *VerificationServer) serveRequest(conn net.Conn, timeout time.Duration) *common.Message {
	payload, err := transport.ReadFrameTimeout(conn, timeout)
	if err != nil {
		return common.NewFaultReply(common.NewErrorInfo(fmt.Errorf("failed to read request frame: %w", err)))
	}

	var req common.Message
	if err := s.codec.Deserialize(payload, &req); err != nil {
		return common.NewFaultReply(common.NewErrorInfo(fmt.Errorf("failed to decode request: %w", err)))
	}

	if req.MsgType != common.MsgTSerialize {
		return common.NewFaultReply(common.ErrorInfo{
			Kind:    "unexpected-request",
			Message: fmt.Sprintf("unexpected request type %s", req.MsgType),
		})
	}

	value, err := s.codec.DecodeValue(req.Value, req.TypeName)
	if err != nil {
		return common.NewFaultReply(common.NewErrorInfo(fmt.Errorf("failed to decode value of type %q: %w", req.TypeName, err)))
	}

	start := time.Now()
	data, err := s.tested.Serialize(value)
	if err != nil {
		// The tested serializer's own failure is an application error, not
		// a protocol fault.
		return common.NewErrorReply(common.NewErrorInfo(err))
	}

	Logger.Debugf("serialized %q value in %s (%d bytes)", req.TypeName, time.Since(start), len(data))

	return common.NewSuccessReply(data)
}
