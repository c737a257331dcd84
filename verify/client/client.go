package client

import (
	"fmt"
	"net"
	"time"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/varon/sercheck/verify/codec"
	"github.com/varon/sercheck/verify/common"
	"github.com/varon/sercheck/verify/serializer"
	"github.com/varon/sercheck/verify/transport"
)

var Logger = logger.GetLogger("verify")

// VerificationClient round-trips values through a remote verification
// server. Every Test call opens a fresh connection, so a single client may
// be reused sequentially and separate clients may be used concurrently;
// there is no shared connection state.
type VerificationClient struct {
	config common.ClientConfig
	codec  codec.IProtocolCodec
	tested serializer.ITestedSerializer
}

// NewVerificationClient creates a new client bound to the endpoint in the
// config. The codec must match the server's protocol codec; the tested
// serializer must be the same engine the server exercises, since its reader
// decodes the Success payload locally.
func NewVerificationClient(
	config common.ClientConfig,
	protoCodec codec.IProtocolCodec,
	tested serializer.ITestedSerializer,
) *VerificationClient {
	return &VerificationClient{
		config: config,
		codec:  protoCodec,
		tested: tested,
	}
}

// Test sends one Serialize request for the value and blocks for the reply.
// It resolves to exactly one of three outcomes:
//   - the value decoded from a Success reply via the tested serializer
//   - a *RemoteError re-surfacing the tested serializer's own failure
//   - a *ProtocolError for a Fault reply or any transport failure
func (c *VerificationClient) Test(value any) (any, error) {
	typeName, err := common.NameOf(value)
	if err != nil {
		return nil, err
	}

	encoded, err := c.codec.EncodeValue(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value: %w", err)
	}

	reqBytes, err := c.codec.Serialize(*common.NewSerializeRequest(typeName, encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	reply, err := c.roundTrip(reqBytes)
	if err != nil {
		return nil, err
	}

	switch reply.MsgType {
	case common.MsgTSuccess:
		decoded, err := c.tested.Deserialize(reply.Data, typeName)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %q reply payload: %w", typeName, err)
		}
		return decoded, nil

	case common.MsgTError:
		return nil, &RemoteError{Info: reply.ErrorInfo()}

	case common.MsgTFault:
		return nil, &ProtocolError{Info: reply.ErrorInfo()}

	default:
		return nil, protocolErrf("unexpected reply type %s", reply.MsgType)
	}
}

// roundTrip performs one frame exchange over a fresh connection. Any failure
// before a decoded reply is obtained is normalized into a ProtocolError.
func (c *VerificationClient) roundTrip(reqBytes []byte) (*common.Message, error) {
	timeout := time.Duration(c.config.TimeoutSecond) * time.Second

	conn, err := net.Dial("tcp", c.config.Endpoint)
	if err != nil {
		return nil, protocolErrf("failed to connect to %s: %w", c.config.Endpoint, err)
	}
	defer conn.Close()

	if err := transport.WriteFrameTimeout(conn, reqBytes, timeout); err != nil {
		return nil, protocolErrf("failed to write request frame: %w", err)
	}

	respBytes, err := transport.ReadFrameTimeout(conn, timeout)
	if err != nil {
		return nil, protocolErrf("failed to read reply frame: %w", err)
	}

	reply := &common.Message{}
	if err := c.codec.Deserialize(respBytes, reply); err != nil {
		return nil, protocolErrf("failed to decode reply: %w", err)
	}

	return reply, nil
}

// TestAs round-trips a value and narrows the result to T. The wire carries
// no guarantee that the remote value matches the declared type; a mismatch
// surfaces here as a local conversion failure.
func TestAs[T any](c *VerificationClient, value T) (T, error) {
	var zero T

	result, err := c.Test(value)
	if err != nil {
		return zero, err
	}

	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("remote value has type %T, want %T", result, zero)
	}
	return typed, nil
}
