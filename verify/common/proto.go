package common

import (
	"encoding/json"
	"fmt"
)

// --------------------------------------------------------------------------
// Message Structure
// --------------------------------------------------------------------------

// Message represents a single protocol message used for both requests and
// replies. Which fields are used depends on the type of message.
type Message struct {
	// Type of message
	MsgType MessageType `json:"msg_type"`

	// Request fields
	TypeName string `json:"type_name,omitempty"` // Declared type of the value to serialize
	Value    []byte `json:"value,omitempty"`     // Codec-encoded value payload

	// Reply fields
	Data []byte `json:"data,omitempty"` // Used for: Success replies

	// Error fields (used for: Error and Fault replies)
	ErrKind   string `json:"err_kind,omitempty"`
	ErrMsg    string `json:"err_msg,omitempty"`
	ErrDetail string `json:"err_detail,omitempty"`
}

// ErrorInfo is the wire representation of a failure. It carries an explicit
// kind tag plus message text instead of a concrete error type, since the
// original error cannot be reconstructed on the other side of the process
// boundary.
type ErrorInfo struct {
	Kind    string
	Message string
	Detail  string
}

// NewErrorInfo captures an error into its wire representation
func NewErrorInfo(err error) ErrorInfo {
	return ErrorInfo{
		Kind:    fmt.Sprintf("%T", err),
		Message: err.Error(),
	}
}

// String returns a human-readable representation of the error info
func (e ErrorInfo) String() string {
	if e.Kind == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// --------------------------------------------------------------------------
// Message Factory Functions
// --------------------------------------------------------------------------

// NewSerializeRequest creates a new Serialize request. The value must already
// be encoded by the protocol codec in use.
func NewSerializeRequest(typeName string, value []byte) *Message {
	return &Message{
		MsgType:  MsgTSerialize,
		TypeName: typeName,
		Value:    value,
	}
}

// NewSuccessReply creates a new Success reply carrying the bytes produced by
// the tested serializer
func NewSuccessReply(data []byte) *Message {
	return &Message{
		MsgType: MsgTSuccess,
		Data:    data,
	}
}

// NewErrorReply creates a new Error reply for a failure raised by the tested
// serializer itself
func NewErrorReply(info ErrorInfo) *Message {
	return &Message{
		MsgType:   MsgTError,
		ErrKind:   info.Kind,
		ErrMsg:    info.Message,
		ErrDetail: info.Detail,
	}
}

// NewFaultReply creates a new Fault reply for a protocol-level failure that
// is not attributable to the tested serializer
func NewFaultReply(info ErrorInfo) *Message {
	return &Message{
		MsgType:   MsgTFault,
		ErrKind:   info.Kind,
		ErrMsg:    info.Message,
		ErrDetail: info.Detail,
	}
}

// ErrorInfo extracts the error fields of an Error or Fault reply
func (m *Message) ErrorInfo() ErrorInfo {
	return ErrorInfo{
		Kind:    m.ErrKind,
		Message: m.ErrMsg,
		Detail:  m.ErrDetail,
	}
}

// --------------------------------------------------------------------------
// Message Type Definition
// --------------------------------------------------------------------------

// MessageType defines the type of message exchanged over the verification
// protocol.
type MessageType uint8

// String returns the string representation of a MessageType.
func (t MessageType) String() string {
	switch t {
	case MsgTSerialize:
		return "serialize"
	case MsgTSuccess:
		return "success"
	case MsgTError:
		return "error"
	case MsgTFault:
		return "fault"
	default:
		return "unknown"
	}
}

// MarshalJSON implements the json.Marshaller interface for MessageType.
// This allows MessageType to be serialized as a string in JSON.
func (t MessageType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for MessageType.
// This allows MessageType to be deserialized from a string in JSON.
func (t *MessageType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	// Convert string back to MessageType
	switch s {
	case "serialize":
		*t = MsgTSerialize
	case "success":
		*t = MsgTSuccess
	case "error":
		*t = MsgTError
	case "fault":
		*t = MsgTFault
	default:
		return fmt.Errorf("unknown message type: %s", s)
	}

	return nil
}

// --------------------------------------------------------------------------
// Message Type Constants
// --------------------------------------------------------------------------

const (
	MsgTUnknown MessageType = iota

	// Request message types

	MsgTSerialize // Serialize a value under a declared type

	// Reply message types

	MsgTSuccess // The tested serializer produced a byte payload
	MsgTError   // The tested serializer raised while processing the request
	MsgTFault   // A protocol-level failure occurred, independent of the tested serializer
)
