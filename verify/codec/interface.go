package codec

import (
	"fmt"

	"github.com/varon/sercheck/verify/common"
)

// IProtocolCodec is the interface for all protocol message codecs. A codec
// encodes and decodes the protocol's own Request/Reply messages as well as
// the value payload embedded in a Serialize request. It is entirely separate
// from the serializer under test.
type IProtocolCodec interface {
	// Serialize serializes a Message into a byte array
	Serialize(msg common.Message) ([]byte, error)

	// Deserialize deserializes a byte array into a Message
	Deserialize(b []byte, msg *common.Message) error

	// EncodeValue encodes a value for embedding into a Serialize request
	EncodeValue(v any) ([]byte, error)

	// DecodeValue decodes a value payload back into a fresh value of the
	// named type. The type must be present in the common type registry.
	DecodeValue(b []byte, typeName string) (any, error)
}

// ByName returns the codec registered under the given name (json, gob)
func ByName(name string) (IProtocolCodec, error) {
	switch name {
	case "json":
		return NewJSONCodec(), nil
	case "gob":
		return NewGOBCodec(), nil
	default:
		return nil, fmt.Errorf("invalid protocol codec %s", name)
	}
}
