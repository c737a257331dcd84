package codec

import (
	"encoding/json"
	"reflect"

	"github.com/varon/sercheck/verify/common"
)

// NewJSONCodec creates a new protocol codec using json encoding
func NewJSONCodec() IProtocolCodec {
	return &jsonCodecImpl{}
}

// jsonCodecImpl implements the IProtocolCodec interface using json encoding
type jsonCodecImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.IProtocolCodec)
// --------------------------------------------------------------------------

func (j jsonCodecImpl) Serialize(msg common.Message) ([]byte, error) {
	return json.Marshal(msg)
}

func (j jsonCodecImpl) Deserialize(b []byte, msg *common.Message) error {
	return json.Unmarshal(b, msg)
}

func (j jsonCodecImpl) EncodeValue(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (j jsonCodecImpl) DecodeValue(b []byte, typeName string) (any, error) {
	ptr, err := common.NewPointer(typeName)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, ptr); err != nil {
		return nil, err
	}
	return reflect.ValueOf(ptr).Elem().Interface(), nil
}
