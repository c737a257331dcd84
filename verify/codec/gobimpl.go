package codec

import (
	"bytes"
	"encoding/gob"
	"reflect"

	"github.com/varon/sercheck/verify/common"
)

// NewGOBCodec creates a new protocol codec using Go's binary gob format
func NewGOBCodec() IProtocolCodec {
	return &gobCodecImpl{}
}

// gobCodecImpl implements the IProtocolCodec interface using gob encoding
type gobCodecImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.IProtocolCodec)
// --------------------------------------------------------------------------

func (g gobCodecImpl) Serialize(msg common.Message) ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(msg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g gobCodecImpl) Deserialize(b []byte, msg *common.Message) error {
	buf := bytes.NewBuffer(b)
	dec := gob.NewDecoder(buf)
	return dec.Decode(msg)
}

func (g gobCodecImpl) EncodeValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g gobCodecImpl) DecodeValue(b []byte, typeName string) (any, error) {
	ptr, err := common.NewPointer(typeName)
	if err != nil {
		return nil, err
	}
	dec := gob.NewDecoder(bytes.NewBuffer(b))
	if err := dec.Decode(ptr); err != nil {
		return nil, err
	}
	return reflect.ValueOf(ptr).Elem().Interface(), nil
}
