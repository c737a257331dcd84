package serializer

import (
	"bytes"
	"encoding/gob"
	"reflect"

	"github.com/varon/sercheck/verify/common"
)

// NewGOBSerializer creates a new tested serializer using Go's binary gob format
func NewGOBSerializer() ITestedSerializer {
	return &gobSerializerImpl{}
}

// gobSerializerImpl implements the ITestedSerializer interface using gob encoding
type gobSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ITestedSerializer)
// --------------------------------------------------------------------------

func (g gobSerializerImpl) Name() string {
	return "gob"
}

func (g gobSerializerImpl) Serialize(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g gobSerializerImpl) Deserialize(b []byte, typeName string) (any, error) {
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
