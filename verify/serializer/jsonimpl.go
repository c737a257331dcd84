package serializer

import (
	"encoding/json"
	"reflect"

	"github.com/varon/sercheck/verify/common"
)

// NewJSONSerializer creates a new tested serializer using json encoding
func NewJSONSerializer() ITestedSerializer {
	return &jsonSerializerImpl{}
}

// jsonSerializerImpl implements the ITestedSerializer interface using json encoding
type jsonSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ITestedSerializer)
// --------------------------------------------------------------------------

func (j jsonSerializerImpl) Name() string {
	return "json"
}

func (j jsonSerializerImpl) Serialize(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (j jsonSerializerImpl) Deserialize(b []byte, typeName string) (any, error) {
	ptr, err := common.NewPointer(typeName)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, ptr); err != nil {
		return nil, err
	}
	return reflect.ValueOf(ptr).Elem().Interface(), nil
}
