package serializer

import "errors"

// ErrAlwaysFails is the error raised by the failing serializer for every call
var ErrAlwaysFails = errors.New("serializer is configured to fail")

// NewFailingSerializer creates a tested serializer that raises for every
// value. It exists to exercise the Error reply path end to end: its failures
// must travel through the protocol as application errors, not faults.
func NewFailingSerializer() ITestedSerializer {
	return &failingSerializerImpl{}
}

// failingSerializerImpl implements the ITestedSerializer interface by failing
type failingSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ITestedSerializer)
// --------------------------------------------------------------------------

func (f failingSerializerImpl) Name() string {
	return "failing"
}

func (f failingSerializerImpl) Serialize(_ any) ([]byte, error) {
	return nil, ErrAlwaysFails
}

func (f failingSerializerImpl) Deserialize(_ []byte, _ string) (any, error) {
	return nil, ErrAlwaysFails
}
