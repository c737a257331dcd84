package serializer

import (
	"errors"
	"reflect"
	"testing"

	"github.com/varon/sercheck/verify/common"
)

// testEngines is a map of engine name to factory function
var testEngines = map[string]func() ITestedSerializer{
	"JSON": NewJSONSerializer,
	"GOB":  NewGOBSerializer,
}

// TestEngineRoundTrip tests that the fixture corpus survives a round trip
// through each reference engine
func TestEngineRoundTrip(t *testing.T) {
	for name, factory := range testEngines {
		t.Run(name, func(t *testing.T) {
			engine := factory()

			for _, f := range Fixtures() {
				typeName, err := common.NameOf(f.Value)
				if err != nil {
					t.Fatalf("Fixture %q has no registered type: %v", f.Name, err)
				}

				data, err := engine.Serialize(f.Value)
				if err != nil {
					t.Errorf("Failed to serialize fixture %q: %v", f.Name, err)
					continue
				}

				result, err := engine.Deserialize(data, typeName)
				if err != nil {
					t.Errorf("Failed to deserialize fixture %q: %v", f.Name, err)
					continue
				}

				if !reflect.DeepEqual(f.Value, result) {
					t.Errorf("Fixture %q doesn't match after round trip:\nOriginal: %#v\nResult: %#v",
						f.Name, f.Value, result)
				}
			}
		})
	}
}

func TestFailingSerializer(t *testing.T) {
	engine := NewFailingSerializer()

	if _, err := engine.Serialize(42); !errors.Is(err, ErrAlwaysFails) {
		t.Errorf("Serialize error = %v, want ErrAlwaysFails", err)
	}
	if _, err := engine.Deserialize([]byte("x"), "int"); !errors.Is(err, ErrAlwaysFails) {
		t.Errorf("Deserialize error = %v, want ErrAlwaysFails", err)
	}
}

func TestRegistry(t *testing.T) {
	// the built-in engines register themselves
	for _, name := range []string{"json", "gob", "failing"} {
		engine, err := Get(name)
		if err != nil {
			t.Errorf("Get(%q) failed: %v", name, err)
			continue
		}
		if engine.Name() != name {
			t.Errorf("Get(%q).Name() = %q", name, engine.Name())
		}
	}

	if _, err := Get("no-such-engine"); err == nil {
		t.Error("Expected error for unknown engine, got nil")
	}

	names := Names()
	if len(names) < 3 {
		t.Errorf("Names() = %v, want at least the built-in engines", names)
	}
}
