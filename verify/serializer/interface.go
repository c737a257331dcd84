package serializer

// ITestedSerializer is the interface for the serialization engine under
// verification. Implementations convert between Go values and byte payloads.
// The harness makes no assumptions about the encoding; it only checks that
// Deserialize(Serialize(v)) round-trips.
type ITestedSerializer interface {
	// Name returns the name under which the engine is registered. It is the
	// name passed as the first positional argument to a spawned server
	// process.
	Name() string

	// Serialize encodes a value into a byte payload
	Serialize(v any) ([]byte, error)

	// Deserialize decodes a byte payload back into a value of the named
	// type. The type must be present in the common type registry.
	Deserialize(b []byte, typeName string) (any, error)
}
