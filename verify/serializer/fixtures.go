package serializer

// Fixture is a named sample value used to exercise a tested serializer
type Fixture struct {
	Name  string
	Value any
}

// Fixtures returns the built-in corpus of sample values. All fixture types
// are registered in the common type registry.
func Fixtures() []Fixture {
	return []Fixture{
		{Name: "int", Value: 42},
		{Name: "int64-negative", Value: int64(-9_000_000_000)},
		{Name: "uint64-max", Value: uint64(1<<64 - 1)},
		{Name: "float64", Value: 3.14159},
		{Name: "string", Value: "hello, world"},
		{Name: "string-empty", Value: ""},
		{Name: "string-unicode", Value: "päöü-∀x∈ℝ"},
		{Name: "bool", Value: true},
		{Name: "bytes", Value: []byte{0x00, 0x01, 0xFE, 0xFF}},
		{Name: "string-slice", Value: []string{"a", "b", "c"}},
		{Name: "string-map", Value: map[string]string{"k1": "v1", "k2": "v2"}},
	}
}
