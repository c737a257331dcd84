package common

import (
	"fmt"
	"reflect"

	"github.com/puzpuzpuz/xsync/v3"
)

// --------------------------------------------------------------------------
// Type Registry
// --------------------------------------------------------------------------

/*
	The declared type of a value travels over the wire as a plain name. The
	registry maps those names back to Go types so a fresh value can be
	materialized on either end. Only registered types are ever instantiated,
	so a remote peer cannot request the construction of arbitrary types.
*/

var typeRegistry = xsync.NewMapOf[string, reflect.Type]()

// RegisterType registers T in the type registry and returns the name under
// which it was registered
func RegisterType[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	name := t.String()
	typeRegistry.Store(name, t)
	return name
}

// TypeByName returns the registered type for a name
func TypeByName(name string) (reflect.Type, bool) {
	return typeRegistry.Load(name)
}

// NameOf returns the registered type name for a value. It fails if the
// value's type was never registered.
func NameOf(v any) (string, error) {
	t := reflect.TypeOf(v)
	if t == nil {
		return "", fmt.Errorf("cannot determine type of nil value")
	}
	name := t.String()
	if _, ok := typeRegistry.Load(name); !ok {
		return "", fmt.Errorf("type %s is not registered", name)
	}
	return name, nil
}

// NewPointer creates a pointer to a fresh zero value of the named type,
// suitable as a decode target
func NewPointer(name string) (any, error) {
	t, ok := typeRegistry.Load(name)
	if !ok {
		return nil, fmt.Errorf("unknown type name %q", name)
	}
	return reflect.New(t).Interface(), nil
}

func init() {
	// Types available out of the box. Callers register their own types via
	// RegisterType before using them with a client or server.
	RegisterType[int]()
	RegisterType[int64]()
	RegisterType[uint64]()
	RegisterType[float64]()
	RegisterType[string]()
	RegisterType[bool]()
	RegisterType[[]byte]()
	RegisterType[[]string]()
	RegisterType[map[string]string]()
}
