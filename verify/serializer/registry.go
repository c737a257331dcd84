package serializer

import (
	"fmt"
	"sort"

	"github.com/puzpuzpuz/xsync/v3"
)

// --------------------------------------------------------------------------
// Serializer Registry
// --------------------------------------------------------------------------

/*
	A spawned server process receives the serializer under test as a plain
	name on its command line. The registry resolves that name back to an
	engine. The built-in engines register themselves below; applications
	register their own engines via Register before starting a server.
*/

var registry = xsync.NewMapOf[string, ITestedSerializer]()

// Register adds a tested serializer to the registry under its own name.
// Registering a second engine under the same name replaces the first.
func Register(s ITestedSerializer) {
	registry.Store(s.Name(), s)
}

// Get returns the tested serializer registered under the given name
func Get(name string) (ITestedSerializer, error) {
	s, ok := registry.Load(name)
	if !ok {
		return nil, fmt.Errorf("unknown tested serializer %q (registered: %v)", name, Names())
	}
	return s, nil
}

// Names returns the sorted names of all registered serializers
func Names() []string {
	var names []string
	registry.Range(func(name string, _ ITestedSerializer) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	return names
}

func init() {
	Register(NewJSONSerializer())
	Register(NewGOBSerializer())
	Register(NewFailingSerializer())
}
