// Package resource serves the binary blobs compiled into the program,
// looked up by file name.
package resource

import (
	"sort"

	"golang.org/x/image/font/gofont/gomono"
)

// MonoFont is the name of the monospaced label font.
const MonoFont = "GoMono.ttf"

var registry = map[string][]byte{
	MonoFont: gomono.TTF,
}

// Loader returns the bytes of the named resource, or false if there is
// none.
type Loader func(name string) ([]byte, bool)

// Get looks up an embedded resource. It satisfies Loader.
func Get(name string) ([]byte, bool) {
	data, ok := registry[name]
	if !ok || len(data) == 0 {
		return nil, false
	}
	return data, true
}

// Names lists the embedded resources in lexical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
