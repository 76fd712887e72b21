package refs

import (
	"sort"
	"strings"
	"sync"

	"github.com/traefik/yaegi/stdlib"
)

// Library is one package the registry can hand to the compiler.
// Path doubles as the concrete location attached to the reference list.
type Library struct {
	Path string
	Name string
}

// Registry is the ambient environment the resolver works against: a snapshot
// of every library currently offered by the host process. Implementations
// must return a stable, sorted slice so resolution order is deterministic
// within one run.
type Registry interface {
	Libraries() []Library
}

// StdlibRegistry exposes the standard-library packages bundled with the
// interpreter runtime. The tool's own packages are not part of the symbol
// table, so they never leak into the reference set.
type StdlibRegistry struct {
	once sync.Once
	libs []Library
}

func NewStdlibRegistry() *StdlibRegistry {
	return &StdlibRegistry{}
}

func (r *StdlibRegistry) Libraries() []Library {
	r.once.Do(r.build)
	return r.libs
}

func (r *StdlibRegistry) build() {
	seen := make(map[string]struct{}, len(stdlib.Symbols))
	libs := make([]Library, 0, len(stdlib.Symbols))
	for key := range stdlib.Symbols {
		path, name := splitSymbolKey(key)
		if path == "" {
			continue
		}
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}
		libs = append(libs, Library{Path: path, Name: name})
	}
	sort.Slice(libs, func(i, j int) bool { return libs[i].Path < libs[j].Path })
	r.libs = libs
}

// splitSymbolKey splits an interpreter symbol key of the form
// "<import path>/<package name>" (e.g. "encoding/json/json").
func splitSymbolKey(key string) (path, name string) {
	idx := strings.LastIndex(key, "/")
	if idx < 0 {
		return key, key
	}
	return key[:idx], key[idx+1:]
}
