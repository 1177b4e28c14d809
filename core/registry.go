package core

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pism/batchscript/logger"
)

// Registry is the read-only catalog of supported systems. Profiles are
// never handed out directly; every lookup returns a copy.
type Registry struct {
	systems map[string]*SystemProfile
	order   []string
	post    map[string]PostHeader
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// DefaultRegistry returns the registry built from the catalog compiled
// into the binary.
func DefaultRegistry() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = ParseCatalog(builtinCatalog, "catalog.hcl")
	})
	return defaultRegistry, defaultErr
}

// LoadRegistry loads the catalog at path. An empty path falls back to
// $PISM_BATCH_CATALOG, then the per-user catalog, then the built-in one.
func LoadRegistry(path string) (*Registry, error) {
	if catalog := getCatalogPath(path); len(catalog) > 0 {
		logger.InfoPrintf("using catalog %s", catalog)
		return LoadCatalogFile(catalog)
	}
	return DefaultRegistry()
}

// Lookup returns a copy of the named profile, or of the debug profile
// when name is not in the catalog.
func (r *Registry) Lookup(name string) *SystemProfile {
	if system, ok := r.systems[name]; ok {
		return system.Clone()
	}
	logger.DebugPrintf("unknown system %s, using %s", name, DebugSystem)
	return r.systems[DebugSystem].Clone()
}

// LookupStrict is Lookup without the debug fallback.
func (r *Registry) LookupStrict(name string) (*SystemProfile, error) {
	if system, ok := r.systems[name]; ok {
		return system.Clone(), nil
	}
	return nil, fmt.Errorf("%w %q, pick one of %v", ErrUnknownSystem, name, r.Names())
}

// Names returns the system names in sorted order
func (r *Registry) Names() []string {
	names := append([]string(nil), r.order...)
	sort.Strings(names)
	return names
}

// Declared returns the system names in catalog order
func (r *Registry) Declared() []string {
	return append([]string(nil), r.order...)
}

// PostTemplate picks the post-processing header template for system
func (r *Registry) PostTemplate(system string) PostHeader {
	for _, kind := range []string{PostPbs, PostSlurm} {
		post, ok := r.post[kind]
		if !ok {
			continue
		}
		for _, name := range post.Systems {
			if name == system {
				return post.clone()
			}
		}
	}
	return r.post[PostDefault].clone()
}

func (p PostHeader) clone() PostHeader {
	p.Systems = append([]string(nil), p.Systems...)
	return p
}
