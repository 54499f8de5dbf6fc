// Package graph defines the read-only seam over a host bundler's module
// dependency graph. The flatten engine depends only on the Adapter
// interface; host-specific adaptation (snapshot files, in-memory test
// graphs) lives behind it.
package graph

// Module is an opaque module identity within one graph snapshot.
// Implementations must return a stable, unique ID for the lifetime of
// a snapshot; the engine deduplicates modules by ID.
type Module interface {
	// ID returns the module's identity within the graph.
	ID() string
}

// Chunk is an opaque execution chunk produced by the host bundler.
type Chunk interface {
	// ID returns the chunk's identity within the graph.
	ID() string
}

// Entrypoint is one logical entry declared in the host build.
type Entrypoint struct {
	// Name is the logical entry name (drives the artifact filename).
	Name string

	// Chunks are the execution chunks belonging to this entry, in the
	// host's order.
	Chunks []Chunk
}

// ExportTarget is the module/export pair a re-export resolves to.
type ExportTarget struct {
	Module Module
	Export string
}

// ExportInfo describes one export name on a module.
type ExportInfo struct {
	// Name is the export name as declared.
	Name string

	// Provided reports whether the module itself defines the runtime
	// value backing this export.
	Provided bool

	// Target is non-nil when the export is a re-export; it names the
	// next hop in the re-export chain.
	Target *ExportTarget
}

// ExportsInfo is a module's full export metadata.
type ExportsInfo struct {
	// Exports is the ordered export list.
	Exports []ExportInfo

	// OtherExportsProvided reports that the export surface is not
	// statically enumerable (the wildcard case).
	OtherExportsProvided bool
}

// Find returns the export info for name, or nil.
func (e ExportsInfo) Find(name string) *ExportInfo {
	for i := range e.Exports {
		if e.Exports[i].Name == name {
			return &e.Exports[i]
		}
	}
	return nil
}

// Adapter is the read-only view the engine holds over a host graph for
// the duration of exactly one run. Implementations own the underlying
// data; the engine never mutates it and never retains it across runs.
type Adapter interface {
	// Entrypoints returns the declared entry points in host order.
	Entrypoints() []Entrypoint

	// ModulesOf returns the modules reachable from a chunk.
	ModulesOf(c Chunk) []Module

	// EntryModulesOf returns the subset of a chunk's modules the host
	// considers the chunk's own entry module(s).
	EntryModulesOf(c Chunk) []Module

	// RuntimeOf returns the execution context token for a chunk.
	RuntimeOf(c Chunk) ContextToken

	// ExportsOf returns a module's export metadata.
	ExportsOf(m Module) ExportsInfo

	// SourceOf returns the module's generated source for a context
	// token. Empty when the host elided the module's body.
	SourceOf(m Module, token ContextToken) string

	// ResourcePath returns the module's on-disk path, or "" when the
	// module has none (synthetic/proxy modules).
	ResourcePath(m Module) string
}

// DedupModules returns modules deduplicated by ID, first occurrence wins.
// The order is deterministic given a deterministic input order.
func DedupModules(mods []Module) []Module {
	seen := make(map[string]struct{}, len(mods))
	out := make([]Module, 0, len(mods))
	for _, m := range mods {
		if m == nil {
			continue
		}
		if _, ok := seen[m.ID()]; ok {
			continue
		}
		seen[m.ID()] = struct{}{}
		out = append(out, m)
	}
	return out
}
