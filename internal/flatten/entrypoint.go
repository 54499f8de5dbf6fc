package flatten

import (
	"path/filepath"
	"strings"

	"github.com/scriptbind/cli/internal/graph"
)

// sourceExtensions are the source-language extensions an entry module
// may carry. Generated helpers and synthetic loader modules never do.
var sourceExtensions = map[string]bool{
	".ts":  true,
	".tsx": true,
	".mts": true,
	".cts": true,
}

// isSourcePath reports whether path ends in a source-language extension.
func isSourcePath(path string) bool {
	return sourceExtensions[strings.ToLower(filepath.Ext(path))]
}

// ResolvedEntrypoint is the single entry selected for one emission run.
type ResolvedEntrypoint struct {
	// EntryName is the logical entry name; it drives the artifact name.
	EntryName string

	// EntryModule is the source module declared as the public API root.
	EntryModule graph.Module

	// ContextToken selects the generated-code variants to read.
	ContextToken graph.ContextToken

	// ReachableModules is every module reachable from the entry's
	// chunks, deduplicated, in the host's traversal order.
	ReachableModules []graph.Module
}

// resolveEntrypoint selects exactly one entry module from the graph.
// For each declared entry point it gathers the reachable module set and
// context token across the entry's chunks, then picks the first module
// whose resource path has a source-language extension. Zero qualifying
// entries fail with NoEntrypointError, more than one with
// EntrypointCardinalityError.
func resolveEntrypoint(g graph.Adapter) (*ResolvedEntrypoint, error) {
	var candidates []*ResolvedEntrypoint

	for _, ep := range g.Entrypoints() {
		var (
			modules []graph.Module
			token   graph.ContextToken
		)
		for _, chunk := range ep.Chunks {
			modules = append(modules, g.ModulesOf(chunk)...)
			token = token.Merge(g.RuntimeOf(chunk))
		}
		modules = graph.DedupModules(modules)

		entryModule := firstSourceModule(g, modules)
		if entryModule == nil {
			// Entry points that surface no source module (pure runtime
			// chunks) do not qualify; they are skipped, not fatal.
			continue
		}

		candidates = append(candidates, &ResolvedEntrypoint{
			EntryName:        ep.Name,
			EntryModule:      entryModule,
			ContextToken:     token,
			ReachableModules: modules,
		})
	}

	switch len(candidates) {
	case 0:
		return nil, &NoEntrypointError{}
	case 1:
		return candidates[0], nil
	default:
		names := make([]string, len(candidates))
		for i, c := range candidates {
			names[i] = c.EntryName
		}
		return nil, &EntrypointCardinalityError{Entries: names}
	}
}

// firstSourceModule returns the first module with a source-file resource
// path, or nil.
func firstSourceModule(g graph.Adapter, modules []graph.Module) graph.Module {
	for _, m := range modules {
		if isSourcePath(g.ResourcePath(m)) {
			return m
		}
	}
	return nil
}
