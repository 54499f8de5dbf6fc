package flatten

import (
	"github.com/scriptbind/cli/internal/graph"
)

// collectEmissionSet determines the modules whose source is concatenated
// into the artifact:
//
//  1. the entry module itself (it may carry top-level side effects
//     unrelated to any export),
//  2. everything reachable from the entry's chunks (the host's own
//     dead-code elimination is trusted),
//  3. the defining module of every export binding, traced through
//     re-export chains.
//
// The union is deduplicated by module ID; iteration order is the
// first-seen order, which is deterministic for a given snapshot.
func collectEmissionSet(g graph.Adapter, entry *ResolvedEntrypoint, bindings []ExportBinding) ([]graph.Module, error) {
	set := make([]graph.Module, 0, len(entry.ReachableModules)+len(bindings)+1)
	set = append(set, entry.EntryModule)
	set = append(set, entry.ReachableModules...)

	for _, b := range bindings {
		defining, err := resolveDefiningModule(g, entry.EntryModule, b.SourceExportName)
		if err != nil {
			return nil, err
		}
		set = append(set, defining)
	}

	return graph.DedupModules(set), nil
}

// resolveDefiningModule follows the re-export chain for exportName
// starting at module. A module reported as the provider terminates the
// chain, even when a next-hop target is still recorded alongside it —
// some hosts keep the stale target around. A chain that ends at a
// module which neither provides nor forwards the export means the host
// graph handed us inconsistent metadata; that is a hard internal error,
// not a valid build state.
func resolveDefiningModule(g graph.Adapter, module graph.Module, exportName string) (graph.Module, error) {
	cur := module
	name := exportName
	visited := map[string]bool{}

	for {
		if visited[cur.ID()+"\x00"+name] {
			// A re-export cycle also means broken metadata.
			return nil, &DefiningModuleError{ExportName: exportName, ModuleID: cur.ID()}
		}
		visited[cur.ID()+"\x00"+name] = true

		info := g.ExportsOf(cur).Find(name)
		if info == nil {
			return nil, &DefiningModuleError{ExportName: exportName, ModuleID: cur.ID()}
		}

		if info.Provided {
			return cur, nil
		}

		if info.Target != nil && info.Target.Module != nil {
			next := info.Target.Module
			nextName := info.Target.Export
			if nextName == "" {
				nextName = name
			}
			cur = next
			name = nextName
			continue
		}

		return nil, &DefiningModuleError{ExportName: exportName, ModuleID: cur.ID()}
	}
}
