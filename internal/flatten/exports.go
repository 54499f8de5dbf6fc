package flatten

import (
	"github.com/scriptbind/cli/internal/graph"
)

const (
	// esModuleMarker is the synthetic interop flag bundlers attach to
	// transpiled ES modules. It is never exposed on the namespace.
	esModuleMarker = "__esModule"

	// defaultExportName is both the fallback namespace-facing name for
	// a default export and the local identifier the source emitter
	// defines for it.
	defaultExportName = "defaultExport"
)

// ExportBinding maps one namespace-facing export to a runtime identifier.
type ExportBinding struct {
	// ExportName is the key assigned on the namespace.
	ExportName string

	// LocalName is the runtime identifier expected to exist in the
	// emitted source.
	LocalName string

	// SourceExportName is the original export name, used to trace the
	// defining module. "default" is special-cased.
	SourceExportName string
}

// resolveExportSurface enumerates the entry module's ordered export list
// and maps each export to a binding. The interop marker is skipped; a
// default export binds to the configured override (or the fallback) on
// the namespace while its local identifier stays the fallback token the
// emitter defines. An empty binding list is a build misconfiguration,
// not a silently empty artifact.
func resolveExportSurface(g graph.Adapter, entry *ResolvedEntrypoint, opts Options) ([]ExportBinding, error) {
	info := g.ExportsOf(entry.EntryModule)

	var bindings []ExportBinding
	for _, exp := range info.Exports {
		if exp.Name == esModuleMarker {
			continue
		}

		if exp.Name == "default" {
			name := defaultExportName
			if opts.DefaultExportName != "" {
				name = opts.DefaultExportName
			}
			bindings = append(bindings, ExportBinding{
				ExportName:       name,
				LocalName:        defaultExportName,
				SourceExportName: "default",
			})
			continue
		}

		// A re-export whose target name differs is the aliasing case
		// the guard already rejected for the entry module; it cannot
		// occur here, but inconsistent metadata should not slip
		// through silently.
		if exp.Target != nil && exp.Target.Export != "" && exp.Target.Export != exp.Name {
			return nil, &AliasedReexportError{
				ModuleID: entry.EntryModule.ID(),
				Original: exp.Target.Export,
				Alias:    exp.Name,
			}
		}

		bindings = append(bindings, ExportBinding{
			ExportName:       exp.Name,
			LocalName:        exp.Name,
			SourceExportName: exp.Name,
		})
	}

	if len(bindings) == 0 {
		return nil, &NoExportedSymbolsError{EntryName: entry.EntryName}
	}
	return bindings, nil
}
