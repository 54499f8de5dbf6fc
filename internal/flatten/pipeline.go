// Package flatten implements the module-graph flattening and
// symbol-binding engine: it resolves a single entry point out of a host
// bundler's dependency graph, validates the export surface, and
// assembles one namespaced script artifact from the reachable module
// bodies.
package flatten

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/scriptbind/cli/internal/graph"
)

// Result is the outcome of one successful emission run.
type Result struct {
	// EntryName is the resolved logical entry name.
	EntryName string

	// Code is the assembled artifact text.
	Code string

	// Bindings are the resolved export bindings, in namespace
	// assignment order.
	Bindings []ExportBinding

	// ModuleCount is the number of modules whose source was emitted.
	ModuleCount int
}

// Pipeline runs the flattening stages as one linear pass. A Pipeline is
// safe to reuse across sequential runs; it holds no per-run state.
type Pipeline struct {
	opts Options
	log  *log.Logger
}

// New validates opts and constructs a Pipeline. Invalid options fail
// here, before any graph access.
func New(opts Options) (*Pipeline, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{
		opts: opts,
		log:  opts.logger(),
	}, nil
}

// Run executes the pipeline over one read-only graph snapshot:
// entrypoint resolution, invariant checks, export-surface resolution,
// emission-set collection, sanitization, assembly. Any stage failure is
// terminal for the run and nothing is emitted. The transform is
// deterministic: the same snapshot yields byte-identical output.
func (p *Pipeline) Run(g graph.Adapter) (*Result, error) {
	entry, err := resolveEntrypoint(g)
	if err != nil {
		return nil, err
	}
	p.log.Debug("entrypoint resolved",
		"entry", entry.EntryName,
		"module", entry.EntryModule.ID(),
		"reachable", len(entry.ReachableModules),
	)

	if err := guardInvariants(g, entry); err != nil {
		return nil, err
	}

	bindings, err := resolveExportSurface(g, entry, p.opts)
	if err != nil {
		return nil, err
	}
	p.log.Debug("export surface resolved", "bindings", len(bindings))

	emission, err := collectEmissionSet(g, entry, bindings)
	if err != nil {
		return nil, err
	}
	p.log.Debug("emission set collected", "modules", len(emission))

	source := concatSources(g, emission, entry.ContextToken)
	sanitized := sanitizeSource(source)

	code, err := assembleArtifact(p.opts, sanitized, bindings)
	if err != nil {
		return nil, err
	}

	p.log.Info("flattened",
		"entry", entry.EntryName,
		"namespace", p.opts.Namespace(),
		"exports", len(bindings),
		"modules", len(emission),
	)

	return &Result{
		EntryName:   entry.EntryName,
		Code:        code,
		Bindings:    bindings,
		ModuleCount: len(emission),
	}, nil
}

// Vet runs the pre-emission stages only: entrypoint resolution,
// invariant checks, and export-surface resolution. No module source is
// read for concatenation and nothing is assembled; Result.Code stays
// empty. This is the `scriptbind vet` fast path.
func (p *Pipeline) Vet(g graph.Adapter) (*Result, error) {
	entry, err := resolveEntrypoint(g)
	if err != nil {
		return nil, err
	}

	if err := guardInvariants(g, entry); err != nil {
		return nil, err
	}

	bindings, err := resolveExportSurface(g, entry, p.opts)
	if err != nil {
		return nil, err
	}

	return &Result{
		EntryName:   entry.EntryName,
		Bindings:    bindings,
		ModuleCount: len(entry.ReachableModules),
	}, nil
}

// concatSources joins the generated source of every module in the
// emission set, in emission-set order, each body newline-terminated.
func concatSources(g graph.Adapter, modules []graph.Module, token graph.ContextToken) string {
	var b strings.Builder
	for _, m := range modules {
		src := g.SourceOf(m, token)
		if src == "" {
			continue
		}
		b.WriteString(src)
		if !strings.HasSuffix(src, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}
