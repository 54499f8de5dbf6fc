package flatten

import (
	"os"
	"regexp"

	"github.com/scriptbind/cli/internal/graph"
)

// The two wildcard detectors are intentionally redundant. The static
// scan reads the original source files and catches `export *` forms
// directly; the graph-metadata fallback catches synthetic and proxy
// modules the scan cannot reach, and hosts whose versions report
// re-exports differently. They are composed by logical OR.
var (
	// wildcardReexportRegex matches `export *` and `export * as name`
	// re-export statements.
	wildcardReexportRegex = regexp.MustCompile(
		`(?m)^\s*export\s*\*(\s+as\s+[A-Za-z_$][A-Za-z0-9_$]*)?\s*from\s*['"]`,
	)

	// aliasedReexportClauseRegex matches `export { ... } from "..."`
	// statements; the clause body is inspected for `as` renames.
	aliasedReexportClauseRegex = regexp.MustCompile(
		`export\s*\{([^}]*)\}\s*from\s*['"]`,
	)

	// aliasedPairRegex extracts `X as Y` pairs inside an export clause.
	aliasedPairRegex = regexp.MustCompile(
		`([A-Za-z_$][A-Za-z0-9_$]*)\s+as\s+([A-Za-z_$][A-Za-z0-9_$]*)`,
	)
)

// guardInvariants fails fast on export-surface shapes the flattener
// cannot bind deterministically. It runs before any source is read for
// concatenation; no partial emission happens after a violation.
func guardInvariants(g graph.Adapter, entry *ResolvedEntrypoint) error {
	for _, m := range entry.ReachableModules {
		if err := scanModuleForWildcard(g, m); err != nil {
			return err
		}
		if g.ExportsOf(m).OtherExportsProvided {
			return &WildcardReexportError{ModuleID: m.ID(), Detector: "graph-metadata"}
		}
	}

	// Aliased re-exports only threaten determinism on the entry module:
	// its aliases would require recovering a binding name the bundler
	// already erased. Aliasing elsewhere resolves through getTarget.
	return scanEntryForAliases(g, entry.EntryModule)
}

// scanModuleForWildcard pattern-matches the module's on-disk source for
// wildcard re-exports. Modules without a source resource path, and
// missing files, are skipped — absence is "no match", never an error.
func scanModuleForWildcard(g graph.Adapter, m graph.Module) error {
	path := g.ResourcePath(m)
	if !isSourcePath(path) {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	if wildcardReexportRegex.Match(data) {
		return &WildcardReexportError{ModuleID: m.ID(), Detector: "static-scan"}
	}
	return nil
}

// scanEntryForAliases pattern-matches the entry module's source for
// `export { X as Y } from "..."` forms.
func scanEntryForAliases(g graph.Adapter, entry graph.Module) error {
	path := g.ResourcePath(entry)
	if !isSourcePath(path) {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	for _, clause := range aliasedReexportClauseRegex.FindAllSubmatch(data, -1) {
		if pair := aliasedPairRegex.FindSubmatch(clause[1]); pair != nil {
			return &AliasedReexportError{
				ModuleID: entry.ID(),
				Original: string(pair[1]),
				Alias:    string(pair[2]),
			}
		}
	}
	return nil
}
