package flatten

import (
	"fmt"
	"strings"

	serrors "github.com/scriptbind/cli/internal/errors"
)

// NoEntrypointError indicates no entry point surfaced a source module.
type NoEntrypointError struct{}

func (e *NoEntrypointError) Error() string {
	return "no entry point with a source entry module found: declare exactly one entry whose first source-file module is the public API root"
}

// Unwrap ties the error to the not-found sentinel.
func (e *NoEntrypointError) Unwrap() error {
	return serrors.ErrNotFound
}

// EntrypointCardinalityError indicates more than one qualifying entry module.
type EntrypointCardinalityError struct {
	// Entries are the logical names of all qualifying entry points.
	Entries []string
}

func (e *EntrypointCardinalityError) Error() string {
	return fmt.Sprintf(
		"found %d entry points (%s): a flattened script has exactly one public API root, declare a single entry in the host build",
		len(e.Entries), strings.Join(e.Entries, ", "),
	)
}

// Unwrap ties the error to the invariant sentinel.
func (e *EntrypointCardinalityError) Unwrap() error {
	return serrors.ErrInvariant
}

// WildcardReexportError indicates a non-enumerable export surface.
type WildcardReexportError struct {
	// ModuleID names the offending module.
	ModuleID string

	// Detector names the detector that fired: "static-scan" or "graph-metadata".
	Detector string
}

func (e *WildcardReexportError) Error() string {
	return fmt.Sprintf(
		"module %s uses a wildcard re-export (export * ...), detected by %s: its export surface cannot be enumerated statically; re-export each symbol by name instead",
		e.ModuleID, e.Detector,
	)
}

// Unwrap ties the error to the invariant sentinel.
func (e *WildcardReexportError) Unwrap() error {
	return serrors.ErrInvariant
}

// AliasedReexportError indicates an aliased re-export on the entry module.
type AliasedReexportError struct {
	// ModuleID names the entry module.
	ModuleID string

	// Original is the exported name on the source module.
	Original string

	// Alias is the renamed export.
	Alias string
}

func (e *AliasedReexportError) Error() string {
	return fmt.Sprintf(
		"entry module %s re-exports %q as %q: the alias has no runtime identifier after bundling; define a local wrapper named %s that calls %s instead",
		e.ModuleID, e.Original, e.Alias, e.Alias, e.Original,
	)
}

// Unwrap ties the error to the invariant sentinel.
func (e *AliasedReexportError) Unwrap() error {
	return serrors.ErrInvariant
}

// NoExportedSymbolsError indicates the entry module has no public surface.
type NoExportedSymbolsError struct {
	// EntryName is the logical entry name.
	EntryName string
}

func (e *NoExportedSymbolsError) Error() string {
	return fmt.Sprintf(
		"entry %q exports no symbols: an entry with no public surface has nothing to bind onto the namespace; export at least one function",
		e.EntryName,
	)
}

// Unwrap ties the error to the invariant sentinel.
func (e *NoExportedSymbolsError) Unwrap() error {
	return serrors.ErrInvariant
}

// DefiningModuleError indicates inconsistent export metadata in the host
// graph: a re-export chain ended at a module that neither provides the
// value nor points further.
type DefiningModuleError struct {
	// ExportName is the binding being traced.
	ExportName string

	// ModuleID is the module where the chain broke.
	ModuleID string
}

func (e *DefiningModuleError) Error() string {
	return fmt.Sprintf(
		"cannot resolve the defining module for export %q: module %s neither provides it nor re-exports it (inconsistent host graph metadata)",
		e.ExportName, e.ModuleID,
	)
}

// Unwrap ties the error to the internal sentinel.
func (e *DefiningModuleError) Unwrap() error {
	return serrors.ErrInternal
}

// MissingDefinitionError indicates a bound local identifier has no
// function/class/variable definition in the concatenated source.
type MissingDefinitionError struct {
	// ExportName is the namespace-facing name.
	ExportName string

	// LocalName is the runtime identifier expected in the source.
	LocalName string
}

func (e *MissingDefinitionError) Error() string {
	return fmt.Sprintf(
		"export %q binds to identifier %q but no definition for it was emitted: the defining module's body was likely elided; import it for its side effects (import \"./module\") to anchor it",
		e.ExportName, e.LocalName,
	)
}

// Unwrap ties the error to the invariant sentinel.
func (e *MissingDefinitionError) Unwrap() error {
	return serrors.ErrInvariant
}

// LeakedPatternError indicates a forbidden substring survived into the
// assembled artifact. The sanitizer should have removed it; this is a
// logic error, not a user mistake.
type LeakedPatternError struct {
	// Pattern is the forbidden pattern found.
	Pattern string

	// Line is the 1-based line number in the assembled artifact.
	Line int
}

func (e *LeakedPatternError) Error() string {
	return fmt.Sprintf(
		"forbidden pattern %q survived sanitization at artifact line %d: this is a scriptbind bug, please report it with the graph snapshot",
		e.Pattern, e.Line,
	)
}

// Unwrap ties the error to the internal sentinel.
func (e *LeakedPatternError) Unwrap() error {
	return serrors.ErrInternal
}
