package flatten

import (
	"fmt"
	"regexp"
	"strings"
)

// globalRef is the identifier the assembled script resolves the host
// global object into. `this` is unreliable in the target environments,
// so globalThis is preferred with `this` as the legacy fallback.
const globalRef = "__scriptbindGlobal"

// renderNamespaceInitializer emits the routine that walks the dotted
// namespace path and creates each missing segment as an empty object off
// the global object. Existing segments are left untouched, so multiple
// artifacts can share a namespace root.
func renderNamespaceInitializer(namespaceRoot, subsystem string) string {
	var b strings.Builder
	b.WriteString("var " + globalRef + " = (typeof globalThis === 'object') ? globalThis : this;\n")
	b.WriteString("(function(g) {\n")

	path := "g." + namespaceRoot
	b.WriteString(fmt.Sprintf("  %s = %s || {};\n", path, path))
	path = path + "." + subsystem
	b.WriteString(fmt.Sprintf("  %s = %s || {};\n", path, path))

	b.WriteString("})(" + globalRef + ");\n")
	return b.String()
}

// renderExportAssignments emits one assignment statement per binding, in
// binding order.
func renderExportAssignments(namespaceRoot, subsystem string, bindings []ExportBinding) string {
	var b strings.Builder
	for _, binding := range bindings {
		b.WriteString(fmt.Sprintf("%s.%s.%s.%s = %s;\n",
			globalRef, namespaceRoot, subsystem, binding.ExportName, binding.LocalName))
	}
	return b.String()
}

// definitionRegex builds the pattern that proves a runtime definition
// for a local identifier exists in the emitted source: a function,
// class, or variable declaration at the start of a line.
func definitionRegex(localName string) *regexp.Regexp {
	name := regexp.QuoteMeta(localName)
	return regexp.MustCompile(
		`(?m)^\s*(?:async\s+)?function\s+` + name + `\b` +
			`|^\s*class\s+` + name + `\b` +
			`|^\s*(?:var|let|const)\s+` + name + `\b`,
	)
}

// assembleArtifact renders the final artifact text: namespace
// initializer, sanitized source, export assignments. Before returning
// it verifies that every bound local identifier has a definition in the
// source (a dangling reference is never shipped) and re-scans the whole
// text against the forbidden-pattern set as a last-line invariant.
func assembleArtifact(opts Options, sanitized string, bindings []ExportBinding) (string, error) {
	for _, b := range bindings {
		if !definitionRegex(b.LocalName).MatchString(sanitized) {
			return "", &MissingDefinitionError{ExportName: b.ExportName, LocalName: b.LocalName}
		}
	}

	var out strings.Builder
	out.WriteString(renderNamespaceInitializer(opts.NamespaceRoot, opts.Subsystem))
	out.WriteString("\n")
	out.WriteString(sanitized)
	if !strings.HasSuffix(sanitized, "\n") {
		out.WriteString("\n")
	}
	out.WriteString("\n")
	out.WriteString(renderExportAssignments(opts.NamespaceRoot, opts.Subsystem, bindings))

	text := out.String()
	if pattern, line, found := findForbidden(text); found {
		return "", &LeakedPatternError{Pattern: pattern, Line: line}
	}
	return text, nil
}
