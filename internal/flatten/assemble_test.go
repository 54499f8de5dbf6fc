package flatten

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderNamespaceInitializer(t *testing.T) {
	init := renderNamespaceInitializer("MYADDON", "GAS")

	// Each segment is created only when missing, so multiple artifacts
	// can share a namespace root.
	assert.Contains(t, init, "g.MYADDON = g.MYADDON || {};")
	assert.Contains(t, init, "g.MYADDON.GAS = g.MYADDON.GAS || {};")
	assert.Contains(t, init, "globalThis")
}

func TestRenderExportAssignments_Order(t *testing.T) {
	bindings := []ExportBinding{
		{ExportName: "foo", LocalName: "foo"},
		{ExportName: "main", LocalName: "defaultExport"},
	}

	got := renderExportAssignments("MYADDON", "GAS", bindings)

	want := "__scriptbindGlobal.MYADDON.GAS.foo = foo;\n" +
		"__scriptbindGlobal.MYADDON.GAS.main = defaultExport;\n"
	assert.Equal(t, want, got)
}

func TestAssembleArtifact_AssignmentsAfterDefinitions(t *testing.T) {
	sanitized := "function foo() {}\nfunction onOpen() {}\n"
	bindings := []ExportBinding{
		{ExportName: "foo", LocalName: "foo"},
		{ExportName: "onOpen", LocalName: "onOpen"},
	}

	code, err := assembleArtifact(testOptions(), sanitized, bindings)
	require.NoError(t, err)

	for _, b := range bindings {
		def := strings.Index(code, "function "+b.LocalName)
		assign := strings.Index(code, "."+b.ExportName+" = "+b.LocalName+";")
		require.GreaterOrEqual(t, def, 0)
		require.GreaterOrEqual(t, assign, 0)
		assert.Less(t, def, assign, "definition of %s must precede its assignment", b.LocalName)
	}
}

func TestAssembleArtifact_DefinitionForms(t *testing.T) {
	tests := []struct {
		name      string
		sanitized string
	}{
		{"function", "function handler() {}\n"},
		{"async function", "async function handler() {}\n"},
		{"class", "class handler {}\n"},
		{"var", "var handler = function() {};\n"},
		{"let", "let handler = () => {};\n"},
		{"const", "const handler = () => {};\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := assembleArtifact(testOptions(), tt.sanitized,
				[]ExportBinding{{ExportName: "handler", LocalName: "handler"}})
			assert.NoError(t, err)
		})
	}
}

func TestAssembleArtifact_MissingDefinition(t *testing.T) {
	sanitized := "function foo() {}\n"
	bindings := []ExportBinding{
		{ExportName: "onOpen", LocalName: "onOpen"},
	}

	_, err := assembleArtifact(testOptions(), sanitized, bindings)

	var missing *MissingDefinitionError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "onOpen", missing.ExportName)
	assert.Equal(t, "onOpen", missing.LocalName)
}

func TestAssembleArtifact_NameIsNotPrefixMatched(t *testing.T) {
	// A definition of fooBar must not satisfy a binding for foo.
	sanitized := "function fooBar() {}\n"

	_, err := assembleArtifact(testOptions(), sanitized,
		[]ExportBinding{{ExportName: "foo", LocalName: "foo"}})

	var missing *MissingDefinitionError
	require.ErrorAs(t, err, &missing)
}

func TestAssembleArtifact_LeakedPattern(t *testing.T) {
	// Forbidden text reaching the assembler unsanitized is a pipeline
	// logic error and must never ship.
	sanitized := "function foo() { return __webpack_require__(1); }\n"

	_, err := assembleArtifact(testOptions(), sanitized,
		[]ExportBinding{{ExportName: "foo", LocalName: "foo"}})

	var leaked *LeakedPatternError
	require.ErrorAs(t, err, &leaked)
	assert.Equal(t, "__webpack_require__", leaked.Pattern)
	assert.Greater(t, leaked.Line, 0)
}
