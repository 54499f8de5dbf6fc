package flatten

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// happySnapshot is the canonical two-module program: the entry defines
// foo itself and re-exports onOpen from a trigger module, with the
// generated source embedded in the snapshot.
const happySnapshot = `{
	"entrypoints": [{"name": "main", "chunks": ["main"]}],
	"chunks": {"main": {"runtime": ["main"], "modules": ["./src/index.ts", "./src/triggers.ts"]}},
	"modules": {
		"./src/index.ts": {
			"resource": "/proj/src/index.ts",
			"source": "function foo() { return 1; }\n",
			"exports": [
				{"name": "foo", "provided": true},
				{"name": "onOpen", "target": {"module": "./src/triggers.ts", "export": "onOpen"}}
			]
		},
		"./src/triggers.ts": {
			"resource": "/proj/src/triggers.ts",
			"source": "function onOpen(e) { foo(); }\n",
			"exports": [{"name": "onOpen", "provided": true}]
		}
	}
}`

func TestPipelineRun_HappyPath(t *testing.T) {
	s := mustSnapshot(t, happySnapshot)
	p := mustPipeline(t, testOptions())

	res, err := p.Run(s)
	require.NoError(t, err)

	assert.Equal(t, "main", res.EntryName)
	assert.Equal(t, 2, res.ModuleCount)
	require.Len(t, res.Bindings, 2)
	assert.Equal(t, "foo", res.Bindings[0].ExportName)
	assert.Equal(t, "onOpen", res.Bindings[1].ExportName)

	assert.Contains(t, res.Code, "g.MYADDON = g.MYADDON || {};")
	assert.Contains(t, res.Code, "function foo()")
	assert.Contains(t, res.Code, "function onOpen(e)")
	assert.Contains(t, res.Code, "__scriptbindGlobal.MYADDON.GAS.foo = foo;")
	assert.Contains(t, res.Code, "__scriptbindGlobal.MYADDON.GAS.onOpen = onOpen;")
}

func TestPipelineRun_DefinitionsPrecedeAssignments(t *testing.T) {
	s := mustSnapshot(t, happySnapshot)
	p := mustPipeline(t, testOptions())

	res, err := p.Run(s)
	require.NoError(t, err)

	firstAssign := strings.Index(res.Code, "__scriptbindGlobal.MYADDON.GAS.")
	require.GreaterOrEqual(t, firstAssign, 0)
	for _, b := range res.Bindings {
		def := strings.Index(res.Code, "function "+b.LocalName)
		require.GreaterOrEqual(t, def, 0)
		assert.Less(t, def, firstAssign)
	}
}

func TestPipelineRun_Deterministic(t *testing.T) {
	s := mustSnapshot(t, happySnapshot)
	p := mustPipeline(t, testOptions())

	first, err := p.Run(s)
	require.NoError(t, err)
	second, err := p.Run(s)
	require.NoError(t, err)

	assert.Equal(t, first.Code, second.Code)
}

func TestPipelineRun_SanitizesLoaderArtifacts(t *testing.T) {
	s := mustSnapshot(t, `{
		"entrypoints": [{"name": "main", "chunks": ["main"]}],
		"chunks": {"main": {"modules": ["./src/index.ts"]}},
		"modules": {
			"./src/index.ts": {
				"resource": "/proj/src/index.ts",
				"source": "export function foo() { return 1; }\nfunction foo() { return 1; }\nimport './side';\n",
				"exports": [{"name": "foo", "provided": true}]
			}
		}
	}`)
	p := mustPipeline(t, testOptions())

	res, err := p.Run(s)
	require.NoError(t, err)

	assert.NotContains(t, res.Code, "import")
	assert.Contains(t, res.Code, removedLineComment)
	assert.Contains(t, res.Code, "function foo()")
}

func TestPipelineRun_UnanchoredReexport(t *testing.T) {
	// The graph says the entry provides openDialog, but no reachable
	// module body actually defines that identifier. The run fails
	// instead of emitting an assignment to an undefined name.
	s := mustSnapshot(t, `{
		"entrypoints": [{"name": "main", "chunks": ["main"]}],
		"chunks": {"main": {"modules": ["./src/index.ts"]}},
		"modules": {
			"./src/index.ts": {
				"resource": "/proj/src/index.ts",
				"source": "function helper() {}\n",
				"exports": [{"name": "openDialog", "provided": true}]
			}
		}
	}`)
	p := mustPipeline(t, testOptions())

	_, err := p.Run(s)

	var missing *MissingDefinitionError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "openDialog", missing.ExportName)
}

func TestPipelineRun_WildcardMetadataAborts(t *testing.T) {
	s := mustSnapshot(t, `{
		"entrypoints": [{"name": "main", "chunks": ["main"]}],
		"chunks": {"main": {"modules": ["./src/index.ts", "proxy"]}},
		"modules": {
			"./src/index.ts": {
				"resource": "/proj/src/index.ts",
				"source": "function foo() {}\n",
				"exports": [{"name": "foo", "provided": true}]
			},
			"proxy": {"otherExports": true}
		}
	}`)
	p := mustPipeline(t, testOptions())

	res, err := p.Run(s)

	var wildcard *WildcardReexportError
	require.ErrorAs(t, err, &wildcard)
	assert.Nil(t, res)
}

func TestPipelineRun_AliasWorkaroundWrapper(t *testing.T) {
	// The supported alias workaround: a local wrapper exported under the
	// public name instead of `export { x as y } from`.
	s := mustSnapshot(t, `{
		"entrypoints": [{"name": "main", "chunks": ["main"]}],
		"chunks": {"main": {"modules": ["./src/index.ts", "./src/triggers.ts"]}},
		"modules": {
			"./src/index.ts": {
				"resource": "/proj/src/index.ts",
				"source": "function handleOpen(e) { return onOpen(e); }\n",
				"exports": [{"name": "handleOpen", "provided": true}]
			},
			"./src/triggers.ts": {
				"resource": "/proj/src/triggers.ts",
				"source": "function onOpen(e) {}\n",
				"exports": [{"name": "onOpen", "provided": true}]
			}
		}
	}`)
	p := mustPipeline(t, testOptions())

	res, err := p.Run(s)
	require.NoError(t, err)

	require.Len(t, res.Bindings, 1)
	assert.Equal(t, "handleOpen", res.Bindings[0].ExportName)
	assert.Contains(t, res.Code, "__scriptbindGlobal.MYADDON.GAS.handleOpen = handleOpen;")
}

func TestPipelineRun_RuntimeVariantSelection(t *testing.T) {
	s := mustSnapshot(t, `{
		"entrypoints": [{"name": "main", "chunks": ["main"]}],
		"chunks": {"main": {"runtime": ["main"], "modules": ["./src/index.ts"]}},
		"modules": {
			"./src/index.ts": {
				"resource": "/proj/src/index.ts",
				"source": "function foo() { return 'fallback'; }\n",
				"sources": {
					"main": "function foo() { return 'main'; }\n",
					"other": "function foo() { return 'other'; }\n"
				},
				"exports": [{"name": "foo", "provided": true}]
			}
		}
	}`)
	p := mustPipeline(t, testOptions())

	res, err := p.Run(s)
	require.NoError(t, err)

	assert.Contains(t, res.Code, "return 'main'")
	assert.NotContains(t, res.Code, "return 'fallback'")
	assert.NotContains(t, res.Code, "return 'other'")
}

func TestPipelineVet(t *testing.T) {
	s := mustSnapshot(t, happySnapshot)
	p := mustPipeline(t, testOptions())

	res, err := p.Vet(s)
	require.NoError(t, err)

	assert.Empty(t, res.Code)
	assert.Equal(t, "main", res.EntryName)
	assert.Equal(t, 2, res.ModuleCount)
	require.Len(t, res.Bindings, 2)
}

func TestNew_InvalidOptions(t *testing.T) {
	opts := testOptions()
	opts.NamespaceRoot = "123bad"

	_, err := New(opts)
	assert.Error(t, err)
}
