package flatten

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "github.com/scriptbind/cli/internal/errors"
)

func TestResolveEntrypoint_Single(t *testing.T) {
	s := mustSnapshot(t, `{
		"entrypoints": [{"name": "main", "chunks": ["main"]}],
		"chunks": {
			"main": {"runtime": ["main"], "modules": ["./runtime.js", "./src/index.ts", "./src/util.ts"]}
		},
		"modules": {
			"./runtime.js": {"resource": "/proj/runtime.js"},
			"./src/index.ts": {"resource": "/proj/src/index.ts"},
			"./src/util.ts": {"resource": "/proj/src/util.ts"}
		}
	}`)

	entry, err := resolveEntrypoint(s)
	require.NoError(t, err)

	assert.Equal(t, "main", entry.EntryName)
	// The first module with a source-language extension wins; the
	// generated runtime helper does not qualify.
	assert.Equal(t, "./src/index.ts", entry.EntryModule.ID())
	assert.Len(t, entry.ReachableModules, 3)
	assert.True(t, entry.ContextToken.Contains("main"))
}

func TestResolveEntrypoint_NoSourceModule(t *testing.T) {
	s := mustSnapshot(t, `{
		"entrypoints": [{"name": "main", "chunks": ["main"]}],
		"chunks": {"main": {"modules": ["./runtime.js"]}},
		"modules": {"./runtime.js": {"resource": "/proj/runtime.js"}}
	}`)

	_, err := resolveEntrypoint(s)

	var noEntry *NoEntrypointError
	require.ErrorAs(t, err, &noEntry)
}

func TestResolveEntrypoint_ZeroEntrypoints(t *testing.T) {
	s := mustSnapshot(t, `{"entrypoints": [], "chunks": {}, "modules": {}}`)

	_, err := resolveEntrypoint(s)

	var noEntry *NoEntrypointError
	require.ErrorAs(t, err, &noEntry)
}

func TestResolveEntrypoint_Cardinality(t *testing.T) {
	s := mustSnapshot(t, `{
		"entrypoints": [
			{"name": "main", "chunks": ["a"]},
			{"name": "side", "chunks": ["b"]}
		],
		"chunks": {
			"a": {"modules": ["./src/a.ts"]},
			"b": {"modules": ["./src/b.ts"]}
		},
		"modules": {
			"./src/a.ts": {"resource": "/proj/src/a.ts"},
			"./src/b.ts": {"resource": "/proj/src/b.ts"}
		}
	}`)

	_, err := resolveEntrypoint(s)

	var card *EntrypointCardinalityError
	require.ErrorAs(t, err, &card)
	assert.Equal(t, []string{"main", "side"}, card.Entries)
	assert.Contains(t, err.Error(), "main")
	assert.Contains(t, err.Error(), "side")
}

func TestResolveEntrypoint_MergesChunks(t *testing.T) {
	s := mustSnapshot(t, `{
		"entrypoints": [{"name": "main", "chunks": ["a", "b"]}],
		"chunks": {
			"a": {"runtime": ["main"], "modules": ["./src/a.ts", "./src/shared.ts"]},
			"b": {"runtime": ["worker"], "modules": ["./src/shared.ts", "./src/b.ts"]}
		},
		"modules": {
			"./src/a.ts": {"resource": "/proj/src/a.ts"},
			"./src/b.ts": {"resource": "/proj/src/b.ts"},
			"./src/shared.ts": {"resource": "/proj/src/shared.ts"}
		}
	}`)

	entry, err := resolveEntrypoint(s)
	require.NoError(t, err)

	// Deduplicated across chunks, first occurrence wins.
	ids := make([]string, 0, len(entry.ReachableModules))
	for _, m := range entry.ReachableModules {
		ids = append(ids, m.ID())
	}
	assert.Equal(t, []string{"./src/a.ts", "./src/shared.ts", "./src/b.ts"}, ids)

	assert.True(t, entry.ContextToken.Contains("main"))
	assert.True(t, entry.ContextToken.Contains("worker"))
}

func TestIsSourcePath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/proj/src/index.ts", true},
		{"/proj/src/App.tsx", true},
		{"/proj/src/mod.mts", true},
		{"/proj/src/mod.cts", true},
		{"/proj/src/INDEX.TS", true},
		{"/proj/runtime.js", false},
		{"/proj/styles.css", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, isSourcePath(tt.path))
		})
	}
}

func TestNoEntrypointErrorIsNotFound(t *testing.T) {
	assert.True(t, errors.Is(&NoEntrypointError{}, serrors.ErrNotFound))
}
