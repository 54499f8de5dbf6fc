package flatten

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scriptbind/cli/internal/config"
	"github.com/scriptbind/cli/internal/graph"
)

// mustSnapshot parses a JSON graph snapshot literal or fails the test.
func mustSnapshot(t *testing.T, raw string) *graph.Snapshot {
	t.Helper()
	s, err := graph.ParseSnapshot([]byte(raw))
	require.NoError(t, err)
	return s
}

// testOptions returns pipeline options used across the suite.
func testOptions() Options {
	return Options{
		NamespaceRoot: "MYADDON",
		Subsystem:     "GAS",
		Mode:          config.ModeServer,
	}
}

// mustPipeline constructs a pipeline or fails the test.
func mustPipeline(t *testing.T, opts Options) *Pipeline {
	t.Helper()
	p, err := New(opts)
	require.NoError(t, err)
	return p
}
