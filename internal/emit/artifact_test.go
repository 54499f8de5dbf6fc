package emit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scriptbind/cli/internal/config"
)

func TestArtifactName(t *testing.T) {
	assert.Equal(t, "main.gs", ArtifactName("main", config.ModeServer))
	assert.Equal(t, "main.html", ArtifactName("main", config.ModeWeb))
	assert.Equal(t, "sidebar.gs", ArtifactName("sidebar", ""))
}

func TestRender_Server(t *testing.T) {
	code := "function foo() {}\n"

	assert.Equal(t, code, Render(code, config.ModeServer))
}

func TestRender_Web(t *testing.T) {
	got := Render("function foo() {}", config.ModeWeb)

	assert.True(t, strings.HasPrefix(got, "<!DOCTYPE html>"))
	assert.Contains(t, got, "<script>\nfunction foo() {}\n</script>")
	assert.True(t, strings.HasSuffix(got, "</html>\n"))
}

func TestWrite(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "dist")

	path, err := Write(outDir, "main", config.ModeServer, "function foo() {}\n")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(outDir, "main.gs"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "function foo() {}\n", string(data))
}

func TestWrite_WebWrapsHTML(t *testing.T) {
	outDir := t.TempDir()

	path, err := Write(outDir, "sidebar", config.ModeWeb, "var x = 1;\n")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(outDir, "sidebar.html"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<script>\nvar x = 1;\n</script>")
}
