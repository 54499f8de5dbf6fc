// Package emit writes the flattened artifact to disk.
package emit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/scriptbind/cli/internal/config"
)

// Extensions per build mode.
const (
	serverExtension = ".gs"
	webExtension    = ".html"
)

// ArtifactName returns the artifact filename for an entry name and mode.
func ArtifactName(entryName, mode string) string {
	if mode == config.ModeWeb {
		return entryName + webExtension
	}
	return entryName + serverExtension
}

// Render produces the final artifact bytes for a mode. Server mode
// ships the script text as-is; web mode wraps it in an HTML shell with
// the script inlined, since browser-hosted containers only accept a
// single HTML file.
func Render(code, mode string) string {
	if mode != config.ModeWeb {
		return code
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n</head>\n<body>\n<script>\n")
	b.WriteString(code)
	if !strings.HasSuffix(code, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("</script>\n</body>\n</html>\n")
	return b.String()
}

// Write renders and writes exactly one artifact into outDir, creating
// the directory if needed. It returns the written path.
func Write(outDir, entryName, mode, code string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", outDir, err)
	}

	path := filepath.Join(outDir, ArtifactName(entryName, mode))
	if err := os.WriteFile(path, []byte(Render(code, mode)), 0o644); err != nil {
		return "", fmt.Errorf("writing artifact %s: %w", path, err)
	}
	return path, nil
}
