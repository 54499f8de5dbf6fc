package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBindingLine(t *testing.T) {
	line := FormatBindingLine("MYADDON.GAS", "onOpen", "onOpen", StatusBound)

	assert.Contains(t, line, "b:")
	assert.Contains(t, line, "MYADDON.GAS.onOpen = onOpen")
	assert.Contains(t, line, StatusBound)
}

func TestFormatBindingLine_PadsShortPaths(t *testing.T) {
	line := FormatBindingLine("A.B", "x", "x", StatusBound)

	// Status is pushed right so consecutive lines align.
	path := "A.B.x = x"
	idx := strings.Index(line, path)
	assert.GreaterOrEqual(t, idx, 0)
	rest := line[idx+len(path):]
	assert.True(t, strings.Count(rest, " ") >= 2)
}

func TestFormatBindingLine_LongPathKeepsGap(t *testing.T) {
	long := strings.Repeat("VeryLongSegment", 4)
	line := FormatBindingLine(long, "export", "local", StatusFailed)

	assert.Contains(t, line, "  ")
	assert.Contains(t, line, StatusFailed)
}

func TestFormatCheckmark(t *testing.T) {
	got := FormatCheckmark("flattened main")

	assert.Contains(t, got, "✔")
	assert.Contains(t, got, "flattened main")
}
