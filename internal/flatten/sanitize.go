package flatten

import (
	"regexp"
	"strings"
)

// forbiddenSubstrings are host-loader-runtime symbols and interop flags
// that must never reach the artifact: the target environment has no
// loader to satisfy them.
var forbiddenSubstrings = []string{
	"__webpack_require__",
	"__webpack_exports__",
	"__webpack_module__",
	"__esModule",
	"module.exports",
}

// forbiddenStatementRegex matches foreign-module-system statements the
// host environment cannot parse.
var forbiddenStatementRegex = regexp.MustCompile(`^\s*(export|import)[\s{*]`)

// removedLineComment replaces an offending line. Substituting a comment
// instead of deleting the line keeps 1:1 line-number alignment with the
// concatenated input, so source maps and stack traces stay usable.
const removedLineComment = "// (removed loader artifact)"

// lineMatchesForbidden reports whether one source line carries a
// forbidden pattern, and which one.
func lineMatchesForbidden(line string) (string, bool) {
	for _, sub := range forbiddenSubstrings {
		if strings.Contains(line, sub) {
			return sub, true
		}
	}
	if loc := forbiddenStatementRegex.FindString(line); loc != "" {
		return strings.TrimSpace(loc), true
	}
	return "", false
}

// sanitizeSource neutralizes loader-runtime artifacts in concatenated
// module source. Matching lines are replaced by a single comment line;
// everything else passes through unchanged.
func sanitizeSource(source string) string {
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		if _, ok := lineMatchesForbidden(line); ok {
			lines[i] = removedLineComment
		}
	}
	return strings.Join(lines, "\n")
}

// findForbidden scans assembled artifact text for any surviving
// forbidden pattern. It returns the pattern and its 1-based line
// number. A hit after sanitization is a logic error in the pipeline.
func findForbidden(text string) (pattern string, line int, found bool) {
	for i, l := range strings.Split(text, "\n") {
		if p, ok := lineMatchesForbidden(l); ok {
			return p, i + 1, true
		}
	}
	return "", 0, false
}
