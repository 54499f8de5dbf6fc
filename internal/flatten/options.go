package flatten

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/scriptbind/cli/internal/config"
)

// Options is the write-once-per-run configuration of a Pipeline.
type Options struct {
	// NamespaceRoot is the first namespace segment, e.g. "MYADDON".
	NamespaceRoot string

	// Subsystem is the second namespace segment, e.g. "GAS".
	Subsystem string

	// Mode is config.ModeServer or config.ModeWeb.
	Mode string

	// DefaultExportName overrides the namespace-facing name for the
	// entry module's default export. Empty selects the fixed fallback.
	DefaultExportName string

	// Logger receives the pipeline's structured log output. nil means
	// silent. Injected rather than global so concurrent processes with
	// sequential runs (watch loops) cannot interfere.
	Logger *log.Logger
}

// Namespace returns the dotted namespace path.
func (o Options) Namespace() string {
	return o.NamespaceRoot + "." + o.Subsystem
}

// Validate checks the options before any graph work begins.
func (o Options) Validate() error {
	if err := config.ValidateSegment("namespaceRoot", o.NamespaceRoot); err != nil {
		return err
	}
	if err := config.ValidateSegment("subsystem", o.Subsystem); err != nil {
		return err
	}
	if o.Mode != config.ModeServer && o.Mode != config.ModeWeb {
		return &config.ValidationError{
			Field:   "mode",
			Message: "must be \"" + config.ModeServer + "\" or \"" + config.ModeWeb + "\"",
		}
	}
	if o.DefaultExportName != "" {
		if err := config.ValidateSegment("defaultExportName", o.DefaultExportName); err != nil {
			return err
		}
	}
	return nil
}

// logger returns the injected logger or a silent one.
func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	silent := log.New(io.Discard)
	return silent
}
