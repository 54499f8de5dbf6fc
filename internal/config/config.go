// Package config provides configuration loading and management.
package config

// Build modes supported by the emitter.
const (
	// ModeServer emits a server-side script artifact.
	ModeServer = "server"

	// ModeWeb emits an HTML wrapper with the script inlined.
	ModeWeb = "web"
)

// Log levels accepted by log.level.
var LogLevels = []string{"debug", "info", "warn", "error"}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Level is the minimum log level.
	// Env: SCRIPTBIND_LOG_LEVEL, Default: "info"
	Level string `json:"level,omitempty" mapstructure:"level"`

	// Timestamps controls whether timestamps are shown in log output.
	// Default: false. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" mapstructure:"timestamps"`
}

// Config represents the scriptbind CLI configuration.
// Loaded from ~/.scriptbind/config.yaml, validated against the embedded
// CUE schema plus Go-side identifier checks.
type Config struct {
	// NamespaceRoot is the top-level global object key the exported
	// symbols are attached under, e.g. "MYADDON".
	// Env: SCRIPTBIND_NAMESPACE_ROOT, Default: "DEFAULT"
	NamespaceRoot string `json:"namespaceRoot,omitempty" mapstructure:"namespaceRoot"`

	// Subsystem is the second namespace segment, e.g. "GAS".
	// Env: SCRIPTBIND_SUBSYSTEM, Default: "DEFAULT"
	Subsystem string `json:"subsystem,omitempty" mapstructure:"subsystem"`

	// Mode selects the artifact shape: "server" or "web".
	// Env: SCRIPTBIND_MODE, Default: "server"
	Mode string `json:"mode,omitempty" mapstructure:"mode"`

	// DefaultExportName overrides the namespace-facing name used for the
	// entry module's default export. Empty means the fixed fallback.
	// Env: SCRIPTBIND_DEFAULT_EXPORT_NAME
	DefaultExportName string `json:"defaultExportName,omitempty" mapstructure:"defaultExportName"`

	// OutDir is the directory the artifact is written to.
	// Env: SCRIPTBIND_OUT_DIR, Default: "./dist"
	OutDir string `json:"outDir,omitempty" mapstructure:"outDir"`

	// Log contains logging-related settings.
	Log LogConfig `json:"log" mapstructure:"log"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `scriptbind config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		NamespaceRoot: "DEFAULT",
		Subsystem:     "DEFAULT",
		Mode:          ModeServer,
		OutDir:        "./dist",
		Log: LogConfig{
			Level: "info",
		},
	}
}

// WithDefaults fills unset fields with their defaults.
func (c *Config) WithDefaults() *Config {
	out := *c
	if out.NamespaceRoot == "" {
		out.NamespaceRoot = "DEFAULT"
	}
	if out.Subsystem == "" {
		out.Subsystem = "DEFAULT"
	}
	if out.Mode == "" {
		out.Mode = ModeServer
	}
	if out.OutDir == "" {
		out.OutDir = "./dist"
	}
	if out.Log.Level == "" {
		out.Log.Level = "info"
	}
	return &out
}

// Namespace returns the dotted namespace path.
func (c *Config) Namespace() string {
	return c.NamespaceRoot + "." + c.Subsystem
}
