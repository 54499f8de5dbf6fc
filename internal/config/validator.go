package config

import (
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	serrors "github.com/scriptbind/cli/internal/errors"
)

//go:embed schema.cue
var schemaFS embed.FS

// identifierRegex validates namespace segments and export-name overrides.
// Segments become property keys on the host global object, so they must be
// plain identifiers.
var identifierRegex = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap ties every validation error to the configuration sentinel.
func (e *ValidationError) Unwrap() error {
	return serrors.ErrConfiguration
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Unwrap ties the collection to the configuration sentinel.
func (e ValidationErrors) Unwrap() error {
	return serrors.ErrConfiguration
}

// Validator validates configuration against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schemaData, err := schemaFS.ReadFile("schema.cue")
	if err != nil {
		return nil, fmt.Errorf("reading embedded schema: %w", err)
	}

	schema := ctx.CompileBytes(schemaData)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	return &Validator{
		ctx:    ctx,
		schema: schema,
	}, nil
}

// Validate validates the given configuration. It runs the Go-side checks
// first (precise field-level messages), then unifies the config with the
// embedded CUE schema as a second line of defense.
func (v *Validator) Validate(cfg *Config) error {
	var errs ValidationErrors

	errs = appendSegmentErrors(errs, "namespaceRoot", cfg.NamespaceRoot)
	errs = appendSegmentErrors(errs, "subsystem", cfg.Subsystem)

	if cfg.Mode != "" && cfg.Mode != ModeServer && cfg.Mode != ModeWeb {
		errs = append(errs, ValidationError{
			Field:   "mode",
			Message: fmt.Sprintf("unknown mode %q (valid: %s, %s)", cfg.Mode, ModeServer, ModeWeb),
		})
	}

	if cfg.DefaultExportName != "" && !identifierRegex.MatchString(cfg.DefaultExportName) {
		errs = append(errs, ValidationError{
			Field:   "defaultExportName",
			Message: "must be an identifier (letters, digits, _, $; no leading digit)",
		})
	}

	if cfg.OutDir != "" && strings.TrimSpace(cfg.OutDir) == "" {
		errs = append(errs, ValidationError{
			Field:   "outDir",
			Message: "must not be empty or whitespace only",
		})
	}

	if cfg.Log.Level != "" && !validLogLevel(cfg.Log.Level) {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("unknown level %q (valid: %s)", cfg.Log.Level, strings.Join(LogLevels, ", ")),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return v.validateSchema(cfg)
}

// validateSchema unifies the config with the embedded CUE schema.
func (v *Validator) validateSchema(cfg *Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	val := v.ctx.CompileBytes(data)
	if val.Err() != nil {
		return fmt.Errorf("compiling config: %w", val.Err())
	}

	unified := v.schema.Unify(val)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return serrors.NewConfigurationError(
			err.Error(), "config",
			"check the config file against `scriptbind config init` output",
		)
	}

	return nil
}

// ValidateFile validates a configuration file at the given path.
func (v *Validator) ValidateFile(path string) error {
	loader := NewLoader()
	cfg, err := loader.Load(path)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}

	return v.Validate(cfg)
}

// ValidateSegment checks one namespace segment in isolation.
func ValidateSegment(field, segment string) error {
	if segment == "" {
		return &ValidationError{
			Field:   field,
			Message: "must not be empty",
		}
	}
	if !identifierRegex.MatchString(segment) {
		return &ValidationError{
			Field:   field,
			Message: "must be an identifier (letters, digits, _, $; no leading digit)",
		}
	}
	return nil
}

func appendSegmentErrors(errs ValidationErrors, field, segment string) ValidationErrors {
	if segment == "" {
		// Empty is filled by WithDefaults before use; only a fully
		// resolved config reaches the pipeline.
		return errs
	}
	if err := ValidateSegment(field, segment); err != nil {
		var verr *ValidationError
		if ok := asValidationError(err, &verr); ok {
			errs = append(errs, *verr)
		}
	}
	return errs
}

func asValidationError(err error, target **ValidationError) bool {
	v, ok := err.(*ValidationError)
	if ok {
		*target = v
	}
	return ok
}

func validLogLevel(level string) bool {
	for _, l := range LogLevels {
		if level == l {
			return true
		}
	}
	return false
}
