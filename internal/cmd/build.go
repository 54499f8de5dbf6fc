package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scriptbind/cli/internal/config"
	"github.com/scriptbind/cli/internal/emit"
	"github.com/scriptbind/cli/internal/flatten"
	"github.com/scriptbind/cli/internal/graph"
	"github.com/scriptbind/cli/internal/output"
)

// buildFlags are the build-specific flag values.
type buildFlags struct {
	outDir            string
	namespaceRoot     string
	subsystem         string
	mode              string
	defaultExportName string
}

// NewBuildCmd creates the build command.
func NewBuildCmd() *cobra.Command {
	var bf buildFlags

	cmd := &cobra.Command{
		Use:   "build <snapshot.json>",
		Short: "Flatten a graph snapshot into one script artifact",
		Long: `Flatten a host bundler graph snapshot into a single namespaced script.

The snapshot is the host's post-resolution module graph dump. Exactly
one artifact is written on success; any violation aborts with nothing
written.

Examples:
  # Flatten with config-file namespace
  scriptbind build ./dist/graph.json

  # Override the namespace and emit a web artifact
  scriptbind build ./dist/graph.json --namespace-root MYADDON --subsystem GAS --mode web`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), args[0], &bf)
		},
	}

	cmd.Flags().StringVar(&bf.outDir, "out-dir", "", "Directory for the artifact (default from config)")
	cmd.Flags().StringVar(&bf.namespaceRoot, "namespace-root", "", "Global namespace root segment")
	cmd.Flags().StringVar(&bf.subsystem, "subsystem", "", "Namespace subsystem segment")
	cmd.Flags().StringVar(&bf.mode, "mode", "", "Build mode: server, web")
	cmd.Flags().StringVar(&bf.defaultExportName, "default-export-name", "", "Namespace name for the entry's default export")

	return cmd
}

// runBuild executes the build command.
func runBuild(ctx context.Context, snapshotPath string, bf *buildFlags) error {
	cfg, err := mergedConfig(bf)
	if err != nil {
		return NewExitError(err, ExitValidationError)
	}

	pipeline, err := flatten.New(flatten.Options{
		NamespaceRoot:     cfg.NamespaceRoot,
		Subsystem:         cfg.Subsystem,
		Mode:              cfg.Mode,
		DefaultExportName: cfg.DefaultExportName,
		Logger:            output.Logger,
	})
	if err != nil {
		return err
	}

	var result *flatten.Result
	err = output.RunWithSpinner(ctx, func() error {
		snapshot, loadErr := graph.LoadSnapshot(snapshotPath)
		if loadErr != nil {
			return loadErr
		}
		result, loadErr = pipeline.Run(snapshot)
		return loadErr
	}, output.WithTitle("Flattening "+snapshotPath+"..."))
	if err != nil {
		return err
	}

	path, err := emit.Write(cfg.OutDir, result.EntryName, cfg.Mode, result.Code)
	if err != nil {
		return err
	}
	output.EntryLogger(result.EntryName).Debug("artifact written",
		"path", path,
		"mode", cfg.Mode,
	)

	namespace := cfg.Namespace()
	if verboseFlag {
		for _, b := range result.Bindings {
			output.Println(output.FormatBindingLine(namespace, b.ExportName, b.LocalName, output.StatusBound))
		}
	}
	output.Println(output.FormatCheckmark(fmt.Sprintf(
		"wrote %s (%d exports, %d modules)", path, len(result.Bindings), result.ModuleCount,
	)))

	return nil
}

// mergedConfig applies build flags over the resolved config and
// validates the result before any graph work begins.
func mergedConfig(bf *buildFlags) (*config.Config, error) {
	cfg := *GetConfig()
	if bf.outDir != "" {
		cfg.OutDir = bf.outDir
	}
	if bf.namespaceRoot != "" {
		cfg.NamespaceRoot = bf.namespaceRoot
	}
	if bf.subsystem != "" {
		cfg.Subsystem = bf.subsystem
	}
	if bf.mode != "" {
		cfg.Mode = bf.mode
	}
	if bf.defaultExportName != "" {
		cfg.DefaultExportName = bf.defaultExportName
	}

	validator, err := config.NewValidator()
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
