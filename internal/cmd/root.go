package cmd

import (
	"github.com/spf13/cobra"

	"github.com/scriptbind/cli/internal/config"
	"github.com/scriptbind/cli/internal/output"
)

var (
	// Global flags
	configFlag     string
	verboseFlag    bool
	timestampsFlag bool

	// Resolved configuration (loaded during PersistentPreRunE)
	resolvedConfig *config.Config
)

// NewRootCmd creates the root command for the scriptbind CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scriptbind",
		Short: "Flatten bundled module graphs into one namespaced script",
		Long: `scriptbind flattens a resolved, multi-module build into a single
top-level script for hosts without a module system.

It consumes a graph snapshot dumped by the host bundler, resolves the
entry module's public export surface, strips loader-runtime artifacts,
and binds every exported symbol onto an explicit global namespace path.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Path to config file (env: SCRIPTBIND_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", false, "Show timestamps in log output")

	// Add subcommands
	rootCmd.AddCommand(NewBuildCmd())
	rootCmd.AddCommand(NewVetCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals loads configuration and sets up logging.
func initializeGlobals(cmd *cobra.Command) error {
	loader := config.NewLoader()
	cfg, loadErr := loader.LoadWithDefaults(configFlag)
	if loadErr != nil {
		// Commands that don't need config still work; the error is
		// reported once logging is configured below.
		cfg = config.DefaultConfig()
	}
	resolvedConfig = cfg

	logCfg := output.LogConfig{Verbose: verboseFlag}
	// Level precedence: --verbose > config.
	if !verboseFlag {
		logCfg.Level = cfg.Log.Level
	}
	// Timestamps precedence: flag (if explicitly set) > config > default.
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestampsFlag)
	} else if cfg.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	if loadErr != nil {
		output.Debug("config load error", "error", loadErr)
	}

	if verboseFlag {
		output.Debug("initializing CLI",
			"config", configFlag,
			"namespaceRoot", cfg.NamespaceRoot,
			"subsystem", cfg.Subsystem,
			"mode", cfg.Mode,
		)
	}

	return nil
}

// GetConfig returns the resolved configuration.
func GetConfig() *config.Config {
	if resolvedConfig == nil {
		return config.DefaultConfig()
	}
	return resolvedConfig
}
