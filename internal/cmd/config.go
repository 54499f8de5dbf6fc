package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/scriptbind/cli/internal/config"
	"github.com/scriptbind/cli/internal/output"
)

// NewConfigCmd creates the config parent command.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage scriptbind configuration",
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigVetCmd())

	return cmd
}

// newConfigInitCmd creates the config init command.
func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long:  `Write a default configuration file to ~/.scriptbind/config.yaml (or --config).`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

// runConfigInit executes the config init command.
func runConfigInit(force bool) error {
	path := configFlag
	if path == "" {
		var err error
		path, err = config.GetConfigFile()
		if err != nil {
			return err
		}
	}

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return err
	}
	if exists && !force {
		return NewExitError(
			fmt.Errorf("config file %s already exists (use --force to overwrite)", path),
			ExitGeneralError,
		)
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}

	expanded, err := config.ExpandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(expanded, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	output.Println(output.FormatCheckmark("wrote " + expanded))
	return nil
}

// newConfigVetCmd creates the config vet command.
func newConfigVetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigVet()
		},
	}
}

// runConfigVet executes the config vet command.
func runConfigVet() error {
	validator, err := config.NewValidator()
	if err != nil {
		return err
	}

	if err := validator.ValidateFile(configFlag); err != nil {
		return NewExitError(err, ExitValidationError)
	}

	output.Println(output.FormatCheckmark("config is valid"))
	return nil
}
