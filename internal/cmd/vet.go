package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scriptbind/cli/internal/flatten"
	"github.com/scriptbind/cli/internal/graph"
	"github.com/scriptbind/cli/internal/output"
)

// NewVetCmd creates the vet command.
func NewVetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vet <snapshot.json>",
		Short: "Check a graph snapshot without emitting anything",
		Long: `Run the pre-emission checks over a graph snapshot: entry point
cardinality, wildcard and aliased re-export detection, and export
surface resolution. Nothing is written.

Exit code 2 signals a violation; the message names the offending module
and how to fix it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVet(args[0])
		},
	}
}

// runVet executes the vet command.
func runVet(snapshotPath string) error {
	cfg := GetConfig()

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

	snapshot, err := graph.LoadSnapshot(snapshotPath)
	if err != nil {
		return err
	}

	result, err := pipeline.Vet(snapshot)
	if err != nil {
		return err
	}

	namespace := cfg.Namespace()
	for _, b := range result.Bindings {
		output.Println(output.FormatBindingLine(namespace, b.ExportName, b.LocalName, output.StatusBound))
	}
	output.Println(output.FormatCheckmark(fmt.Sprintf(
		"entry %q: %d exports resolvable, %d modules reachable",
		result.EntryName, len(result.Bindings), result.ModuleCount,
	)))

	return nil
}
