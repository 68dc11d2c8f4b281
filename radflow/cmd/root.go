// Package cmd provides the command-line interface for radflow.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/radflow/validation"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "radflow",
		Short: "radflow compiles RAD cluster configurations into RAD-Sim inputs.",
		Long: `radflow reads the YAML configuration of one or more RAD designs and ` +
			`generates the BookSim descriptors, the shared defines header, the knob ` +
			`table and the simulator entry point, then prepares the CMake build.`,
		SilenceUsage: true,
	}

	root.AddCommand(newConfigureCmd(), newParamsCmd(), newManifestCmd())

	return root
}

// Execute runs the command line and exits with the status the error maps
// to. A block-count mismatch exits with -1.
func Execute() {
	err := newRootCmd().Execute()
	atexit.Exit(validation.ExitCode(err))
}
