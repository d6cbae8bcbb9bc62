// Package cmd holds the cordial-cms command line
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cordial-cms",
		Short: "CoRDial CMS persona dashboard",
		Long: `cordial-cms serves the persona dashboard for the CoRDial care robot backend.

Run "cordial-cms serve" to start the web server. The medication and personas
commands work offline or against a running backend.`,
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newMedicationCmd(), newPersonasCmd())
	return root
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		zap.S().With(err).Debug("command failed")
		os.Exit(1)
	}
}
