// Package commands provides the civiclens CLI: the HTTP server plus offline tools for
// classifying descriptions, rendering reports and resolving locations.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand returns the civiclens command tree. Without a subcommand it serves the API.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "civiclens",
		Short: "Civic issue classification and routing service",
		Long: `Civic issue classification and routing service

Citizens describe a problem, civiclens classifies it, writes the municipal report and
routes it to the responsible department. Run without a subcommand to start the API.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(dispatchCmd())
	rootCmd.AddCommand(classifyCmd())
	rootCmd.AddCommand(departmentCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(geocodeCmd())

	return rootCmd
}
