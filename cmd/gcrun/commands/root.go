// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing and flag binding. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the gcrun CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gcrun",
		Short: "Provision a Cloud Run service backed by Cloud SQL",
	}

	cmd.AddCommand(Init())
	cmd.AddCommand(Deploy())
	cmd.AddCommand(Status())
	cmd.AddCommand(Image())
	cmd.AddCommand(Destroy())
	cmd.AddCommand(Version())

	return cmd
}
