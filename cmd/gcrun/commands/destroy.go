package commands

import (
	"github.com/spf13/cobra"

	"github.com/cloudstrap/gcrun/cmd/gcrun/handlers"
)

// Destroy returns the command that tears down the provisioned stack.
func Destroy() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Delete every resource the deploy sequence manages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Destroy(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", handlers.DefaultConfigPath, "Configuration file path")

	return cmd
}
