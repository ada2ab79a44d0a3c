package commands

import (
	"github.com/spf13/cobra"

	"github.com/cloudstrap/gcrun/cmd/gcrun/handlers"
)

// Status returns the command that reports the state of the deployed stack.
func Status() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the state of the deployed stack",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", handlers.DefaultConfigPath, "Configuration file path")

	return cmd
}
