package commands

import (
	"github.com/spf13/cobra"

	"github.com/cloudstrap/gcrun/cmd/gcrun/handlers"
)

// Image returns the command that pushes the image without touching other
// resources.
func Image() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "image",
		Short: "Pull, retag and push the service image",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Image(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", handlers.DefaultConfigPath, "Configuration file path")

	return cmd
}
