package commands

import (
	"github.com/spf13/cobra"

	"github.com/cloudstrap/gcrun/cmd/gcrun/handlers"
)

// Init returns the command that writes the configuration template.
//
// Flags:
//
//	--output, -o: Path to output file (default "gcrun.toml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file to edit",
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Init(outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", handlers.DefaultConfigPath, "Output file path")

	return cmd
}
