package commands

import (
	"github.com/spf13/cobra"

	"github.com/cloudstrap/gcrun/cmd/gcrun/handlers"
)

// Deploy returns the command that provisions the full serving stack.
//
// The deploy sequence enables the required project APIs, converges the
// service account, registry, IAM bindings, database instance, logical
// database, database user, Cloud Run service and public-access binding in
// dependency order, then pushes the configured image and points the
// service at it.
//
// Flags:
//
//	--config, -c: Path to the configuration file (default "gcrun.toml")
func Deploy() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Provision the stack and deploy the image",
		Long: `Provision the complete serving stack and deploy the image.

Resources are applied in dependency order and converge on re-runs:
anything that already exists is adopted, anything missing is created.
A freshly created database instance is waited on until it is ready
to accept dependent resources.

All input comes from the configuration file; missing configuration is
bootstrapped from ` + "`<config>.template`" + ` and gated on an
interactive confirmation.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", handlers.DefaultConfigPath, "Configuration file path")

	return cmd
}
