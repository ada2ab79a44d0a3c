// Package handlers implements the business logic for CLI commands.
//
// Handlers are framework-agnostic and testable independently of cobra;
// external collaborators are reached through package-level factory
// variables that tests replace.
package handlers

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/cloudstrap/gcrun/internal/config"
	"github.com/cloudstrap/gcrun/internal/gcp"
	"github.com/cloudstrap/gcrun/internal/image"
	"github.com/cloudstrap/gcrun/internal/provisioning"
	"github.com/cloudstrap/gcrun/internal/ui"
	"github.com/cloudstrap/gcrun/internal/util/prerequisites"
)

// DefaultConfigPath is where deploy looks for the configuration file.
const DefaultConfigPath = "gcrun.toml"

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newClient creates the provider client.
	newClient = func(ctx context.Context, project, region string) (gcp.Client, error) {
		return gcp.NewRealClient(ctx, project, region)
	}

	// loadConfigFile loads config from file.
	loadConfigFile = config.LoadFile

	// bootstrapConfig copies the template when the config is absent.
	bootstrapConfig = config.Bootstrap

	// confirm asks the operator a yes/no question.
	confirm = ui.Confirm

	// stdinInteractive reports whether prompts can be answered.
	stdinInteractive = ui.Interactive

	// checkDeployPrereqs verifies docker and gcloud are on PATH.
	checkDeployPrereqs = func() error { return prerequisites.CheckDeploy().Error() }

	// newRunner creates the command runner for image steps.
	newRunner = func() image.Runner { return image.ExecRunner{} }

	// newProvisioner creates the full phase sequence.
	newProvisioner = provisioning.NewProvisioner
)

// Deploy provisions the complete serving stack and deploys the image.
//
// The sequence is: configuration gate, prerequisite check, API activation,
// phase-ordered resource provisioning (with the database readiness wait),
// image pull/retag/push, service repoint, optional convergence re-apply,
// and finally the output summary.
func Deploy(ctx context.Context, configPath string) error {
	cfg, err := ensureConfig(configPath)
	if err != nil {
		return err
	}

	if err := checkDeployPrereqs(); err != nil {
		return err
	}

	client, err := newClient(ctx, cfg.ProjectID, cfg.Region)
	if err != nil {
		return err
	}

	if err := enableAPIs(ctx, client); err != nil {
		return err
	}

	pctx := provisioning.NewContext(cfg, client)
	if err := newProvisioner().Run(ctx, pctx); err != nil {
		return err
	}

	pusher := image.NewPusher(newRunner())
	deployRef, err := pusher.Push(ctx, cfg)
	if err != nil {
		return err
	}

	// Repoint the running service at the freshly pushed tag.
	if err := provisioning.NewServicePhaseWithImage(deployRef).Provision(ctx, pctx); err != nil {
		return err
	}

	reapply, err := confirm("Re-apply the service to verify convergence?", false)
	if err != nil {
		return err
	}
	if reapply {
		if err := provisioning.NewServicePhaseWithImage(deployRef).Provision(ctx, pctx); err != nil {
			return err
		}
	}

	printOutputs(cfg, pctx.State)
	return nil
}

// ensureConfig loads the configuration, bootstrapping it from the template
// first when absent. A bootstrapped file must be edited before the run
// continues, so the operator is gated on a confirm loop.
func ensureConfig(configPath string) (*config.Config, error) {
	created, err := bootstrapConfig(configPath, configPath+".template")
	if err != nil {
		return nil, err
	}

	if created {
		ui.Warning(fmt.Sprintf("created %s from template; edit it before continuing", configPath))
		for {
			ok, err := confirm(fmt.Sprintf("Have you edited %s and want to continue?", configPath), false)
			if err != nil {
				return nil, err
			}
			if ok {
				break
			}
			if !stdinInteractive() {
				return nil, fmt.Errorf("configuration at %s needs editing before deploy", configPath)
			}
		}
	}

	return loadConfigFile(configPath)
}

// enableAPIs activates the required project APIs. Individual failures do
// not abort the loop; if any remain at the end the operator decides
// whether to continue. Declining aborts before any resource is touched.
func enableAPIs(ctx context.Context, client gcp.ServiceEnabler) error {
	var failed []string
	for _, api := range config.RequiredAPIs {
		log.Info("enabling API", "api", api)
		if err := client.EnableAPI(ctx, api); err != nil {
			ui.Warning(fmt.Sprintf("failed to enable %s: %v", api, err))
			failed = append(failed, api)
		}
	}

	if len(failed) == 0 {
		return nil
	}

	ok, err := confirm(fmt.Sprintf("%d API(s) failed to enable. Continue anyway?", len(failed)), false)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("aborted: %d API(s) could not be enabled: %v", len(failed), failed)
	}
	ui.Warning("continuing with APIs left disabled; dependent steps may fail")
	return nil
}

func printOutputs(cfg *config.Config, state *provisioning.State) {
	out := state.Outputs(cfg)

	ui.Section("Deployment complete")
	ui.Field("Service URL", out.ServiceURL)
	ui.Field("Registry", out.RegistryURL)
	ui.Field("Service account", out.ServiceAccountEmail)
	ui.SensitiveField("Connection string", out.ConnectionString)
	ui.Success("stack is ready")
}
