package handlers

import (
	"context"

	"github.com/cloudstrap/gcrun/internal/ui"
)

// Status prints the current state of the deployed stack without changing
// anything. Sensitive values are not derived here.
func Status(ctx context.Context, configPath string) error {
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return err
	}

	client, err := newClient(ctx, cfg.ProjectID, cfg.Region)
	if err != nil {
		return err
	}

	ui.Section("Stack status")

	status, err := client.InstanceStatus(ctx, cfg.InstanceName)
	if err != nil {
		return err
	}
	ui.Field("Database instance", string(status))

	svc, err := client.GetService(ctx, cfg.ServiceName)
	if err != nil {
		return err
	}
	if svc == nil {
		ui.Field("Service", "not deployed")
	} else {
		ui.Field("Service URL", svc.URL)
		ui.Field("Service image", svc.Image)
	}

	ui.Field("Registry", cfg.RegistryURL())
	ui.Field("Service account", cfg.ServiceAccountEmail())
	return nil
}
