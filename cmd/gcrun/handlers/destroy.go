package handlers

import (
	"context"
	"fmt"

	"github.com/cloudstrap/gcrun/internal/config"
	"github.com/cloudstrap/gcrun/internal/gcp"
	"github.com/cloudstrap/gcrun/internal/provisioning"
)

// Destroyer interface for testing - matches provisioning.Destroyer.
type Destroyer interface {
	Destroy(ctx context.Context) error
}

// newDestroyer creates the resource destroyer (for testing injection).
var newDestroyer = func(cfg *config.Config, client gcp.Client) Destroyer {
	return provisioning.NewDestroyer(cfg, client)
}

// Destroy tears down every resource the deploy sequence manages, after an
// explicit confirmation.
func Destroy(ctx context.Context, configPath string) error {
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return err
	}

	ok, err := confirm(fmt.Sprintf("Delete the %s stack in project %s? This removes billable resources.", cfg.ServiceName, cfg.ProjectID), false)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("destroy aborted")
	}

	client, err := newClient(ctx, cfg.ProjectID, cfg.Region)
	if err != nil {
		return err
	}

	return newDestroyer(cfg, client).Destroy(ctx)
}
