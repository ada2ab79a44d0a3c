package provisioning

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/cloudstrap/gcrun/internal/config"
	"github.com/cloudstrap/gcrun/internal/gcp"
)

// Destroyer tears down the resources the provisioner manages, in reverse
// dependency order. Absent resources are skipped, so a partially
// provisioned stack can be destroyed too.
type Destroyer struct {
	cfg    *config.Config
	client gcp.Client
}

// NewDestroyer creates a destroyer for the configured stack.
func NewDestroyer(cfg *config.Config, client gcp.Client) *Destroyer {
	return &Destroyer{cfg: cfg, client: client}
}

// Destroy deletes the service, instance, repository and service account.
// Project-level IAM bindings for the account are cleaned up by the provider
// when the account is deleted.
func (d *Destroyer) Destroy(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"service", func(ctx context.Context) error {
			return d.client.DeleteService(ctx, d.cfg.ServiceName)
		}},
		{"database instance", func(ctx context.Context) error {
			return d.client.DeleteInstance(ctx, d.cfg.InstanceName)
		}},
		{"repository", func(ctx context.Context) error {
			return d.client.DeleteRepository(ctx, d.cfg.Repository)
		}},
		{"service account", func(ctx context.Context) error {
			return d.client.DeleteServiceAccount(ctx, d.cfg.ServiceAccountEmail())
		}},
	}

	for _, step := range steps {
		log.Info("deleting", "resource", step.name)
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("failed to delete %s: %w", step.name, err)
		}
	}
	return nil
}
