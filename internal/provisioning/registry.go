package provisioning

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/cloudstrap/gcrun/internal/gcp"
)

// RegistryPhase ensures the Artifact Registry repository exists and the
// runtime service account can push to it.
type RegistryPhase struct{}

// NewRegistryPhase creates the registry phase.
func NewRegistryPhase() *RegistryPhase {
	return &RegistryPhase{}
}

// Name implements the Phase interface.
func (p *RegistryPhase) Name() string {
	return "registry"
}

// Provision implements the Phase interface.
func (p *RegistryPhase) Provision(ctx context.Context, pctx *Context) error {
	cfg := pctx.Config

	_, created, err := gcp.EnsureResource(ctx, cfg.Repository, gcp.EnsureFuncs[gcp.Repository]{
		Get: pctx.Client.GetRepository,
		Create: func(ctx context.Context) (*gcp.Repository, error) {
			if err := pctx.Client.CreateRepository(ctx, cfg.Repository); err != nil {
				return nil, err
			}
			return &gcp.Repository{Name: cfg.Repository}, nil
		},
	})
	if err != nil {
		return err
	}
	if created {
		log.Info("created repository", "name", cfg.Repository)
	}

	member := "serviceAccount:" + pctx.State.ServiceAccountEmail
	if err := pctx.Client.GrantRepositoryWriter(ctx, cfg.Repository, member); err != nil {
		return err
	}

	pctx.State.RegistryURL = cfg.RegistryURL()
	return nil
}
