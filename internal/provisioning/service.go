package provisioning

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/cloudstrap/gcrun/internal/config"
	"github.com/cloudstrap/gcrun/internal/gcp"
)

// ServicePhase converges the Cloud Run service on the desired spec. The
// image defaults to the :latest tag in the target registry;
// NewServicePhaseWithImage repoints the service at a freshly pushed tag.
type ServicePhase struct {
	image string
}

// NewServicePhase creates the service phase deploying the :latest tag.
func NewServicePhase() *ServicePhase {
	return &ServicePhase{}
}

// NewServicePhaseWithImage creates a service phase deploying a specific
// image reference. Used for the post-push repoint.
func NewServicePhaseWithImage(image string) *ServicePhase {
	return &ServicePhase{image: image}
}

// Name implements the Phase interface.
func (p *ServicePhase) Name() string {
	return "service"
}

// Provision implements the Phase interface.
func (p *ServicePhase) Provision(ctx context.Context, pctx *Context) error {
	cfg := pctx.Config

	image := p.image
	if image == "" {
		image = cfg.ImageRef("latest")
	}

	spec := gcp.ServiceSpec{
		Name:           cfg.ServiceName,
		Image:          image,
		Port:           cfg.Port,
		Env:            databaseEnv(cfg, pctx.State),
		ConnectionName: pctx.State.InstanceConnectionName,
		ServiceAccount: pctx.State.ServiceAccountEmail,
		CPULimit:       config.ServiceCPULimit,
		MemoryLimit:    config.ServiceMemoryLimit,
		MinScale:       config.ServiceMinScale,
		MaxScale:       config.ServiceMaxScale,
	}

	svc, err := pctx.Client.ApplyService(ctx, spec)
	if err != nil {
		return err
	}

	pctx.State.ServiceURL = svc.URL
	log.Info("service converged", "name", svc.Name, "image", image)
	return nil
}

// databaseEnv builds the six connection-parameter environment variables the
// container receives.
func databaseEnv(cfg *config.Config, state *State) map[string]string {
	return map[string]string{
		"DB_HOST":                  state.InstancePublicIP,
		"DB_PORT":                  "5432",
		"DB_NAME":                  cfg.Database,
		"DB_USER":                  cfg.DBUser,
		"DB_PASSWORD":              state.DBPassword,
		"INSTANCE_CONNECTION_NAME": state.InstanceConnectionName,
	}
}
