package provisioning

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/cloudstrap/gcrun/internal/gcp"
)

// AccountPhase ensures the runtime service account exists.
type AccountPhase struct{}

// NewAccountPhase creates the service account phase.
func NewAccountPhase() *AccountPhase {
	return &AccountPhase{}
}

// Name implements the Phase interface.
func (p *AccountPhase) Name() string {
	return "service-account"
}

// Provision implements the Phase interface.
func (p *AccountPhase) Provision(ctx context.Context, pctx *Context) error {
	cfg := pctx.Config
	email := cfg.ServiceAccountEmail()

	sa, created, err := gcp.EnsureResource(ctx, email, gcp.EnsureFuncs[gcp.ServiceAccount]{
		Get: pctx.Client.GetServiceAccount,
		Create: func(ctx context.Context) (*gcp.ServiceAccount, error) {
			return pctx.Client.CreateServiceAccount(ctx, cfg.ServiceAccountID(), cfg.ServiceName+" runtime")
		},
	})
	if err != nil {
		return err
	}

	if created {
		log.Info("created service account", "email", sa.Email)
	}
	pctx.State.ServiceAccountEmail = sa.Email
	return nil
}
