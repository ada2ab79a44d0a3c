package provisioning

import (
	"context"

	"github.com/cloudstrap/gcrun/internal/config"
)

// IAMPhase grants the runtime service account its project-level roles.
type IAMPhase struct{}

// NewIAMPhase creates the IAM phase.
func NewIAMPhase() *IAMPhase {
	return &IAMPhase{}
}

// Name implements the Phase interface.
func (p *IAMPhase) Name() string {
	return "iam-bindings"
}

// Provision implements the Phase interface.
func (p *IAMPhase) Provision(ctx context.Context, pctx *Context) error {
	member := "serviceAccount:" + pctx.State.ServiceAccountEmail
	for _, role := range config.ProjectRoles {
		if err := pctx.Client.GrantProjectRole(ctx, member, role); err != nil {
			return err
		}
	}
	return nil
}
