package provisioning

import (
	"context"
)

// AccessPhase makes the service publicly invokable.
type AccessPhase struct{}

// NewAccessPhase creates the public access phase.
func NewAccessPhase() *AccessPhase {
	return &AccessPhase{}
}

// Name implements the Phase interface.
func (p *AccessPhase) Name() string {
	return "public-access"
}

// Provision implements the Phase interface.
func (p *AccessPhase) Provision(ctx context.Context, pctx *Context) error {
	return pctx.Client.AllowUnauthenticated(ctx, pctx.Config.ServiceName)
}
