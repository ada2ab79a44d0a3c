// Package provisioning sequences the creation of the managed serving stack:
// service account, registry, IAM bindings, database instance and children,
// Cloud Run service, public access.
//
// Phases run strictly in dependency order and are individually convergent,
// so a failed run can simply be re-run. Nothing is rolled back.
package provisioning

import (
	"context"

	"github.com/cloudstrap/gcrun/internal/config"
	"github.com/cloudstrap/gcrun/internal/gcp"
)

// Phase is one step of the provisioning sequence.
type Phase interface {
	// Name identifies the phase in logs and diagnostics.
	Name() string

	// Provision converges the phase's resources on the desired state.
	Provision(ctx context.Context, pctx *Context) error
}

// State accumulates identifiers produced by earlier phases for later ones.
type State struct {
	ServiceAccountEmail    string
	RegistryURL            string
	InstanceConnectionName string
	InstancePublicIP       string
	DBPassword             string
	ServiceURL             string
}

// Context is passed through every phase of a run.
type Context struct {
	Config *config.Config
	Client gcp.Client
	State  *State
}

// NewContext creates a run context with empty state.
func NewContext(cfg *config.Config, client gcp.Client) *Context {
	return &Context{
		Config: cfg,
		Client: client,
		State:  &State{},
	}
}
