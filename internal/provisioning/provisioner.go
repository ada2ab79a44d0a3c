package provisioning

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
)

// Provisioner runs the provisioning phases in dependency order.
type Provisioner struct {
	phases []Phase
}

// NewProvisioner creates a provisioner with the default phase order:
// account, registry, IAM, database, service, public access.
func NewProvisioner() *Provisioner {
	return &Provisioner{
		phases: []Phase{
			NewAccountPhase(),
			NewRegistryPhase(),
			NewIAMPhase(),
			NewDatabasePhase(),
			NewServicePhase(),
			NewAccessPhase(),
		},
	}
}

// NewProvisionerWithPhases creates a provisioner over an explicit phase
// list.
func NewProvisionerWithPhases(phases ...Phase) *Provisioner {
	return &Provisioner{phases: phases}
}

// Run executes every phase in order, aborting on the first failure.
func (p *Provisioner) Run(ctx context.Context, pctx *Context) error {
	for _, phase := range p.phases {
		log.Info("provisioning", "phase", phase.Name())
		if err := phase.Provision(ctx, pctx); err != nil {
			return fmt.Errorf("phase %s failed: %w", phase.Name(), err)
		}
	}
	return nil
}
