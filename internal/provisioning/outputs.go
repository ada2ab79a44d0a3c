package provisioning

import (
	"fmt"

	"github.com/cloudstrap/gcrun/internal/config"
)

// Outputs are the values surfaced to the operator after a successful run.
type Outputs struct {
	ServiceURL          string
	RegistryURL         string
	ServiceAccountEmail string

	// ConnectionString embeds the database credential. Treat as sensitive:
	// print once, never log.
	ConnectionString string
}

// Outputs derives the operator-facing outputs from the run state.
func (s *State) Outputs(cfg *config.Config) Outputs {
	return Outputs{
		ServiceURL:          s.ServiceURL,
		RegistryURL:         s.RegistryURL,
		ServiceAccountEmail: s.ServiceAccountEmail,
		ConnectionString: fmt.Sprintf("postgres://%s:%s@%s:5432/%s",
			cfg.DBUser, s.DBPassword, s.InstancePublicIP, cfg.Database),
	}
}
