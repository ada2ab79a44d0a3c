package provisioning

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudstrap/gcrun/internal/gcp"
	"github.com/cloudstrap/gcrun/internal/retry"
)

// fastDatabasePhase returns a database phase with all waits stubbed out.
func fastDatabasePhase() *DatabasePhase {
	return &DatabasePhase{
		sleep:    func(context.Context, time.Duration) error { return nil },
		pollOpts: []retry.PollOption{retry.WithSleep(func(context.Context, time.Duration) error { return nil })},
	}
}

func TestProvisioner_PhaseOrder(t *testing.T) {
	instanceExists := false
	client := &gcp.MockClient{}
	client.GetInstanceFunc = func(context.Context, string) (*gcp.DatabaseInstance, error) {
		if !instanceExists {
			return nil, nil
		}
		return &gcp.DatabaseInstance{
			Name:           "app-db",
			Status:         gcp.StatusRunnable,
			ConnectionName: "p1:us-central1:app-db",
			PublicIP:       "10.0.0.7",
		}, nil
	}
	client.CreateInstanceFunc = func(context.Context, gcp.InstanceSpec) error {
		instanceExists = true
		return nil
	}
	pctx := NewContext(fullConfig(), client)

	p := NewProvisionerWithPhases(
		NewAccountPhase(),
		NewRegistryPhase(),
		NewIAMPhase(),
		fastDatabasePhase(),
		NewServicePhase(),
		NewAccessPhase(),
	)

	t.Setenv(PasswordEnv, "hunter2")
	require.NoError(t, p.Run(context.Background(), pctx))

	// Dependency order: account before registry binding, instance before
	// database and user, service before public access.
	assert.Less(t, callIndex(t, client, "CreateServiceAccount:app-runner"), callIndex(t, client, "GrantRepositoryWriter:app-images"))
	assert.Less(t, callIndex(t, client, "CreateRepository:app-images"), callIndex(t, client, "CreateInstance:app-db"))
	assert.Less(t, callIndex(t, client, "CreateInstance:app-db"), callIndex(t, client, "CreateDatabase:app"))
	assert.Less(t, callIndex(t, client, "CreateDatabase:app"), callIndex(t, client, "CreateUser:app"))
	assert.Less(t, callIndex(t, client, "CreateUser:app"), callIndex(t, client, "ApplyService:app"))
	assert.Less(t, callIndex(t, client, "ApplyService:app"), callIndex(t, client, "AllowUnauthenticated:app"))

	assert.NotEmpty(t, pctx.State.ServiceURL)
	assert.Equal(t, "us-central1-docker.pkg.dev/p1/app-images", pctx.State.RegistryURL)
}

func TestProvisioner_AbortsOnPhaseFailure(t *testing.T) {
	t.Parallel()
	boom := errors.New("denied")

	client := &gcp.MockClient{
		CreateServiceAccountFunc: func(context.Context, string, string) (*gcp.ServiceAccount, error) {
			return nil, boom
		},
	}
	pctx := NewContext(fullConfig(), client)

	p := NewProvisionerWithPhases(NewAccountPhase(), NewRegistryPhase())
	err := p.Run(context.Background(), pctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "phase service-account failed")
	assert.NotContains(t, client.Calls, "GetRepository:app-images", "later phases must not run")
}

func callIndex(t *testing.T, client *gcp.MockClient, call string) int {
	t.Helper()
	for i, c := range client.Calls {
		if c == call {
			return i
		}
	}
	t.Fatalf("call %q not recorded; calls: %v", call, client.Calls)
	return -1
}
