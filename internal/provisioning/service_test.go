package provisioning

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudstrap/gcrun/internal/gcp"
)

func TestServicePhase_SpecFromState(t *testing.T) {
	t.Parallel()
	var got gcp.ServiceSpec

	client := &gcp.MockClient{
		ApplyServiceFunc: func(_ context.Context, spec gcp.ServiceSpec) (*gcp.Service, error) {
			got = spec
			return &gcp.Service{Name: spec.Name, URL: "https://app-xyz.a.run.app"}, nil
		},
	}

	pctx := NewContext(fullConfig(), client)
	pctx.State.ServiceAccountEmail = "app-runner@p1.iam.gserviceaccount.com"
	pctx.State.InstanceConnectionName = "p1:us-central1:app-db"
	pctx.State.InstancePublicIP = "10.0.0.7"
	pctx.State.DBPassword = "hunter2"

	require.NoError(t, NewServicePhase().Provision(context.Background(), pctx))

	assert.Equal(t, "app", got.Name)
	assert.Equal(t, "us-central1-docker.pkg.dev/p1/app-images/app:latest", got.Image)
	assert.Equal(t, 3000, got.Port)
	assert.Equal(t, "1", got.CPULimit)
	assert.Equal(t, "512Mi", got.MemoryLimit)
	assert.Equal(t, 0, got.MinScale)
	assert.Equal(t, 10, got.MaxScale)
	assert.Equal(t, "app-runner@p1.iam.gserviceaccount.com", got.ServiceAccount)

	// The six connection parameters the container receives.
	assert.Equal(t, map[string]string{
		"DB_HOST":                  "10.0.0.7",
		"DB_PORT":                  "5432",
		"DB_NAME":                  "app",
		"DB_USER":                  "app",
		"DB_PASSWORD":              "hunter2",
		"INSTANCE_CONNECTION_NAME": "p1:us-central1:app-db",
	}, got.Env)

	assert.Equal(t, "https://app-xyz.a.run.app", pctx.State.ServiceURL)
}

func TestServicePhase_ExplicitImage(t *testing.T) {
	t.Parallel()
	var got gcp.ServiceSpec

	client := &gcp.MockClient{
		ApplyServiceFunc: func(_ context.Context, spec gcp.ServiceSpec) (*gcp.Service, error) {
			got = spec
			return &gcp.Service{Name: spec.Name}, nil
		},
	}

	pctx := NewContext(fullConfig(), client)
	phase := NewServicePhaseWithImage("us-central1-docker.pkg.dev/p1/app-images/app:20260824-120000")

	require.NoError(t, phase.Provision(context.Background(), pctx))
	assert.Equal(t, "us-central1-docker.pkg.dev/p1/app-images/app:20260824-120000", got.Image)
}
