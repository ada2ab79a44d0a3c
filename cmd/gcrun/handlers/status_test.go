package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudstrap/gcrun/internal/gcp"
)

func TestStatus_DeployedStack(t *testing.T) {
	client := readyStackClient()
	client.GetServiceFunc = func(context.Context, string) (*gcp.Service, error) {
		return &gcp.Service{Name: "app", Image: "img:tag", URL: "https://app-xyz.a.run.app"}, nil
	}
	stubDeployFactories(t, client)

	require.NoError(t, Status(context.Background(), "gcrun.toml"))
	assert.Contains(t, client.Calls, "InstanceStatus:app-db")
	assert.Contains(t, client.Calls, "GetService:app")
}

func TestStatus_NothingDeployed(t *testing.T) {
	client := &gcp.MockClient{
		InstanceStatusFunc: func(context.Context, string) (gcp.InstanceStatus, error) {
			return gcp.StatusNotFound, nil
		},
	}
	stubDeployFactories(t, client)

	require.NoError(t, Status(context.Background(), "gcrun.toml"))
}

func TestStatus_ClientError(t *testing.T) {
	client := readyStackClient()
	client.InstanceStatusFunc = func(context.Context, string) (gcp.InstanceStatus, error) {
		return "", errors.New("api unreachable")
	}
	stubDeployFactories(t, client)

	err := Status(context.Background(), "gcrun.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable")
}
