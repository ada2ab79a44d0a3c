package gcp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	run "google.golang.org/api/run/v1"
)

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	assert.True(t, isNotFound(&googleapi.Error{Code: 404}))
	assert.True(t, isNotFound(fmt.Errorf("wrapped: %w", &googleapi.Error{Code: 404})))
	assert.False(t, isNotFound(&googleapi.Error{Code: 403}))
	assert.False(t, isNotFound(errors.New("plain")))
	assert.False(t, isNotFound(nil))
}

func TestBuildServiceManifest(t *testing.T) {
	t.Parallel()

	spec := ServiceSpec{
		Name:           "app",
		Image:          "us-central1-docker.pkg.dev/p1/app-images/app:latest",
		Port:           3000,
		Env:            map[string]string{"DB_NAME": "app", "DB_HOST": "1.2.3.4"},
		ConnectionName: "p1:us-central1:app-db",
		ServiceAccount: "app-runner@p1.iam.gserviceaccount.com",
		CPULimit:       "1",
		MemoryLimit:    "512Mi",
		MinScale:       0,
		MaxScale:       10,
	}

	svc := buildServiceManifest("p1", spec)

	assert.Equal(t, "serving.knative.dev/v1", svc.ApiVersion)
	assert.Equal(t, "app", svc.Metadata.Name)
	assert.Equal(t, "p1", svc.Metadata.Namespace)

	tmpl := svc.Spec.Template
	assert.Equal(t, "0", tmpl.Metadata.Annotations["autoscaling.knative.dev/minScale"])
	assert.Equal(t, "10", tmpl.Metadata.Annotations["autoscaling.knative.dev/maxScale"])
	assert.Equal(t, "p1:us-central1:app-db", tmpl.Metadata.Annotations["run.googleapis.com/cloudsql-instances"])
	assert.Equal(t, "app-runner@p1.iam.gserviceaccount.com", tmpl.Spec.ServiceAccountName)

	require.Len(t, tmpl.Spec.Containers, 1)
	container := tmpl.Spec.Containers[0]
	assert.Equal(t, spec.Image, container.Image)
	require.Len(t, container.Ports, 1)
	assert.Equal(t, int64(3000), container.Ports[0].ContainerPort)
	assert.Equal(t, "1", container.Resources.Limits["cpu"])
	assert.Equal(t, "512Mi", container.Resources.Limits["memory"])

	// Env vars are emitted in sorted order for stable diffs.
	require.Len(t, container.Env, 2)
	assert.Equal(t, "DB_HOST", container.Env[0].Name)
	assert.Equal(t, "DB_NAME", container.Env[1].Name)
}

func TestAddInvokerBinding(t *testing.T) {
	t.Parallel()

	t.Run("empty policy gains the binding", func(t *testing.T) {
		t.Parallel()
		policy := &run.Policy{}

		require.True(t, addInvokerBinding(policy))
		require.Len(t, policy.Bindings, 1)
		assert.Equal(t, "roles/run.invoker", policy.Bindings[0].Role)
		assert.Equal(t, []string{"allUsers"}, policy.Bindings[0].Members)
	})

	t.Run("existing bindings are preserved", func(t *testing.T) {
		t.Parallel()
		policy := &run.Policy{
			Bindings: []*run.Binding{
				{Role: "roles/run.admin", Members: []string{"user:ops@example.com"}},
				{Role: "roles/run.invoker", Members: []string{"serviceAccount:ci@p1.iam.gserviceaccount.com"}},
			},
		}

		require.True(t, addInvokerBinding(policy))
		require.Len(t, policy.Bindings, 2)
		assert.Equal(t, []string{"user:ops@example.com"}, policy.Bindings[0].Members)
		assert.Equal(t,
			[]string{"serviceAccount:ci@p1.iam.gserviceaccount.com", "allUsers"},
			policy.Bindings[1].Members)
	})

	t.Run("already public is a no-op", func(t *testing.T) {
		t.Parallel()
		policy := &run.Policy{
			Bindings: []*run.Binding{
				{Role: "roles/run.invoker", Members: []string{"allUsers"}},
			},
		}

		assert.False(t, addInvokerBinding(policy))
		require.Len(t, policy.Bindings, 1)
		assert.Equal(t, []string{"allUsers"}, policy.Bindings[0].Members)
	})
}

func TestConvertService(t *testing.T) {
	t.Parallel()

	svc := &run.Service{
		Metadata: &run.ObjectMeta{Name: "app"},
		Spec: &run.ServiceSpec{
			Template: &run.RevisionTemplate{
				Spec: &run.RevisionSpec{
					Containers: []*run.Container{{Image: "img:tag"}},
				},
			},
		},
		Status: &run.ServiceStatus{Url: "https://app-xyz.a.run.app"},
	}

	got := convertService(svc)
	assert.Equal(t, "app", got.Name)
	assert.Equal(t, "img:tag", got.Image)
	assert.Equal(t, "https://app-xyz.a.run.app", got.URL)

	// Partial manifests (fresh create responses) must not panic.
	empty := convertService(&run.Service{})
	assert.Empty(t, empty.Name)
	assert.Empty(t, empty.URL)
}
