package prerequisites

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_ToolFound(t *testing.T) {
	t.Parallel()
	// `go` is guaranteed to exist wherever the tests run.
	results := Check([]Tool{{Name: "go", Required: true}})

	require.Len(t, results.Results, 1)
	assert.True(t, results.Results[0].Found)
	assert.NotEmpty(t, results.Results[0].Path)
	assert.NoError(t, results.Error())
}

func TestCheck_RequiredToolMissing(t *testing.T) {
	t.Parallel()
	results := Check([]Tool{{
		Name:       "definitely-not-a-real-binary-name",
		Required:   true,
		InstallURL: "https://example.com/install",
	}})

	require.Len(t, results.Missing, 1)
	err := results.Error()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "definitely-not-a-real-binary-name")
	assert.Contains(t, err.Error(), "https://example.com/install")
}

func TestCheck_OptionalToolMissing(t *testing.T) {
	t.Parallel()
	results := Check([]Tool{{Name: "definitely-not-a-real-binary-name", Required: false}})

	assert.Len(t, results.Missing, 1)
	assert.NoError(t, results.Error(), "optional tools never fail the check")
}

func TestDeployTools(t *testing.T) {
	t.Parallel()
	tools := DeployTools()

	names := make([]string, len(tools))
	for i, tool := range tools {
		names[i] = tool.Name
		assert.True(t, tool.Required)
	}
	assert.Equal(t, []string{"docker", "gcloud"}, names)
}
