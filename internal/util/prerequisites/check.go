// Package prerequisites verifies the operator's client tools before any
// imperative step shells out to them.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tool represents a client tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string
}

// DeployTools returns the tools the deploy sequence shells out to.
func DeployTools() []Tool {
	return []Tool{
		{
			Name:        "docker",
			Required:    true,
			Description: "Required for pulling, retagging and pushing the service image",
			InstallURL:  "https://docs.docker.com/get-docker/",
		},
		{
			Name:        "gcloud",
			Required:    true,
			Description: "Required for registry authentication and ambient credentials",
			InstallURL:  "https://cloud.google.com/sdk/docs/install",
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool  Tool
	Found bool
	Path  string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// Error returns an error if any required tools are missing, nil otherwise.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallURL))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check verifies that the specified tools are available on PATH.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := exec.LookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// CheckDeploy checks the tools the deploy sequence needs.
func CheckDeploy() *CheckResults {
	return Check(DeployTools())
}
