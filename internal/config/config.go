// Package config defines the deployment configuration and its TOML loader.
//
// The configuration file is a flat key = "value" TOML document. Only
// project_id is required; everything else falls back to defaults chosen to
// match the managed stack this tool provisions (Cloud SQL + Artifact
// Registry + Cloud Run).
package config

import (
	"fmt"
)

// Config is the deployment configuration.
type Config struct {
	// ProjectID is the target Google Cloud project. Required.
	ProjectID string `toml:"project_id"`

	// Region is the location for regional resources.
	Region string `toml:"region"`

	// Zone is the default compute zone.
	Zone string `toml:"zone"`

	// ServiceName is the Cloud Run service name.
	ServiceName string `toml:"service_name"`

	// Repository is the Artifact Registry repository name.
	Repository string `toml:"repository"`

	// InstanceName is the Cloud SQL instance name.
	InstanceName string `toml:"instance_name"`

	// Database is the logical database name.
	Database string `toml:"database"`

	// DBUser is the database user name.
	DBUser string `toml:"db_user"`

	// SourceImage is the upstream image tag pulled, retagged and pushed
	// into the target registry.
	SourceImage string `toml:"source_image"`

	// Port is the container port the service listens on.
	Port int `toml:"port"`
}

// applyDefaults fills in every optional field that was left empty.
func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.Zone == "" {
		c.Zone = DefaultZone
	}
	if c.ServiceName == "" {
		c.ServiceName = DefaultServiceName
	}
	if c.Repository == "" {
		c.Repository = DefaultRepository
	}
	if c.InstanceName == "" {
		c.InstanceName = DefaultInstanceName
	}
	if c.Database == "" {
		c.Database = DefaultDatabase
	}
	if c.DBUser == "" {
		c.DBUser = DefaultDBUser
	}
	if c.SourceImage == "" {
		c.SourceImage = DefaultSourceImage
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
}

// Validate checks the configuration for required values and obvious mistakes.
func (c *Config) Validate() error {
	if c.ProjectID == "" {
		return fmt.Errorf("project_id is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	return nil
}

// RegistryHost returns the regional Artifact Registry docker endpoint.
func (c *Config) RegistryHost() string {
	return c.Region + "-docker.pkg.dev"
}

// RegistryURL returns the full repository URL images are pushed under.
func (c *Config) RegistryURL() string {
	return fmt.Sprintf("%s/%s/%s", c.RegistryHost(), c.ProjectID, c.Repository)
}

// ImageRef returns the registry reference for the service image at the
// given tag.
func (c *Config) ImageRef(tag string) string {
	return fmt.Sprintf("%s/%s:%s", c.RegistryURL(), c.ServiceName, tag)
}

// ConnectionName returns the Cloud SQL instance connection name used by the
// Cloud Run SQL proxy annotation.
func (c *Config) ConnectionName() string {
	return fmt.Sprintf("%s:%s:%s", c.ProjectID, c.Region, c.InstanceName)
}

// ServiceAccountID returns the short account id of the runtime service
// account.
func (c *Config) ServiceAccountID() string {
	return c.ServiceName + "-runner"
}

// ServiceAccountEmail returns the full email of the runtime service account.
func (c *Config) ServiceAccountEmail() string {
	return fmt.Sprintf("%s@%s.iam.gserviceaccount.com", c.ServiceAccountID(), c.ProjectID)
}
