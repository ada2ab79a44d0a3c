// Package gcp wraps the Google Cloud APIs this tool provisions against.
//
// Each concern gets its own narrow interface so callers depend only on the
// operations they sequence; RealClient implements all of them over
// google.golang.org/api, and the Mock* types back the tests.
package gcp

import (
	"context"
)

// ServiceEnabler activates project APIs.
type ServiceEnabler interface {
	// EnableAPI enables a single project API. Attempts are independent of
	// each other; the caller decides whether a failure is fatal.
	EnableAPI(ctx context.Context, api string) error
}

// SQLAdmin manages the Cloud SQL instance and its children.
type SQLAdmin interface {
	// GetInstance returns the instance, or (nil, nil) when it does not exist.
	GetInstance(ctx context.Context, name string) (*DatabaseInstance, error)

	// CreateInstance starts creation of an instance. The instance is not
	// ready when this returns; poll InstanceStatus until it is.
	CreateInstance(ctx context.Context, spec InstanceSpec) error

	// DeleteInstance deletes the instance. Absent instances are no-ops.
	DeleteInstance(ctx context.Context, name string) error

	// InstanceStatus samples the instance state. Returns StatusNotFound
	// when the instance does not exist.
	InstanceStatus(ctx context.Context, name string) (InstanceStatus, error)

	// GetDatabase returns the logical database, or (nil, nil) when absent.
	GetDatabase(ctx context.Context, instance, name string) (*Database, error)

	// CreateDatabase creates a logical database on the instance.
	CreateDatabase(ctx context.Context, instance, name string) error

	// GetUser returns the database user, or (nil, nil) when absent.
	GetUser(ctx context.Context, instance, name string) (*DatabaseUser, error)

	// CreateUser creates a database user with the given password.
	CreateUser(ctx context.Context, instance, name, password string) error

	// UpdateUser sets the password of an existing database user.
	UpdateUser(ctx context.Context, instance, name, password string) error
}

// RegistryManager manages the Artifact Registry repository.
type RegistryManager interface {
	// GetRepository returns the repository, or (nil, nil) when absent.
	GetRepository(ctx context.Context, name string) (*Repository, error)

	// CreateRepository creates a docker-format repository.
	CreateRepository(ctx context.Context, name string) error

	// GrantRepositoryWriter grants the member write access to the
	// repository. Idempotent.
	GrantRepositoryWriter(ctx context.Context, name, member string) error

	// DeleteRepository deletes the repository. Absent repositories are
	// no-ops.
	DeleteRepository(ctx context.Context, name string) error
}

// IAMManager manages service accounts and project role bindings.
type IAMManager interface {
	// GetServiceAccount returns the account, or (nil, nil) when absent.
	GetServiceAccount(ctx context.Context, email string) (*ServiceAccount, error)

	// CreateServiceAccount creates a service account in the project.
	CreateServiceAccount(ctx context.Context, accountID, displayName string) (*ServiceAccount, error)

	// GrantProjectRole adds the member to the role's project-level binding.
	// Idempotent.
	GrantProjectRole(ctx context.Context, member, role string) error

	// DeleteServiceAccount deletes the account. Absent accounts are no-ops.
	DeleteServiceAccount(ctx context.Context, email string) error
}

// RunAdmin manages the Cloud Run service.
type RunAdmin interface {
	// GetService returns the service, or (nil, nil) when absent.
	GetService(ctx context.Context, name string) (*Service, error)

	// ApplyService creates the service or replaces its spec, converging it
	// on the desired state. Returns the resulting service.
	ApplyService(ctx context.Context, spec ServiceSpec) (*Service, error)

	// AllowUnauthenticated binds allUsers to run.invoker on the service.
	AllowUnauthenticated(ctx context.Context, name string) error

	// DeleteService deletes the service. Absent services are no-ops.
	DeleteService(ctx context.Context, name string) error
}

// Client aggregates every provider concern the sequencer needs.
type Client interface {
	ServiceEnabler
	SQLAdmin
	RegistryManager
	IAMManager
	RunAdmin
}
