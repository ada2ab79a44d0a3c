package gcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	artifactregistry "google.golang.org/api/artifactregistry/v1"
	cloudresourcemanager "google.golang.org/api/cloudresourcemanager/v1"
	"google.golang.org/api/googleapi"
	iam "google.golang.org/api/iam/v1"
	"google.golang.org/api/option"
	run "google.golang.org/api/run/v1"
	serviceusage "google.golang.org/api/serviceusage/v1"
	sqladmin "google.golang.org/api/sqladmin/v1beta4"

	"github.com/cloudstrap/gcrun/internal/retry"
)

// RealClient implements Client against the Google Cloud APIs using ambient
// application-default credentials.
type RealClient struct {
	project string
	region  string

	usage    *serviceusage.Service
	sql      *sqladmin.Service
	registry *artifactregistry.Service
	iam      *iam.Service
	crm      *cloudresourcemanager.Service
	run      *run.APIService
}

// NewRealClient creates a RealClient for the given project and region.
// Cloud Run requires a regional API endpoint; everything else is global.
func NewRealClient(ctx context.Context, project, region string) (*RealClient, error) {
	usage, err := serviceusage.NewService(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create serviceusage client: %w", err)
	}
	sql, err := sqladmin.NewService(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create sqladmin client: %w", err)
	}
	registry, err := artifactregistry.NewService(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create artifactregistry client: %w", err)
	}
	iamSvc, err := iam.NewService(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create iam client: %w", err)
	}
	crm, err := cloudresourcemanager.NewService(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudresourcemanager client: %w", err)
	}
	runSvc, err := run.NewService(ctx, option.WithEndpoint(fmt.Sprintf("https://%s-run.googleapis.com/", region)))
	if err != nil {
		return nil, fmt.Errorf("failed to create run client: %w", err)
	}

	return &RealClient{
		project:  project,
		region:   region,
		usage:    usage,
		sql:      sql,
		registry: registry,
		iam:      iamSvc,
		crm:      crm,
		run:      runSvc,
	}, nil
}

func isNotFound(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusNotFound
}

// --- ServiceEnabler ---

// EnableAPI enables a single project API.
func (c *RealClient) EnableAPI(ctx context.Context, api string) error {
	name := fmt.Sprintf("projects/%s/services/%s", c.project, api)
	_, err := c.usage.Services.Enable(name, &serviceusage.EnableServiceRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to enable %s: %w", api, err)
	}
	return nil
}

// --- SQLAdmin ---

// GetInstance returns the Cloud SQL instance, or (nil, nil) when absent.
func (c *RealClient) GetInstance(ctx context.Context, name string) (*DatabaseInstance, error) {
	inst, err := c.sql.Instances.Get(c.project, name).Context(ctx).Do()
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get instance %s: %w", name, err)
	}
	return convertInstance(inst), nil
}

// CreateInstance starts creation of a Cloud SQL instance. The API call
// returns long before the instance is RUNNABLE.
func (c *RealClient) CreateInstance(ctx context.Context, spec InstanceSpec) error {
	inst := &sqladmin.DatabaseInstance{
		Name:            spec.Name,
		Region:          spec.Region,
		DatabaseVersion: spec.Version,
		Settings: &sqladmin.Settings{
			Tier: spec.Tier,
			BackupConfiguration: &sqladmin.BackupConfiguration{
				Enabled:   true,
				StartTime: spec.BackupStartTime,
			},
			IpConfiguration: &sqladmin.IpConfiguration{
				Ipv4Enabled: true,
				AuthorizedNetworks: []*sqladmin.AclEntry{
					{Name: "all", Value: "0.0.0.0/0"},
				},
			},
			DatabaseFlags: []*sqladmin.DatabaseFlags{
				{Name: "cloudsql.iam_authentication", Value: "on"},
			},
		},
	}

	if _, err := c.sql.Instances.Insert(c.project, inst).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to create instance %s: %w", spec.Name, err)
	}
	return nil
}

// DeleteInstance deletes the Cloud SQL instance, tolerating absence.
func (c *RealClient) DeleteInstance(ctx context.Context, name string) error {
	if _, err := c.sql.Instances.Delete(c.project, name).Context(ctx).Do(); err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to delete instance %s: %w", name, err)
	}
	return nil
}

// InstanceStatus samples the instance state, mapping a 404 to
// StatusNotFound.
func (c *RealClient) InstanceStatus(ctx context.Context, name string) (InstanceStatus, error) {
	inst, err := c.sql.Instances.Get(c.project, name).Context(ctx).Do()
	if err != nil {
		if isNotFound(err) {
			return StatusNotFound, nil
		}
		return "", fmt.Errorf("failed to get instance %s: %w", name, err)
	}
	return InstanceStatus(inst.State), nil
}

// GetDatabase returns the logical database, or (nil, nil) when absent.
func (c *RealClient) GetDatabase(ctx context.Context, instance, name string) (*Database, error) {
	db, err := c.sql.Databases.Get(c.project, instance, name).Context(ctx).Do()
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get database %s: %w", name, err)
	}
	return &Database{Name: db.Name}, nil
}

// CreateDatabase creates a logical database on the instance.
func (c *RealClient) CreateDatabase(ctx context.Context, instance, name string) error {
	db := &sqladmin.Database{Name: name}
	if _, err := c.sql.Databases.Insert(c.project, instance, db).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to create database %s: %w", name, err)
	}
	return nil
}

// GetUser returns the database user, or (nil, nil) when absent. The users
// API has no get, so the list is scanned.
func (c *RealClient) GetUser(ctx context.Context, instance, name string) (*DatabaseUser, error) {
	users, err := c.sql.Users.List(c.project, instance).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list users on %s: %w", instance, err)
	}
	for _, u := range users.Items {
		if u.Name == name {
			return &DatabaseUser{Name: u.Name}, nil
		}
	}
	return nil, nil
}

// CreateUser creates a database user with the given password.
func (c *RealClient) CreateUser(ctx context.Context, instance, name, password string) error {
	user := &sqladmin.User{Name: name, Password: password}
	if _, err := c.sql.Users.Insert(c.project, instance, user).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to create user %s: %w", name, err)
	}
	return nil
}

// UpdateUser sets the password of an existing database user.
func (c *RealClient) UpdateUser(ctx context.Context, instance, name, password string) error {
	user := &sqladmin.User{Name: name, Password: password}
	if _, err := c.sql.Users.Update(c.project, instance, user).Name(name).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to update user %s: %w", name, err)
	}
	return nil
}

func convertInstance(inst *sqladmin.DatabaseInstance) *DatabaseInstance {
	out := &DatabaseInstance{
		Name:           inst.Name,
		Status:         InstanceStatus(inst.State),
		ConnectionName: inst.ConnectionName,
	}
	for _, ip := range inst.IpAddresses {
		if ip.Type == "PRIMARY" {
			out.PublicIP = ip.IpAddress
		}
	}
	return out
}

// --- RegistryManager ---

func (c *RealClient) repositoryName(name string) string {
	return fmt.Sprintf("projects/%s/locations/%s/repositories/%s", c.project, c.region, name)
}

// GetRepository returns the repository, or (nil, nil) when absent.
func (c *RealClient) GetRepository(ctx context.Context, name string) (*Repository, error) {
	repo, err := c.registry.Projects.Locations.Repositories.Get(c.repositoryName(name)).Context(ctx).Do()
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get repository %s: %w", name, err)
	}
	return &Repository{Name: repo.Name}, nil
}

// CreateRepository creates a docker-format repository in the region.
func (c *RealClient) CreateRepository(ctx context.Context, name string) error {
	parent := fmt.Sprintf("projects/%s/locations/%s", c.project, c.region)
	repo := &artifactregistry.Repository{Format: "DOCKER"}
	_, err := c.registry.Projects.Locations.Repositories.Create(parent, repo).RepositoryId(name).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to create repository %s: %w", name, err)
	}
	return nil
}

// DeleteRepository deletes the repository, tolerating absence.
func (c *RealClient) DeleteRepository(ctx context.Context, name string) error {
	_, err := c.registry.Projects.Locations.Repositories.Delete(c.repositoryName(name)).Context(ctx).Do()
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to delete repository %s: %w", name, err)
	}
	return nil
}

// GrantRepositoryWriter grants the member artifactregistry.writer on the
// repository via read-modify-write of its IAM policy. The set is guarded
// by the policy etag, so a concurrent modification rejects it; the whole
// cycle is retried with backoff.
func (c *RealClient) GrantRepositoryWriter(ctx context.Context, name, member string) error {
	resource := c.repositoryName(name)
	return retry.WithExponentialBackoff(ctx, func() error {
		policy, err := c.registry.Projects.Locations.Repositories.GetIamPolicy(resource).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("failed to get repository policy: %w", err)
		}

		const role = "roles/artifactregistry.writer"
		var binding *artifactregistry.Binding
		for _, b := range policy.Bindings {
			if b.Role == role {
				binding = b
				break
			}
		}
		if binding == nil {
			binding = &artifactregistry.Binding{Role: role}
			policy.Bindings = append(policy.Bindings, binding)
		}
		for _, m := range binding.Members {
			if m == member {
				return nil
			}
		}
		binding.Members = append(binding.Members, member)

		req := &artifactregistry.SetIamPolicyRequest{Policy: policy}
		if _, err := c.registry.Projects.Locations.Repositories.SetIamPolicy(resource, req).Context(ctx).Do(); err != nil {
			return fmt.Errorf("failed to set repository policy: %w", err)
		}
		return nil
	}, retry.WithMaxRetries(3))
}

// --- IAMManager ---

// GetServiceAccount returns the account, or (nil, nil) when absent.
func (c *RealClient) GetServiceAccount(ctx context.Context, email string) (*ServiceAccount, error) {
	name := "projects/-/serviceAccounts/" + email
	sa, err := c.iam.Projects.ServiceAccounts.Get(name).Context(ctx).Do()
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get service account %s: %w", email, err)
	}
	return &ServiceAccount{Email: sa.Email}, nil
}

// CreateServiceAccount creates a service account in the project.
func (c *RealClient) CreateServiceAccount(ctx context.Context, accountID, displayName string) (*ServiceAccount, error) {
	req := &iam.CreateServiceAccountRequest{
		AccountId:      accountID,
		ServiceAccount: &iam.ServiceAccount{DisplayName: displayName},
	}
	sa, err := c.iam.Projects.ServiceAccounts.Create("projects/"+c.project, req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create service account %s: %w", accountID, err)
	}
	return &ServiceAccount{Email: sa.Email}, nil
}

// DeleteServiceAccount deletes the account, tolerating absence.
func (c *RealClient) DeleteServiceAccount(ctx context.Context, email string) error {
	name := "projects/-/serviceAccounts/" + email
	if _, err := c.iam.Projects.ServiceAccounts.Delete(name).Context(ctx).Do(); err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to delete service account %s: %w", email, err)
	}
	return nil
}

// GrantProjectRole adds the member to the role's project-level binding via
// read-modify-write of the project IAM policy. The project policy sees
// concurrent writers far more often than the repository policy, so the
// etag-guarded cycle is retried with backoff.
func (c *RealClient) GrantProjectRole(ctx context.Context, member, role string) error {
	return retry.WithExponentialBackoff(ctx, func() error {
		policy, err := c.crm.Projects.GetIamPolicy(c.project, &cloudresourcemanager.GetIamPolicyRequest{}).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("failed to get project policy: %w", err)
		}

		var binding *cloudresourcemanager.Binding
		for _, b := range policy.Bindings {
			if b.Role == role {
				binding = b
				break
			}
		}
		if binding == nil {
			binding = &cloudresourcemanager.Binding{Role: role}
			policy.Bindings = append(policy.Bindings, binding)
		}
		for _, m := range binding.Members {
			if m == member {
				return nil
			}
		}
		binding.Members = append(binding.Members, member)

		req := &cloudresourcemanager.SetIamPolicyRequest{Policy: policy}
		if _, err := c.crm.Projects.SetIamPolicy(c.project, req).Context(ctx).Do(); err != nil {
			return fmt.Errorf("failed to set project policy: %w", err)
		}
		return nil
	}, retry.WithMaxRetries(3))
}

// --- RunAdmin ---

func (c *RealClient) serviceName(name string) string {
	return fmt.Sprintf("namespaces/%s/services/%s", c.project, name)
}

// GetService returns the Cloud Run service, or (nil, nil) when absent.
func (c *RealClient) GetService(ctx context.Context, name string) (*Service, error) {
	svc, err := c.run.Namespaces.Services.Get(c.serviceName(name)).Context(ctx).Do()
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get service %s: %w", name, err)
	}
	return convertService(svc), nil
}

// ApplyService creates the service or replaces its spec with the desired
// state.
func (c *RealClient) ApplyService(ctx context.Context, spec ServiceSpec) (*Service, error) {
	desired := buildServiceManifest(c.project, spec)

	existing, err := c.run.Namespaces.Services.Get(c.serviceName(spec.Name)).Context(ctx).Do()
	if err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("failed to get service %s: %w", spec.Name, err)
	}

	var applied *run.Service
	if existing == nil || err != nil {
		applied, err = c.run.Namespaces.Services.Create("namespaces/"+c.project, desired).Context(ctx).Do()
	} else {
		applied, err = c.run.Namespaces.Services.ReplaceService(c.serviceName(spec.Name), desired).Context(ctx).Do()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to apply service %s: %w", spec.Name, err)
	}
	return convertService(applied), nil
}

// AllowUnauthenticated binds allUsers to run.invoker on the service via
// read-modify-write, preserving any bindings already on the policy.
func (c *RealClient) AllowUnauthenticated(ctx context.Context, name string) error {
	resource := fmt.Sprintf("projects/%s/locations/%s/services/%s", c.project, c.region, name)
	return retry.WithExponentialBackoff(ctx, func() error {
		policy, err := c.run.Projects.Locations.Services.GetIamPolicy(resource).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("failed to get service policy for %s: %w", name, err)
		}

		if !addInvokerBinding(policy) {
			return nil
		}

		req := &run.SetIamPolicyRequest{Policy: policy}
		if _, err := c.run.Projects.Locations.Services.SetIamPolicy(resource, req).Context(ctx).Do(); err != nil {
			return fmt.Errorf("failed to allow unauthenticated access on %s: %w", name, err)
		}
		return nil
	}, retry.WithMaxRetries(3))
}

// addInvokerBinding merges allUsers into the policy's run.invoker binding.
// Reports whether the policy changed.
func addInvokerBinding(policy *run.Policy) bool {
	const role = "roles/run.invoker"
	const member = "allUsers"

	var binding *run.Binding
	for _, b := range policy.Bindings {
		if b.Role == role {
			binding = b
			break
		}
	}
	if binding == nil {
		binding = &run.Binding{Role: role}
		policy.Bindings = append(policy.Bindings, binding)
	}
	for _, m := range binding.Members {
		if m == member {
			return false
		}
	}
	binding.Members = append(binding.Members, member)
	return true
}

// DeleteService deletes the Cloud Run service, tolerating absence.
func (c *RealClient) DeleteService(ctx context.Context, name string) error {
	if _, err := c.run.Namespaces.Services.Delete(c.serviceName(name)).Context(ctx).Do(); err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to delete service %s: %w", name, err)
	}
	return nil
}

func buildServiceManifest(project string, spec ServiceSpec) *run.Service {
	keys := make([]string, 0, len(spec.Env))
	for k := range spec.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := make([]*run.EnvVar, 0, len(keys))
	for _, k := range keys {
		env = append(env, &run.EnvVar{Name: k, Value: spec.Env[k]})
	}

	return &run.Service{
		ApiVersion: "serving.knative.dev/v1",
		Kind:       "Service",
		Metadata: &run.ObjectMeta{
			Name:      spec.Name,
			Namespace: project,
			Annotations: map[string]string{
				"run.googleapis.com/ingress": "all",
			},
		},
		Spec: &run.ServiceSpec{
			Template: &run.RevisionTemplate{
				Metadata: &run.ObjectMeta{
					Annotations: map[string]string{
						"autoscaling.knative.dev/minScale":      strconv.Itoa(spec.MinScale),
						"autoscaling.knative.dev/maxScale":      strconv.Itoa(spec.MaxScale),
						"run.googleapis.com/cloudsql-instances": spec.ConnectionName,
					},
				},
				Spec: &run.RevisionSpec{
					ServiceAccountName: spec.ServiceAccount,
					Containers: []*run.Container{
						{
							Image: spec.Image,
							Ports: []*run.ContainerPort{{ContainerPort: int64(spec.Port)}},
							Env:   env,
							Resources: &run.ResourceRequirements{
								Limits: map[string]string{
									"cpu":    spec.CPULimit,
									"memory": spec.MemoryLimit,
								},
							},
						},
					},
				},
			},
		},
	}
}

func convertService(svc *run.Service) *Service {
	out := &Service{}
	if svc.Metadata != nil {
		out.Name = svc.Metadata.Name
	}
	if svc.Spec != nil && svc.Spec.Template != nil && svc.Spec.Template.Spec != nil &&
		len(svc.Spec.Template.Spec.Containers) > 0 {
		out.Image = svc.Spec.Template.Spec.Containers[0].Image
	}
	if svc.Status != nil {
		out.URL = svc.Status.Url
	}
	return out
}
