package gcp

import (
	"context"
)

// MockClient is a func-field implementation of Client for tests. Unset
// fields make the corresponding operation a successful no-op so tests only
// script what they assert on. Calls records every operation in order.
type MockClient struct {
	Calls []string

	EnableAPIFunc func(ctx context.Context, api string) error

	GetInstanceFunc    func(ctx context.Context, name string) (*DatabaseInstance, error)
	CreateInstanceFunc func(ctx context.Context, spec InstanceSpec) error
	DeleteInstanceFunc func(ctx context.Context, name string) error
	InstanceStatusFunc func(ctx context.Context, name string) (InstanceStatus, error)
	GetDatabaseFunc    func(ctx context.Context, instance, name string) (*Database, error)
	CreateDatabaseFunc func(ctx context.Context, instance, name string) error
	GetUserFunc        func(ctx context.Context, instance, name string) (*DatabaseUser, error)
	CreateUserFunc     func(ctx context.Context, instance, name, password string) error
	UpdateUserFunc     func(ctx context.Context, instance, name, password string) error

	GetRepositoryFunc         func(ctx context.Context, name string) (*Repository, error)
	CreateRepositoryFunc      func(ctx context.Context, name string) error
	GrantRepositoryWriterFunc func(ctx context.Context, name, member string) error
	DeleteRepositoryFunc      func(ctx context.Context, name string) error
	GetServiceAccountFunc     func(ctx context.Context, email string) (*ServiceAccount, error)
	CreateServiceAccountFunc  func(ctx context.Context, accountID, displayName string) (*ServiceAccount, error)
	GrantProjectRoleFunc      func(ctx context.Context, member, role string) error
	DeleteServiceAccountFunc  func(ctx context.Context, email string) error
	GetServiceFunc            func(ctx context.Context, name string) (*Service, error)
	ApplyServiceFunc          func(ctx context.Context, spec ServiceSpec) (*Service, error)
	AllowUnauthenticatedFunc  func(ctx context.Context, name string) error
	DeleteServiceFunc         func(ctx context.Context, name string) error
}

func (m *MockClient) record(call string) {
	m.Calls = append(m.Calls, call)
}

func (m *MockClient) EnableAPI(ctx context.Context, api string) error {
	m.record("EnableAPI:" + api)
	if m.EnableAPIFunc != nil {
		return m.EnableAPIFunc(ctx, api)
	}
	return nil
}

func (m *MockClient) GetInstance(ctx context.Context, name string) (*DatabaseInstance, error) {
	m.record("GetInstance:" + name)
	if m.GetInstanceFunc != nil {
		return m.GetInstanceFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockClient) CreateInstance(ctx context.Context, spec InstanceSpec) error {
	m.record("CreateInstance:" + spec.Name)
	if m.CreateInstanceFunc != nil {
		return m.CreateInstanceFunc(ctx, spec)
	}
	return nil
}

func (m *MockClient) DeleteInstance(ctx context.Context, name string) error {
	m.record("DeleteInstance:" + name)
	if m.DeleteInstanceFunc != nil {
		return m.DeleteInstanceFunc(ctx, name)
	}
	return nil
}

func (m *MockClient) InstanceStatus(ctx context.Context, name string) (InstanceStatus, error) {
	m.record("InstanceStatus:" + name)
	if m.InstanceStatusFunc != nil {
		return m.InstanceStatusFunc(ctx, name)
	}
	return StatusRunnable, nil
}

func (m *MockClient) GetDatabase(ctx context.Context, instance, name string) (*Database, error) {
	m.record("GetDatabase:" + name)
	if m.GetDatabaseFunc != nil {
		return m.GetDatabaseFunc(ctx, instance, name)
	}
	return nil, nil
}

func (m *MockClient) CreateDatabase(ctx context.Context, instance, name string) error {
	m.record("CreateDatabase:" + name)
	if m.CreateDatabaseFunc != nil {
		return m.CreateDatabaseFunc(ctx, instance, name)
	}
	return nil
}

func (m *MockClient) GetUser(ctx context.Context, instance, name string) (*DatabaseUser, error) {
	m.record("GetUser:" + name)
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, instance, name)
	}
	return nil, nil
}

func (m *MockClient) CreateUser(ctx context.Context, instance, name, password string) error {
	m.record("CreateUser:" + name)
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, instance, name, password)
	}
	return nil
}

func (m *MockClient) UpdateUser(ctx context.Context, instance, name, password string) error {
	m.record("UpdateUser:" + name)
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(ctx, instance, name, password)
	}
	return nil
}

func (m *MockClient) GetRepository(ctx context.Context, name string) (*Repository, error) {
	m.record("GetRepository:" + name)
	if m.GetRepositoryFunc != nil {
		return m.GetRepositoryFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockClient) CreateRepository(ctx context.Context, name string) error {
	m.record("CreateRepository:" + name)
	if m.CreateRepositoryFunc != nil {
		return m.CreateRepositoryFunc(ctx, name)
	}
	return nil
}

func (m *MockClient) GrantRepositoryWriter(ctx context.Context, name, member string) error {
	m.record("GrantRepositoryWriter:" + name)
	if m.GrantRepositoryWriterFunc != nil {
		return m.GrantRepositoryWriterFunc(ctx, name, member)
	}
	return nil
}

func (m *MockClient) DeleteRepository(ctx context.Context, name string) error {
	m.record("DeleteRepository:" + name)
	if m.DeleteRepositoryFunc != nil {
		return m.DeleteRepositoryFunc(ctx, name)
	}
	return nil
}

func (m *MockClient) GetServiceAccount(ctx context.Context, email string) (*ServiceAccount, error) {
	m.record("GetServiceAccount:" + email)
	if m.GetServiceAccountFunc != nil {
		return m.GetServiceAccountFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockClient) CreateServiceAccount(ctx context.Context, accountID, displayName string) (*ServiceAccount, error) {
	m.record("CreateServiceAccount:" + accountID)
	if m.CreateServiceAccountFunc != nil {
		return m.CreateServiceAccountFunc(ctx, accountID, displayName)
	}
	return &ServiceAccount{Email: accountID + "@mock.iam.gserviceaccount.com"}, nil
}

func (m *MockClient) GrantProjectRole(ctx context.Context, member, role string) error {
	m.record("GrantProjectRole:" + role)
	if m.GrantProjectRoleFunc != nil {
		return m.GrantProjectRoleFunc(ctx, member, role)
	}
	return nil
}

func (m *MockClient) DeleteServiceAccount(ctx context.Context, email string) error {
	m.record("DeleteServiceAccount:" + email)
	if m.DeleteServiceAccountFunc != nil {
		return m.DeleteServiceAccountFunc(ctx, email)
	}
	return nil
}

func (m *MockClient) GetService(ctx context.Context, name string) (*Service, error) {
	m.record("GetService:" + name)
	if m.GetServiceFunc != nil {
		return m.GetServiceFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockClient) ApplyService(ctx context.Context, spec ServiceSpec) (*Service, error) {
	m.record("ApplyService:" + spec.Name)
	if m.ApplyServiceFunc != nil {
		return m.ApplyServiceFunc(ctx, spec)
	}
	return &Service{Name: spec.Name, Image: spec.Image, URL: "https://" + spec.Name + ".mock.run.app"}, nil
}

func (m *MockClient) AllowUnauthenticated(ctx context.Context, name string) error {
	m.record("AllowUnauthenticated:" + name)
	if m.AllowUnauthenticatedFunc != nil {
		return m.AllowUnauthenticatedFunc(ctx, name)
	}
	return nil
}

func (m *MockClient) DeleteService(ctx context.Context, name string) error {
	m.record("DeleteService:" + name)
	if m.DeleteServiceFunc != nil {
		return m.DeleteServiceFunc(ctx, name)
	}
	return nil
}
