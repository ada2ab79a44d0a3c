package gcp

// DatabaseInstance is the subset of a Cloud SQL instance the sequencer
// reads back.
type DatabaseInstance struct {
	Name           string
	Status         InstanceStatus
	ConnectionName string
	PublicIP       string
}

// Database is a logical database on an instance.
type Database struct {
	Name string
}

// DatabaseUser is a database user on an instance.
type DatabaseUser struct {
	Name string
}

// Repository is an Artifact Registry repository.
type Repository struct {
	Name string
}

// ServiceAccount is a provider service account.
type ServiceAccount struct {
	Email string
}

// Service is a running Cloud Run service.
type Service struct {
	Name  string
	Image string
	URL   string
}

// InstanceSpec describes the Cloud SQL instance to create.
type InstanceSpec struct {
	Name            string
	Region          string
	Version         string
	Tier            string
	BackupStartTime string
}

// ServiceSpec describes the desired Cloud Run service.
type ServiceSpec struct {
	Name           string
	Image          string
	Port           int
	Env            map[string]string
	ConnectionName string
	ServiceAccount string
	CPULimit       string
	MemoryLimit    string
	MinScale       int
	MaxScale       int
}
