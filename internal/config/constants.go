package config

// Defaults for every optional configuration key.
const (
	DefaultRegion       = "us-central1"
	DefaultZone         = "us-central1-a"
	DefaultServiceName  = "app"
	DefaultRepository   = "app-images"
	DefaultInstanceName = "app-db"
	DefaultDatabase     = "app"
	DefaultDBUser       = "app"
	DefaultSourceImage  = "ghcr.io/umami-software/umami:postgresql-latest"
	DefaultPort         = 3000
)

// Fixed parameters of the provisioned resources. These mirror the managed
// stack the tool targets and are deliberately not configurable.
const (
	DatabaseVersion = "POSTGRES_15"
	DatabaseTier    = "db-f1-micro"
	BackupStartTime = "03:00"

	ServiceCPULimit    = "1"
	ServiceMemoryLimit = "512Mi"
	ServiceMinScale    = 0
	ServiceMaxScale    = 10
)

// RequiredAPIs is the fixed ordered list of project APIs that must be
// enabled before any resource can be created.
var RequiredAPIs = []string{
	"serviceusage.googleapis.com",
	"cloudresourcemanager.googleapis.com",
	"sqladmin.googleapis.com",
	"artifactregistry.googleapis.com",
	"run.googleapis.com",
	"iam.googleapis.com",
}

// ProjectRoles are granted to the runtime service account at project level.
var ProjectRoles = []string{
	"roles/cloudsql.client",
	"roles/logging.logWriter",
	"roles/monitoring.metricWriter",
}
