package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testConfig() *Config {
	cfg := &Config{ProjectID: "p1"}
	cfg.applyDefaults()
	return cfg
}

func TestDerivedValues(t *testing.T) {
	t.Parallel()
	cfg := testConfig()

	assert.Equal(t, "us-central1-docker.pkg.dev", cfg.RegistryHost())
	assert.Equal(t, "us-central1-docker.pkg.dev/p1/app-images", cfg.RegistryURL())
	assert.Equal(t, "us-central1-docker.pkg.dev/p1/app-images/app:latest", cfg.ImageRef("latest"))
	assert.Equal(t, "p1:us-central1:app-db", cfg.ConnectionName())
	assert.Equal(t, "app-runner", cfg.ServiceAccountID())
	assert.Equal(t, "app-runner@p1.iam.gserviceaccount.com", cfg.ServiceAccountEmail())
}

func TestDerivedValues_CustomRegion(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.Region = "europe-west1"

	assert.Equal(t, "europe-west1-docker.pkg.dev", cfg.RegistryHost())
	assert.Equal(t, "p1:europe-west1:app-db", cfg.ConnectionName())
}
