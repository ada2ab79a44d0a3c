package config

import (
	"fmt"
	"os"
)

// Template is the configuration template written by `gcrun init`. The
// database credential is intentionally absent: it is taken from
// GCRUN_DB_PASSWORD or generated at deploy time, never stored on disk.
const Template = `# gcrun deployment configuration.
#
# project_id is the only required value. Everything else falls back to the
# defaults shown below.

project_id = ""

# region = "us-central1"
# zone = "us-central1-a"

# service_name = "app"
# repository = "app-images"
# instance_name = "app-db"
# database = "app"
# db_user = "app"

# source_image = "ghcr.io/umami-software/umami:postgresql-latest"
# port = 3000
`

// WriteTemplate writes the embedded template to path. It refuses to
// overwrite an existing file.
func WriteTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("refusing to overwrite existing file %s", path)
	}
	if err := os.WriteFile(path, []byte(Template), 0o600); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}
	return nil
}

// Bootstrap ensures a configuration file exists at configPath. When it is
// absent the template at templatePath is copied verbatim and created=true is
// returned so the caller can send the operator off to edit it. A missing
// template is an error and leaves no file behind.
func Bootstrap(configPath, templatePath string) (created bool, err error) {
	if _, err := os.Stat(configPath); err == nil {
		return false, nil
	}

	data, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, fmt.Errorf("no configuration at %s and no template at %s: run `gcrun init` first", configPath, templatePath)
		}
		return false, fmt.Errorf("failed to read template %s: %w", templatePath, err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return false, fmt.Errorf("failed to write config from template: %w", err)
	}
	return true, nil
}
