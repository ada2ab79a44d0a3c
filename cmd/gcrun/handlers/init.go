package handlers

import (
	"fmt"

	"github.com/cloudstrap/gcrun/internal/config"
	"github.com/cloudstrap/gcrun/internal/ui"
)

// writeTemplate writes the embedded config template (for testing injection).
var writeTemplate = config.WriteTemplate

// Init writes the configuration template to outputPath so the operator can
// fill in the project id before the first deploy.
func Init(outputPath string) error {
	if err := writeTemplate(outputPath); err != nil {
		return err
	}
	ui.Success(fmt.Sprintf("wrote %s", outputPath))
	fmt.Println("Set project_id, then run `gcrun deploy`.")
	return nil
}
