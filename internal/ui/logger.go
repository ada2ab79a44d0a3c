package ui

import (
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures the default logger for sequencer output:
// leveled, colored, no timestamps. GCRUN_DEBUG enables debug lines such as
// individual readiness samples.
func SetupLogger() {
	log.SetOutput(os.Stderr)
	log.SetReportTimestamp(false)
	if os.Getenv("GCRUN_DEBUG") != "" {
		log.SetLevel(log.DebugLevel)
	}
}
