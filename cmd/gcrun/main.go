// Package main is the entry point for the gcrun CLI.
//
// gcrun is a command-line tool for provisioning a Cloud Run service
// backed by a Cloud SQL Postgres instance on Google Cloud. It applies
// resources in dependency order, converges on re-runs and carries no
// local state beyond a single configuration file.
//
// Commands: init, deploy, image, status, destroy.
//
// For detailed usage information, run:
//
//	gcrun --help
package main

import (
	"fmt"
	"os"

	"github.com/cloudstrap/gcrun/cmd/gcrun/commands"
	"github.com/cloudstrap/gcrun/internal/ui"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ui.SetupLogger()
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
