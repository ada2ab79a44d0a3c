// Package image drives the operator's local container tooling to move the
// upstream image into the target registry: authenticate, pull, retag under
// two tags, push both.
package image

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cloudstrap/gcrun/internal/config"
)

// Runner executes a local command. The exec-backed implementation is used
// in production; tests substitute a recording fake.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands with the operator's terminal attached.
type ExecRunner struct{}

// Run implements the Runner interface.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}

// Pusher sequences the image steps. Re-running is harmless: the pull and
// pushes repeat but converge on the same registry content.
type Pusher struct {
	runner Runner
	now    func() time.Time
}

// NewPusher creates a pusher over the given runner.
func NewPusher(runner Runner) *Pusher {
	return &Pusher{runner: runner, now: time.Now}
}

// Push authenticates docker against the regional registry, pulls the
// configured upstream image, retags it as :latest and a timestamped deploy
// tag, and pushes both. It returns the deploy tag reference.
func (p *Pusher) Push(ctx context.Context, cfg *config.Config) (string, error) {
	deployTag := p.now().UTC().Format("20060102-150405")
	latestRef := cfg.ImageRef("latest")
	deployRef := cfg.ImageRef(deployTag)

	steps := [][]string{
		{"gcloud", "auth", "configure-docker", cfg.RegistryHost(), "--quiet"},
		{"docker", "pull", cfg.SourceImage},
		{"docker", "tag", cfg.SourceImage, latestRef},
		{"docker", "tag", cfg.SourceImage, deployRef},
		{"docker", "push", latestRef},
		{"docker", "push", deployRef},
	}

	for _, step := range steps {
		log.Info("running", "cmd", step[0], "args", step[1:])
		if err := p.runner.Run(ctx, step[0], step[1:]...); err != nil {
			return "", err
		}
	}

	return deployRef, nil
}
