package handlers

import (
	"context"

	"github.com/cloudstrap/gcrun/internal/image"
	"github.com/cloudstrap/gcrun/internal/ui"
)

// Image pulls the upstream image, retags it for the target registry and
// pushes both tags, without touching any other resource.
func Image(ctx context.Context, configPath string) error {
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return err
	}

	if err := checkDeployPrereqs(); err != nil {
		return err
	}

	pusher := image.NewPusher(newRunner())
	deployRef, err := pusher.Push(ctx, cfg)
	if err != nil {
		return err
	}

	ui.Success("pushed " + deployRef)
	return nil
}
