package provisioning

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cloudstrap/gcrun/internal/config"
	"github.com/cloudstrap/gcrun/internal/gcp"
	"github.com/cloudstrap/gcrun/internal/retry"
)

const (
	// settleDelay is the fixed wait after instance creation is reported.
	// A fresh instance rejects dependent child creation for a while even
	// once the insert call has returned.
	settleDelay = 60 * time.Second

	readinessInterval = 60 * time.Second
	readinessAttempts = 15

	// PasswordEnv names the environment variable consulted for the
	// database credential before one is generated.
	PasswordEnv = "GCRUN_DB_PASSWORD"
)

// DatabasePhase ensures the Cloud SQL instance, waits for it to become
// RUNNABLE, then ensures the logical database and user.
type DatabasePhase struct {
	// sleep is the settle wait, replaceable in tests.
	sleep func(ctx context.Context, d time.Duration) error

	// pollOpts override the readiness poll configuration in tests.
	pollOpts []retry.PollOption
}

// NewDatabasePhase creates the database phase with production timing.
func NewDatabasePhase() *DatabasePhase {
	return &DatabasePhase{sleep: sleepContext}
}

// Name implements the Phase interface.
func (p *DatabasePhase) Name() string {
	return "database"
}

// Provision implements the Phase interface.
func (p *DatabasePhase) Provision(ctx context.Context, pctx *Context) error {
	cfg := pctx.Config
	client := pctx.Client

	_, created, err := gcp.EnsureResource(ctx, cfg.InstanceName, gcp.EnsureFuncs[gcp.DatabaseInstance]{
		Get: client.GetInstance,
		Create: func(ctx context.Context) (*gcp.DatabaseInstance, error) {
			spec := gcp.InstanceSpec{
				Name:            cfg.InstanceName,
				Region:          cfg.Region,
				Version:         config.DatabaseVersion,
				Tier:            config.DatabaseTier,
				BackupStartTime: config.BackupStartTime,
			}
			if err := client.CreateInstance(ctx, spec); err != nil {
				return nil, err
			}
			return &gcp.DatabaseInstance{Name: cfg.InstanceName, Status: gcp.StatusPendingCreate}, nil
		},
	})
	if err != nil {
		return err
	}

	if created {
		log.Info("created database instance, settling", "name", cfg.InstanceName, "wait", settleDelay)
		if err := p.sleep(ctx, settleDelay); err != nil {
			return fmt.Errorf("interrupted while settling: %w", err)
		}
	}

	if err := WaitInstanceRunnable(ctx, client, cfg.InstanceName, p.pollOpts...); err != nil {
		return err
	}

	// Re-read now that the instance is ready so connection details are
	// populated for the service phase.
	inst, err := client.GetInstance(ctx, cfg.InstanceName)
	if err != nil {
		return err
	}
	if inst == nil {
		return fmt.Errorf("instance %s disappeared after becoming ready", cfg.InstanceName)
	}
	pctx.State.InstanceConnectionName = inst.ConnectionName
	pctx.State.InstancePublicIP = inst.PublicIP

	if _, _, err := gcp.EnsureResource(ctx, cfg.Database, gcp.EnsureFuncs[gcp.Database]{
		Get: func(ctx context.Context, name string) (*gcp.Database, error) {
			return client.GetDatabase(ctx, cfg.InstanceName, name)
		},
		Create: func(ctx context.Context) (*gcp.Database, error) {
			if err := client.CreateDatabase(ctx, cfg.InstanceName, cfg.Database); err != nil {
				return nil, err
			}
			return &gcp.Database{Name: cfg.Database}, nil
		},
	}); err != nil {
		return err
	}

	password, err := databasePassword()
	if err != nil {
		return err
	}
	pctx.State.DBPassword = password

	if _, userCreated, err := gcp.EnsureResource(ctx, cfg.DBUser, gcp.EnsureFuncs[gcp.DatabaseUser]{
		Get: func(ctx context.Context, name string) (*gcp.DatabaseUser, error) {
			return client.GetUser(ctx, cfg.InstanceName, name)
		},
		Create: func(ctx context.Context) (*gcp.DatabaseUser, error) {
			if err := client.CreateUser(ctx, cfg.InstanceName, cfg.DBUser, password); err != nil {
				return nil, err
			}
			return &gcp.DatabaseUser{Name: cfg.DBUser}, nil
		},
	}); err != nil {
		return err
	} else if !userCreated {
		// An adopted user keeps whatever password a previous run set. The
		// credential injected into the service must match, so converge the
		// user on the one resolved for this run.
		log.Info("resetting credential for existing database user", "user", cfg.DBUser)
		if err := client.UpdateUser(ctx, cfg.InstanceName, cfg.DBUser, password); err != nil {
			return err
		}
	}

	return nil
}

// WaitInstanceRunnable polls the instance status at a fixed interval until
// it reaches RUNNABLE. NOT_FOUND and FAILED abort immediately; exhausting
// the attempt budget returns retry.ErrExhausted.
func WaitInstanceRunnable(ctx context.Context, client gcp.SQLAdmin, name string, opts ...retry.PollOption) error {
	check := func(ctx context.Context) (bool, error) {
		status, err := client.InstanceStatus(ctx, name)
		if err != nil {
			return false, err
		}
		switch {
		case status.Ready():
			return true, nil
		case status == gcp.StatusNotFound:
			return false, retry.Fatal(fmt.Errorf("instance %s not found", name))
		case status == gcp.StatusFailed:
			return false, retry.Fatal(fmt.Errorf("instance %s entered FAILED state", name))
		default:
			log.Debug("instance not ready yet", "name", name, "status", status)
			return false, nil
		}
	}

	pollOpts := append([]retry.PollOption{
		retry.WithInterval(readinessInterval),
		retry.WithMaxAttempts(readinessAttempts),
	}, opts...)

	if err := retry.Poll(ctx, check, pollOpts...); err != nil {
		return fmt.Errorf("waiting for instance %s: %w", name, err)
	}
	return nil
}

// databasePassword returns the credential for the database user: the
// operator-supplied value when present, otherwise a freshly generated one.
// The credential is never persisted to the configuration file.
func databasePassword() (string, error) {
	if pw := os.Getenv(PasswordEnv); pw != "" {
		return pw, nil
	}
	buf := make([]byte, 18)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
