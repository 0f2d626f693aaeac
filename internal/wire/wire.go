// Package wire assembles the application from config. Construction is
// explicit: New builds every collaborator eagerly and returns an App the
// caller owns and must Close.
package wire

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/example/pitstop/internal/adapters/notify"
	"github.com/example/pitstop/internal/adapters/postgres"
	"github.com/example/pitstop/internal/adapters/sqlite"
	"github.com/example/pitstop/internal/app"
	"github.com/example/pitstop/internal/config"
	"github.com/example/pitstop/internal/db"
	"github.com/example/pitstop/internal/ports/primary"
	"github.com/example/pitstop/internal/ports/secondary"
	"github.com/example/pitstop/internal/replicator"
)

// connectTimeout bounds the initial remote mirror connection.
const connectTimeout = 10 * time.Second

// App holds the wired application and its owned resources.
type App struct {
	Config *config.Config
	Intake primary.IntakeService

	database   *sql.DB
	mirror     *postgres.Mirror
	replicator *replicator.Replicator
}

// New wires the application from config. The remote mirror and the notify
// gateway are optional: when unconfigured, the app runs purely local.
func New(cfg *config.Config) (*App, error) {
	database, err := db.Open(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	a := &App{Config: cfg, database: database}

	var repl app.Replicator
	if cfg.MirrorDatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		mirror, err := postgres.NewMirror(ctx, cfg.MirrorDatabaseURL)
		cancel()
		if err != nil {
			// The local store is authoritative: an unreachable mirror
			// degrades to local-only operation rather than failing startup.
			log.Printf("warning: mirror unreachable, replication disabled: %v", err)
		} else {
			a.mirror = mirror
			a.replicator = replicator.New(mirror, cfg.ReplicationQueueSize)
			repl = a.replicator
		}
	}

	var notifier secondary.Notifier
	if cfg.NotifyGatewayURL != "" {
		notifier = notify.NewGateway(cfg.NotifyGatewayURL, cfg.NotifyAPIKey)
	}

	recordRepo := sqlite.NewRecordRepository(database)
	activityRepo := sqlite.NewActivityRepository(database)
	a.Intake = app.NewIntakeService(recordRepo, activityRepo, repl, notifier, cfg.ShopID)
	return a, nil
}

// Mirror returns the remote mirror writer, or nil when replication is off.
func (a *App) Mirror() secondary.MirrorWriter {
	if a.mirror == nil {
		return nil
	}
	return a.mirror
}

// Close drains the replicator and releases database handles.
func (a *App) Close() {
	if a.replicator != nil {
		a.replicator.Close()
	}
	if a.mirror != nil {
		a.mirror.Close()
	}
	if a.database != nil {
		if err := a.database.Close(); err != nil {
			log.Printf("failed to close local store: %v", err)
		}
	}
}
