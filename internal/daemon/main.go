// Package daemon wires the store, session storage, upload directory and
// web service together and runs them.
package daemon

import (
	"fmt"

	"github.com/gofiber/storage/memory/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/buehnenwerk/udo-story/internal/config"
	"github.com/buehnenwerk/udo-story/internal/db/store"
	"github.com/buehnenwerk/udo-story/internal/upload"
	"github.com/buehnenwerk/udo-story/internal/web"
	"github.com/buehnenwerk/udo-story/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	store      *store.Store
	webService *web.Service
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	st, err := store.Open(cfg.DB.Path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open store")
	}

	saver, err := upload.NewSaver(cfg.Uploads.Dir)
	if err != nil {
		_ = st.Close()
		return nil, errors.Wrap(err, "failed to prepare upload directory")
	}

	// sessions live in process memory; a restart logs everyone out, which
	// is fine for a single admin account
	session.Init(memory.New())

	return &Daemon{
		cfg:        cfg,
		store:      st,
		webService: web.New(cfg, st, saver),
	}, nil
}

// Start runs the web service until a shutdown signal arrives, then closes
// the store so the final snapshot is on disk.
func (d *Daemon) Start() error {
	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)

	go d.webService.WaitShutdown()

	log.Info().Str("addr", addr).Str("db", d.store.Path()).Msg("starting web service")

	if err := d.webService.Start(addr); err != nil {
		return errors.Wrap(err, "web service failed")
	}

	if err := d.store.Close(); err != nil {
		return errors.Wrap(err, "failed to close store")
	}

	return nil
}
