// Package dashboard provides the admin dashboard with content statistics.
package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/buehnenwerk/udo-story/internal/config"
	"github.com/buehnenwerk/udo-story/internal/db/controller/image"
	"github.com/buehnenwerk/udo-story/internal/db/controller/kritik"
	"github.com/buehnenwerk/udo-story/internal/db/controller/termin"
	"github.com/buehnenwerk/udo-story/internal/db/store"
	"github.com/buehnenwerk/udo-story/internal/web/handler"
)

const (
	// Path is the path to the dashboard page.
	Path = handler.AdminRootPath

	// TemplateName is the name of the dashboard template.
	TemplateName = "admin/dashboard"
)

// Stats holds the content counts shown on the dashboard.
type Stats struct {
	Termine  int64
	Images   int64
	Kritiken int64
}

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	st  *store.Store
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st *store.Store) {
	if app == nil || cfg == nil || st == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.st = st

	app.Get(Path, s.Get)
}

// Get handles the dashboard page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	var (
		stats Stats
		err   error
	)

	if stats.Termine, err = termin.Count(s.st); err != nil {
		return err
	}

	if stats.Images, err = image.Count(s.st); err != nil {
		return err
	}

	if stats.Kritiken, err = kritik.Count(s.st); err != nil {
		return err
	}

	return handler.Render(c, TemplateName, fiber.Map{
		"Stats": stats,
	})
}
