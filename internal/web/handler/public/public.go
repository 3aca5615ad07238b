// Package public provides the handlers for the visitor-facing pages.
package public

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/buehnenwerk/udo-story/internal/config"
	"github.com/buehnenwerk/udo-story/internal/db/controller/image"
	"github.com/buehnenwerk/udo-story/internal/db/controller/kritik"
	"github.com/buehnenwerk/udo-story/internal/db/controller/setting"
	"github.com/buehnenwerk/udo-story/internal/db/controller/termin"
	"github.com/buehnenwerk/udo-story/internal/db/store"
	"github.com/buehnenwerk/udo-story/internal/web/handler"
)

const (
	// HomeImageCount is the number of gallery images shown on the home page.
	HomeImageCount = 6

	// HomeTerminCount is the number of upcoming tour dates shown on the home page.
	HomeTerminCount = 4
)

// Service is the public pages handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	st  *store.Store
}

// Handler is the public pages handler.
var Handler = Service{}

// Init initializes the public pages handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st *store.Store) {
	if app == nil || cfg == nil || st == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.st = st

	app.Get(handler.RootPath, s.Home)
	app.Get(handler.RootPath+"kuenstler", s.Kuenstler)
	app.Get(handler.RootPath+"termine", s.Termine)
	app.Get(handler.RootPath+"kritiken", s.Kritiken)
	app.Get(handler.RootPath+"presse", s.Presse)
	app.Get(handler.RootPath+"kontakt", s.Kontakt)
}

// Home renders the landing page with a gallery preview and the next
// upcoming tour dates.
func (s *Service) Home(c *fiber.Ctx) error {
	settings, err := setting.All(s.st)
	if err != nil {
		return err
	}

	images, err := image.List(s.st, HomeImageCount)
	if err != nil {
		return err
	}

	termine, err := termin.Upcoming(s.st, HomeTerminCount)
	if err != nil {
		return err
	}

	return handler.Render(c, "index", fiber.Map{
		"Settings": settings,
		"Images":   images,
		"Termine":  termine,
	})
}

// Kuenstler renders the artist page with the full gallery.
func (s *Service) Kuenstler(c *fiber.Ctx) error {
	settings, err := setting.All(s.st)
	if err != nil {
		return err
	}

	images, err := image.List(s.st, 0)
	if err != nil {
		return err
	}

	return handler.Render(c, "kuenstler", fiber.Map{
		"Settings": settings,
		"Images":   images,
	})
}

// Termine renders all tour dates in chronological order.
func (s *Service) Termine(c *fiber.Ctx) error {
	settings, err := setting.All(s.st)
	if err != nil {
		return err
	}

	termine, err := termin.All(s.st)
	if err != nil {
		return err
	}

	return handler.Render(c, "termine", fiber.Map{
		"Settings": settings,
		"Termine":  termine,
	})
}

// Kritiken renders the press reviews, newest first.
func (s *Service) Kritiken(c *fiber.Ctx) error {
	settings, err := setting.All(s.st)
	if err != nil {
		return err
	}

	kritiken, err := kritik.All(s.st)
	if err != nil {
		return err
	}

	return handler.Render(c, "kritiken", fiber.Map{
		"Settings": settings,
		"Kritiken": kritiken,
	})
}

// Presse renders the press and video page.
func (s *Service) Presse(c *fiber.Ctx) error {
	settings, err := setting.All(s.st)
	if err != nil {
		return err
	}

	return handler.Render(c, "presse", fiber.Map{
		"Settings": settings,
	})
}

// Kontakt renders the contact page.
func (s *Service) Kontakt(c *fiber.Ctx) error {
	settings, err := setting.All(s.st)
	if err != nil {
		return err
	}

	return handler.Render(c, "kontakt", fiber.Map{
		"Settings": settings,
	})
}
