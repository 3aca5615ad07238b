// Package kritiken provides the admin panel pages for managing press reviews.
package kritiken

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/buehnenwerk/udo-story/internal/config"
	"github.com/buehnenwerk/udo-story/internal/db/controller/kritik"
	"github.com/buehnenwerk/udo-story/internal/db/store"
	"github.com/buehnenwerk/udo-story/internal/web/flash"
	"github.com/buehnenwerk/udo-story/internal/web/handler"
)

const (
	// Path is the path to the review admin page.
	Path = handler.AdminRootPath + "/kritiken"

	// TemplateName is the name of the review admin template.
	TemplateName = "admin/kritiken"

	// FlashAdded is shown after a review was created.
	FlashAdded = "Kritik erfolgreich hinzugefügt!"

	// FlashDeleted is shown after a review was deleted.
	FlashDeleted = "Kritik erfolgreich gelöscht!"

	// FlashInvalidInput is shown when the submitted form fails validation.
	FlashInvalidInput = "Bitte füllen Sie alle Pflichtfelder aus!"
)

// form is the review form payload.
type form struct {
	Stadt  string `form:"stadt"  validate:"required"`
	Text   string `form:"text"   validate:"required"`
	Quelle string `form:"quelle"`
	Datum  string `form:"datum"`
}

// Service is the review admin handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	st        *store.Store
	validator *validator.Validate
}

// Handler is the review admin handler.
var Handler = Service{}

// Init initializes the review admin handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st *store.Store) {
	if app == nil || cfg == nil || st == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.st = st
	s.validator = validator.New()

	app.Get(Path, s.Get)
	app.Post(Path+"/add", s.Add)
	app.Post(Path+"/delete/:id", s.Delete)
}

// Get renders the review list with the add form.
func (s *Service) Get(c *fiber.Ctx) error {
	kritiken, err := kritik.All(s.st)
	if err != nil {
		return err
	}

	return handler.Render(c, TemplateName, fiber.Map{
		"Kritiken": kritiken,
	})
}

// Add creates a new review from the submitted form.
func (s *Service) Add(c *fiber.Ctx) error {
	f := new(form)
	if err := c.BodyParser(f); err != nil {
		flash.Error(c, FlashInvalidInput)
		return c.Redirect(Path)
	}

	if err := s.validator.Struct(f); err != nil {
		flash.Error(c, FlashInvalidInput)
		return c.Redirect(Path)
	}

	err := kritik.Add(s.st, kritik.Fields{
		Stadt:  f.Stadt,
		Text:   f.Text,
		Quelle: f.Quelle,
		Datum:  f.Datum,
	})
	if err != nil {
		return err
	}

	flash.Success(c, FlashAdded)

	return c.Redirect(Path)
}

// Delete removes a review.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err == nil {
		if err = kritik.Delete(s.st, id); err != nil {
			return err
		}
	}

	flash.Success(c, FlashDeleted)

	return c.Redirect(Path)
}
