// Package termine provides the admin panel pages for managing tour dates.
package termine

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/buehnenwerk/udo-story/internal/config"
	"github.com/buehnenwerk/udo-story/internal/db/controller/termin"
	"github.com/buehnenwerk/udo-story/internal/db/store"
	"github.com/buehnenwerk/udo-story/internal/web/flash"
	"github.com/buehnenwerk/udo-story/internal/web/handler"
)

const (
	// Path is the path to the tour date admin page.
	Path = handler.AdminRootPath + "/termine"

	// TemplateName is the name of the tour date admin template.
	TemplateName = "admin/termine"

	// FlashAdded is shown after a tour date was created.
	FlashAdded = "Termin erfolgreich hinzugefügt!"

	// FlashUpdated is shown after a tour date was updated.
	FlashUpdated = "Termin erfolgreich aktualisiert!"

	// FlashDeleted is shown after a tour date was deleted.
	FlashDeleted = "Termin erfolgreich gelöscht!"

	// FlashInvalidInput is shown when the submitted form fails validation.
	FlashInvalidInput = "Bitte füllen Sie alle Pflichtfelder korrekt aus!"
)

// form is the tour date form payload.
type form struct {
	Datum        string `form:"datum"        validate:"required,datetime=2006-01-02"`
	Zeit         string `form:"zeit"`
	Venue        string `form:"venue"        validate:"required"`
	Stadt        string `form:"stadt"        validate:"required"`
	Beschreibung string `form:"beschreibung"`
	TicketLink   string `form:"ticket_link"`
}

// Service is the tour date admin handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	st        *store.Store
	validator *validator.Validate
}

// Handler is the tour date admin handler.
var Handler = Service{}

// Init initializes the tour date admin handler.
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
	app.Post(Path+"/edit/:id", s.Edit)
	app.Post(Path+"/delete/:id", s.Delete)
}

// Get renders the tour date list with the add/edit forms.
func (s *Service) Get(c *fiber.Ctx) error {
	termine, err := termin.All(s.st)
	if err != nil {
		return err
	}

	return handler.Render(c, TemplateName, fiber.Map{
		"Termine": termine,
	})
}

// Add creates a new tour date from the submitted form.
func (s *Service) Add(c *fiber.Ctx) error {
	f, ok := s.parseForm(c)
	if !ok {
		return c.Redirect(Path)
	}

	if err := termin.Add(s.st, f.fields()); err != nil {
		return err
	}

	flash.Success(c, FlashAdded)

	return c.Redirect(Path)
}

// Edit updates an existing tour date from the submitted form.
func (s *Service) Edit(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		flash.Error(c, FlashInvalidInput)
		return c.Redirect(Path)
	}

	f, ok := s.parseForm(c)
	if !ok {
		return c.Redirect(Path)
	}

	if err = termin.Update(s.st, id, f.fields()); err != nil {
		return err
	}

	flash.Success(c, FlashUpdated)

	return c.Redirect(Path)
}

// Delete removes a tour date.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		flash.Error(c, FlashInvalidInput)
		return c.Redirect(Path)
	}

	if err = termin.Delete(s.st, id); err != nil {
		return err
	}

	flash.Success(c, FlashDeleted)

	return c.Redirect(Path)
}

// parseForm parses and validates the tour date form, queueing an error
// flash on failure.
func (s *Service) parseForm(c *fiber.Ctx) (*form, bool) {
	f := new(form)
	if err := c.BodyParser(f); err != nil {
		flash.Error(c, FlashInvalidInput)
		return nil, false
	}

	if err := s.validator.Struct(f); err != nil {
		flash.Error(c, FlashInvalidInput)
		return nil, false
	}

	return f, true
}

func (f *form) fields() termin.Fields {
	return termin.Fields{
		Datum:        f.Datum,
		Zeit:         f.Zeit,
		Venue:        f.Venue,
		Stadt:        f.Stadt,
		Beschreibung: f.Beschreibung,
		TicketLink:   f.TicketLink,
	}
}
