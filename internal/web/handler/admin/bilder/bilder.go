// Package bilder provides the admin panel pages for the image gallery.
package bilder

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/buehnenwerk/udo-story/internal/config"
	"github.com/buehnenwerk/udo-story/internal/db/controller/image"
	"github.com/buehnenwerk/udo-story/internal/db/store"
	"github.com/buehnenwerk/udo-story/internal/upload"
	"github.com/buehnenwerk/udo-story/internal/web/flash"
	"github.com/buehnenwerk/udo-story/internal/web/handler"
)

const (
	// Path is the path to the image admin page.
	Path = handler.AdminRootPath + "/bilder"

	// TemplateName is the name of the image admin template.
	TemplateName = "admin/bilder"

	// FormFileKey is the multipart field name of the uploaded image.
	FormFileKey = "image"

	// FlashUploaded is shown after an image was uploaded.
	FlashUploaded = "Bild erfolgreich hochgeladen!"

	// FlashDeleted is shown after an image was deleted.
	FlashDeleted = "Bild erfolgreich gelöscht!"

	// FlashNoFile is shown when no file was selected for upload.
	FlashNoFile = "Bitte wählen Sie ein Bild aus!"

	// FlashBadFile is shown when the file violates the upload policy.
	FlashBadFile = "Nur Bilddateien bis 10 MB sind erlaubt!"
)

// Service is the image admin handler service.
type Service struct {
	handler.Service
	cfg   *config.Config
	st    *store.Store
	saver *upload.Saver
}

// Handler is the image admin handler.
var Handler = Service{}

// Init initializes the image admin handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st *store.Store, saver *upload.Saver) {
	if app == nil || cfg == nil || st == nil || saver == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.st = st
	s.saver = saver

	app.Get(Path, s.Get)
	app.Post(Path+"/upload", s.Upload)
	app.Post(Path+"/delete/:id", s.Delete)
}

// Get renders the gallery management page.
func (s *Service) Get(c *fiber.Ctx) error {
	images, err := image.List(s.st, 0)
	if err != nil {
		return err
	}

	return handler.Render(c, TemplateName, fiber.Map{
		"Images": images,
	})
}

// Upload stores a submitted image file and records it in the gallery.
func (s *Service) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile(FormFileKey)
	if err != nil {
		flash.Error(c, FlashNoFile)
		return c.Redirect(Path)
	}

	stored, err := s.saver.Save(fh)
	if err != nil {
		log.Warn().Err(err).Str("filename", fh.Filename).Msg("image upload rejected")
		flash.Error(c, FlashBadFile)

		return c.Redirect(Path)
	}

	err = image.Add(s.st, image.Fields{
		Filename:     stored.Filename,
		OriginalName: stored.OriginalName,
		Title:        c.FormValue("title"),
		Beschreibung: c.FormValue("beschreibung"),
	})
	if err != nil {
		// do not leave an orphan file behind
		_ = s.saver.Remove(stored.Filename)
		return err
	}

	flash.Success(c, FlashUploaded)

	return c.Redirect(Path)
}

// Delete removes an image file and its gallery row. The file goes first;
// a missing file is tolerated so a stale row can always be cleaned up.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		flash.Success(c, FlashDeleted)
		return c.Redirect(Path)
	}

	img, err := image.GetByID(s.st, id)
	if err == nil {
		if err = s.saver.Remove(img.Filename); err != nil {
			return err
		}

		if err = image.Delete(s.st, id); err != nil {
			return err
		}
	}

	flash.Success(c, FlashDeleted)

	return c.Redirect(Path)
}
