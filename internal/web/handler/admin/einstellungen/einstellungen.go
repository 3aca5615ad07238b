// Package einstellungen provides the admin panel pages for site settings
// and the admin password change.
package einstellungen

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/buehnenwerk/udo-story/internal/config"
	adminctl "github.com/buehnenwerk/udo-story/internal/db/controller/admin"
	"github.com/buehnenwerk/udo-story/internal/db/controller/setting"
	"github.com/buehnenwerk/udo-story/internal/db/models"
	"github.com/buehnenwerk/udo-story/internal/db/store"
	"github.com/buehnenwerk/udo-story/internal/upload"
	"github.com/buehnenwerk/udo-story/internal/web/flash"
	"github.com/buehnenwerk/udo-story/internal/web/handler"
	"github.com/buehnenwerk/udo-story/internal/web/session"
)

const (
	// Path is the path to the settings admin page.
	Path = handler.AdminRootPath + "/einstellungen"

	// PasswordPath is the path of the password change endpoint.
	PasswordPath = handler.AdminRootPath + "/passwort"

	// TemplateName is the name of the settings admin template.
	TemplateName = "admin/einstellungen"

	// UploadPathPrefix is the public URL prefix of uploaded images.
	UploadPathPrefix = "/uploads/images/"

	// MinPasswordLength is the minimum length of a new admin password.
	MinPasswordLength = 6

	// FlashSaved is shown after the settings were stored.
	FlashSaved = "Einstellungen erfolgreich gespeichert!"

	// FlashPasswordChanged is shown after a successful password change.
	FlashPasswordChanged = "Passwort erfolgreich geändert!"

	// FlashWrongPassword is shown when the current password does not match.
	FlashWrongPassword = "Aktuelles Passwort ist falsch!"

	// FlashPasswordMismatch is shown when the confirmation differs.
	FlashPasswordMismatch = "Passwörter stimmen nicht überein!"

	// FlashPasswordTooShort is shown when the new password is too short.
	FlashPasswordTooShort = "Passwort muss mindestens 6 Zeichen lang sein!"
)

// imageSettings maps the optional upload fields of the settings form to
// the settings keys they override.
var imageSettings = []string{"hero_image", "artist_image"}

// Service is the settings admin handler service.
type Service struct {
	handler.Service
	cfg   *config.Config
	st    *store.Store
	saver *upload.Saver
}

// Handler is the settings admin handler.
var Handler = Service{}

// Init initializes the settings admin handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st *store.Store, saver *upload.Saver) {
	if app == nil || cfg == nil || st == nil || saver == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.st = st
	s.saver = saver

	app.Get(Path, s.Get)
	app.Post(Path, s.Post)
	app.Post(PasswordPath, s.ChangePassword)
}

// Get renders the settings page.
func (s *Service) Get(c *fiber.Ctx) error {
	settings, err := setting.All(s.st)
	if err != nil {
		return err
	}

	return handler.Render(c, TemplateName, fiber.Map{
		"Settings": settings,
	})
}

// Post upserts every submitted settings key. Optional hero and artist
// image uploads override the submitted values with the stored file path.
func (s *Service) Post(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return err
	}

	updates := make(map[string]string, len(form.Value))
	for key, values := range form.Value {
		if len(values) > 0 {
			updates[key] = values[0]
		}
	}

	for _, key := range imageSettings {
		files := form.File[key]
		if len(files) == 0 {
			continue
		}

		stored, errSave := s.saver.Save(files[0])
		if errSave != nil {
			log.Warn().Err(errSave).Str("setting", key).Msg("settings image rejected")
			continue
		}

		updates[key] = UploadPathPrefix + stored.Filename
	}

	for key, value := range updates {
		if err = setting.Set(s.st, key, value); err != nil {
			return err
		}
	}

	flash.Success(c, FlashSaved)

	return c.Redirect(Path)
}

// ChangePassword verifies the current password and stores a new hash.
// Each rule violation gets its own flash message.
func (s *Service) ChangePassword(c *fiber.Ctx) error {
	var (
		currentPassword = c.FormValue("current_password")
		newPassword     = c.FormValue("new_password")
		confirmPassword = c.FormValue("confirm_password")
	)

	admin, err := s.currentAdmin(c)
	if err != nil {
		return err
	}

	if !admin.VerifyPassword(currentPassword) {
		flash.Error(c, FlashWrongPassword)
		return c.Redirect(Path)
	}

	if newPassword != confirmPassword {
		flash.Error(c, FlashPasswordMismatch)
		return c.Redirect(Path)
	}

	if len([]rune(newPassword)) < MinPasswordLength {
		flash.Error(c, FlashPasswordTooShort)
		return c.Redirect(Path)
	}

	if err = adminctl.UpdatePassword(s.st, admin.ID, models.HashPassword(newPassword)); err != nil {
		return err
	}

	flash.Success(c, FlashPasswordChanged)

	return c.Redirect(Path)
}

// currentAdmin resolves the logged-in admin from the session locals set
// by the auth middleware.
func (s *Service) currentAdmin(c *fiber.Ctx) (*models.Admin, error) {
	sessData, ok := c.Locals("CurrentAdmin").(session.Data)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}

	return adminctl.GetByID(s.st, sessData.AdminID)
}
