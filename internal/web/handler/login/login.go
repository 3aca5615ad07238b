package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/buehnenwerk/udo-story/internal/config"
	adminctl "github.com/buehnenwerk/udo-story/internal/db/controller/admin"
	"github.com/buehnenwerk/udo-story/internal/db/models"
	"github.com/buehnenwerk/udo-story/internal/db/store"
	"github.com/buehnenwerk/udo-story/internal/web/flash"
	"github.com/buehnenwerk/udo-story/internal/web/handler"
	"github.com/buehnenwerk/udo-story/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = "/admin/login"

	// FlashLoginFailed is shown for any failed login attempt.
	FlashLoginFailed = "Ungültige Anmeldedaten!"

	// FlashLoginSucceeded is shown after a successful login.
	FlashLoginSucceeded = "Erfolgreich eingeloggt!"
)

// form is the login form payload.
type form struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	st  *store.Store
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st *store.Store) error {
	if app == nil || cfg == nil || st == nil {
		return errors.New("app, cfg or store is nil")
	}

	s.cfg = cfg
	s.st = st

	app.Get(Path, s.Get)
	app.Post(Path, s.Post)

	return nil
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return handler.Render(c, "admin/login", fiber.Map{})
}

// Post handles the login form submission. Every failure path produces the
// same redirect and flash so callers cannot probe for valid usernames.
func (s *Service) Post(c *fiber.Ctx) error {
	f := new(form)
	if err := c.BodyParser(f); err != nil {
		flash.Error(c, FlashLoginFailed)
		return c.Redirect(Path)
	}

	admin, err := s.authenticate(f.Username, f.Password)
	if err != nil {
		flash.Error(c, FlashLoginFailed)
		return c.Redirect(Path)
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")
		flash.Error(c, FlashLoginFailed)

		return c.Redirect(Path)
	}

	adminSession := &session.Data{
		AdminID:  admin.ID,
		Username: admin.Username,
	}

	if err = adminSession.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")
		flash.Error(c, FlashLoginFailed)

		return c.Redirect(Path)
	}

	// set login cookie
	cookieSettings := &fiber.Cookie{
		Name:     session.CookieName,
		Value:    session.SignCookie(sessionID, s.cfg.Webserver.SessionSecret),
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax",
	}

	if s.cfg.DevMode {
		cookieSettings.Secure = false
	}

	c.Cookie(cookieSettings)

	flash.Success(c, FlashLoginSucceeded)

	return c.Redirect(handler.AdminRootPath)
}

// authenticate looks up the admin and verifies the password. Unknown
// usernames and wrong passwords return the same error.
func (s *Service) authenticate(username, password string) (*models.Admin, error) {
	admin, err := adminctl.GetByUsername(s.st, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !admin.VerifyPassword(password) {
		return nil, ErrInvalidCredentials
	}

	return admin, nil
}
