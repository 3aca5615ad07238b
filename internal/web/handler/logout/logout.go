package logout

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/buehnenwerk/udo-story/internal/config"
	"github.com/buehnenwerk/udo-story/internal/web/handler"
	"github.com/buehnenwerk/udo-story/internal/web/session"
)

// Path is the path of the logout endpoint.
const Path = handler.AdminRootPath + "/logout"

// Service is the logout handler service.
type Service struct {
	handler.Service
	cfg *config.Config
}

// Handler is the logout handler.
var Handler = Service{}

// Init initializes the logout handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config) {
	if app == nil || cfg == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg

	app.Get(Path, s.Logout)
	app.Post(Path, s.Logout)
}

// Logout handles admin logout by clearing the session.
func (s *Service) Logout(c *fiber.Ctx) error {
	// Get session cookie
	if loginCookie := c.Cookies(session.CookieName); loginCookie != "" {
		sessionID, ok := session.VerifyCookie(loginCookie, s.cfg.Webserver.SessionSecret)
		if ok {
			// Delete session from store
			if err := session.Destroy(sessionID); err != nil {
				log.Error().Err(err).Msg("failed to delete session")
			}
		}
	}

	// Clear the session cookie
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    "",
		MaxAge:   -1,
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.Redirect(handler.RootPath)
}
