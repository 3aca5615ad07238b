package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/buehnenwerk/udo-story/internal/config"
	"github.com/buehnenwerk/udo-story/internal/web/handler/login"
	"github.com/buehnenwerk/udo-story/internal/web/session"
)

const adminPrefix = "/admin"

// Middleware returns a Fiber middleware that guards the admin panel.
// Public pages pass through untouched apart from the template locals.
func Middleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			isLoginPage   = IsLoginPage(c)
			sessDataValid bool
		)

		// check session cookie signature and validity
		if loginCookie := c.Cookies(session.CookieName); loginCookie != "" {
			sessionID, ok := session.VerifyCookie(loginCookie, cfg.Webserver.SessionSecret)
			if ok {
				sessData := new(session.Data)
				if err := sessData.Read(sessionID); err == nil && sessData.AdminID > 0 {
					sessDataValid = true
					// Add the current admin to locals for template access
					c.Locals("CurrentAdmin", *sessData)
				}
			}
		}

		c.Locals("IsLoggedIn", sessDataValid)
		c.Locals("CurrentPath", c.Path())

		if !IsAdminPage(c) {
			return c.Next()
		}

		// a logged-in admin has no business on the login page
		if sessDataValid && isLoginPage {
			return c.Redirect(adminPrefix)
		}

		if !sessDataValid && !isLoginPage {
			return c.Redirect(login.Path)
		}

		return c.Next()
	}
}

// IsAdminPage checks if the current request is for an admin panel page.
func IsAdminPage(c *fiber.Ctx) bool {
	p := strings.ToLower(c.Path())
	return p == adminPrefix || strings.HasPrefix(p, adminPrefix+"/")
}

// IsLoginPage checks if the current request is for the login page.
func IsLoginPage(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Path()), login.Path)
}
