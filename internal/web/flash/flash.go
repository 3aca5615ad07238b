// Package flash carries one-shot success and error messages between
// requests via short-lived cookies.
package flash

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
)

const (
	// SuccessCookie holds the next success message to display.
	SuccessCookie = "flash_success"

	// ErrorCookie holds the next error message to display.
	ErrorCookie = "flash_error"

	// LocalSuccess is the fiber.Locals key templates read success messages from.
	LocalSuccess = "FlashSuccess"

	// LocalError is the fiber.Locals key templates read error messages from.
	LocalError = "FlashError"

	cookieMaxAge = 60 // seconds; a flash only has to survive one redirect
)

// Success queues a success message for the next rendered page.
func Success(c *fiber.Ctx, msg string) {
	setCookie(c, SuccessCookie, msg)
}

// Error queues an error message for the next rendered page.
func Error(c *fiber.Ctx, msg string) {
	setCookie(c, ErrorCookie, msg)
}

// Middleware reads queued flash messages, clears their cookies and
// exposes the messages to templates via fiber.Locals.
func Middleware(c *fiber.Ctx) error {
	c.Locals(LocalSuccess, takeCookie(c, SuccessCookie))
	c.Locals(LocalError, takeCookie(c, ErrorCookie))

	return c.Next()
}

func setCookie(c *fiber.Ctx, name, msg string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    url.QueryEscape(msg),
		MaxAge:   cookieMaxAge,
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

func takeCookie(c *fiber.Ctx, name string) string {
	raw := c.Cookies(name)
	if raw == "" {
		return ""
	}

	// expire the cookie so the message shows exactly once
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		MaxAge:   -1,
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
	})

	msg, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}

	return msg
}
