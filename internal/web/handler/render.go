package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/buehnenwerk/udo-story/internal/web/flash"
)

// Render renders a template inside the base layout, merging the flash
// messages and login state set by the middleware chain into the bind.
func Render(c *fiber.Ctx, name string, bind fiber.Map) error {
	if bind == nil {
		bind = fiber.Map{}
	}

	// the layout reads settings on every page
	if _, ok := bind["Settings"]; !ok {
		bind["Settings"] = map[string]string{}
	}

	if _, ok := bind["Success"]; !ok {
		bind["Success"], _ = c.Locals(flash.LocalSuccess).(string)
	}

	if _, ok := bind["Error"]; !ok {
		bind["Error"], _ = c.Locals(flash.LocalError).(string)
	}

	bind["IsLoggedIn"], _ = c.Locals("IsLoggedIn").(bool)
	bind["CurrentPath"], _ = c.Locals("CurrentPath").(string)

	return c.Render(name, bind, BaseLayout)
}
