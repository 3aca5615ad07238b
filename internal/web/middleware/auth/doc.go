// Package auth provides authentication middleware for the admin panel.
//
// The middleware validates session cookies, exposes the current admin and
// login state to templates via fiber.Locals, and redirects requests for
// admin pages to the login page when no valid session exists. Public
// pages are never gated; a logged-in admin requesting the login page is
// sent to the dashboard instead.
//
// Usage:
//
//	app.Use(authmiddleware.Middleware)
//
// The middleware expects sessions to be managed by the session package.
package auth
