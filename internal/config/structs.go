package config

import (
	"time"

	"github.com/buehnenwerk/udo-story/internal/logger"
)

// DefaultSessionTTL is the session lifetime used when none is configured.
const DefaultSessionTTL = 24 * time.Hour

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Uploads   Uploads
	Log       logger.Log
	Title     string
	Webserver Webserver
}

// DB holds the embedded database settings.
type DB struct {
	// Path is the location of the SQLite snapshot file. The whole database
	// is loaded from it at startup and rewritten to it after every mutation.
	Path string
}

// Uploads holds the image upload settings.
type Uploads struct {
	Dir string // directory where uploaded images are stored
}

// Webserver implement webserver settings.
type Webserver struct {
	CacheEnabled  bool    // true = send long-lived cache headers for static assets (production)
	Domain        string  // domain name for the webserver
	Port          int     // listening port for the webserver
	URL           string  // base url for the webserver
	SessionSecret string  // key used to sign session cookies
	Session       Session // session settings
}
