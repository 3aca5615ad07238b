package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/template/html/v2"
	"github.com/rs/zerolog/log"

	"github.com/buehnenwerk/udo-story/internal/config"
	"github.com/buehnenwerk/udo-story/internal/db/store"
	accesslog "github.com/buehnenwerk/udo-story/internal/logger/adapter/fiber"
	"github.com/buehnenwerk/udo-story/internal/upload"
	"github.com/buehnenwerk/udo-story/internal/web/flash"
	"github.com/buehnenwerk/udo-story/internal/web/handler"
	"github.com/buehnenwerk/udo-story/internal/web/handler/admin/bilder"
	"github.com/buehnenwerk/udo-story/internal/web/handler/admin/dashboard"
	"github.com/buehnenwerk/udo-story/internal/web/handler/admin/einstellungen"
	"github.com/buehnenwerk/udo-story/internal/web/handler/admin/kritiken"
	"github.com/buehnenwerk/udo-story/internal/web/handler/admin/termine"
	"github.com/buehnenwerk/udo-story/internal/web/handler/login"
	"github.com/buehnenwerk/udo-story/internal/web/handler/logout"
	"github.com/buehnenwerk/udo-story/internal/web/handler/public"
	authmiddleware "github.com/buehnenwerk/udo-story/internal/web/middleware/auth"
)

const (
	// UploadURLPrefix is the public route uploaded images are served under.
	UploadURLPrefix = "/uploads/images"

	// staticCacheMaxAge is the cache lifetime of static assets when caching
	// is enabled (production).
	staticCacheMaxAge = 7 * 24 * time.Hour

	// ErrMsgInternal is the visitor-facing message of the 500 page.
	ErrMsgInternal = "Ein Fehler ist aufgetreten."

	// ErrMsgNotFound is the visitor-facing message of the 404 page.
	ErrMsgNotFound = "Seite nicht gefunden."
)

// Service represents the web service.
type Service struct {
	App   *fiber.App
	cfg   *config.Config
	alive atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	s.alive.Store(true)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for SIGINT or SIGTERM and then stops the http server.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.alive.Store(false)

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration, store and
// upload saver.
func New(cfg *config.Config, st *store.Store, saver *upload.Saver) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if st == nil {
		panic("store cannot be nil")
	}

	if saver == nil {
		panic("saver cannot be nil")
	}

	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in dev mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("dev mode enabled: using local filesystem for templates")
	}

	// Add template helper functions
	templateEngine.AddFunc("formatDate", formatDate)
	templateEngine.AddFunc("currentYear", func() int {
		return time.Now().Year()
	})

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          templateEngine,
			ErrorHandler:   errorHandler,
		},
	)

	var staticMaxAge int
	if cfg.Webserver.CacheEnabled {
		staticMaxAge = int(staticCacheMaxAge.Seconds())
	}

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				MaxAge:     staticMaxAge,
			},
		),
	)

	// serve uploaded images from the upload directory
	app.Static(UploadURLPrefix, saver.Dir(), fiber.Static{
		MaxAge: staticMaxAge,
	})

	// access log, flash and auth middleware
	app.Use(accesslog.New(accesslog.Config{Config: cfg.Log}))
	app.Use(flash.Middleware)
	app.Use(authmiddleware.Middleware(cfg))

	// init web service
	service := &Service{
		cfg: cfg,
		App: app,
	}

	// init handlers (they register their own routes)
	public.Handler.Init(app, cfg, st)

	if err := login.Handler.Init(app, cfg, st); err != nil {
		log.Fatal().Err(err).Msg("failed to init login handler")
	}

	logout.Handler.Init(app, cfg)
	dashboard.Handler.Init(app, cfg, st)
	termine.Handler.Init(app, cfg, st)
	bilder.Handler.Init(app, cfg, st, saver)
	kritiken.Handler.Init(app, cfg, st)
	einstellungen.Handler.Init(app, cfg, st, saver)

	// everything else is a 404
	app.Use(func(c *fiber.Ctx) error {
		c.Status(fiber.StatusNotFound)

		return handler.Render(c, "error", fiber.Map{
			"Message": ErrMsgNotFound,
		})
	})

	return service
}

// errorHandler renders the generic German error page for unhandled errors.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	log.Error().Err(err).Str("path", c.Path()).Int("status", code).Msg("request failed")

	message := ErrMsgInternal
	if code == fiber.StatusNotFound {
		message = ErrMsgNotFound
	}

	c.Status(code)

	if errRender := handler.Render(c, "error", fiber.Map{
		"Message": message,
	}); errRender != nil {
		return c.SendString(message)
	}

	return nil
}

// formatDate turns a YYYY-MM-DD date into the German DD.MM.YYYY display
// form. Values that do not parse are returned unchanged.
func formatDate(datum string) string {
	parsed, err := time.Parse("2006-01-02", datum)
	if err != nil {
		return datum
	}

	return parsed.Format("02.01.2006")
}
