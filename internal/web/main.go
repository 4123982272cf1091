// Package web wires the fiber application: middleware, handler registration
// and the lifecycle of the HTTP server.
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
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/auth"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/config"
	fiberlogger "github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/logger/adapter/fiber"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/web/handler"
	rolehandler "github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/web/handler/admin/role"
	userhandler "github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/web/handler/admin/user"
	attributehandler "github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/web/handler/attribute"
	categoryhandler "github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/web/handler/category"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/web/handler/dashboard"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/web/handler/login"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/web/handler/logout"
	movementhandler "github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/web/handler/movement"
	notificationhandler "github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/web/handler/notification"
	producthandler "github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/web/handler/product"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/web/handler/profile"
	settingshandler "github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/web/handler/settings"
	warehousehandler "github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/web/handler/warehouse"
)

// StatusPath is the check alive endpoint used by load balancers.
const StatusPath = "/status"

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	authService  *auth.Service
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	// Wait interrupt or shutdown request through /shutdown
	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

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

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	// access log middleware
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: StatusPath,
	}))

	// Initialize auth service
	authService := auth.NewService(db)

	// init web service
	service := &Service{
		cfg:         cfg,
		App:         app,
		db:          db,
		authService: authService,
	}
	service.alive.Store(true)

	// check alive endpoint, flips to 503 during graceful shutdown
	app.Get(StatusPath, func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.JSON(fiber.Map{"status": "ok"})
	})

	// init handlers (they register their own routes with permission checks)
	handlers := map[string]handler.Service{
		"login":        &login.Handler,
		"logout":       &logout.Handler,
		"profile":      &profile.Handler,
		"dashboard":    &dashboard.Handler,
		"user":         &userhandler.Handler,
		"role":         &rolehandler.Handler,
		"product":      &producthandler.Handler,
		"category":     &categoryhandler.Handler,
		"attribute":    &attributehandler.Handler,
		"warehouse":    &warehousehandler.Handler,
		"movement":     &movementhandler.Handler,
		"notification": &notificationhandler.Handler,
		"settings":     &settingshandler.Handler,
	}

	for name, h := range handlers {
		if err := h.Init(app, cfg, db, authService); err != nil {
			log.Fatal().Err(err).Str("handler", name).Msg("failed to init handler")
		}
	}

	return service
}
