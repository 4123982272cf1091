// Package daemon wires the application together: it opens the database,
// runs migrations and seeding, initializes session storage and starts the
// web service.
package daemon

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/storage"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/config"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/dsn"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/models"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/web"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService web.Service
}

// Start runs the web service until it is shut down by a signal.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	db, err := openDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	if err = migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	if err = seed(db); err != nil {
		log.Fatal().Err(err).Msg("failed to seed database")
	}

	session.Init(sessionStorage(cfg))

	return &Daemon{
		cfg:        cfg,
		webService: *web.New(cfg, db),
	}
}

// openDB opens a gorm connection for the configured engine.
func openDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.DB.Engine {
	case config.EnginePostgres:
		dialector = gormpostgres.Open(dsn.Create(cfg))
	case config.EngineSQLite:
		dialector = sqlite.Open(dsn.Create(cfg))
	default:
		dialector = gormmysql.Open(dsn.Create(cfg))
	}

	return gorm.Open(dialector, &gorm.Config{})
}

// migrate brings the schema up to date for all models.
func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.RolePermission{},
		&models.UserRole{},
		&models.Category{},
		&models.Product{},
		&models.ProductAttribute{},
		&models.ProductAttributeOption{},
		&models.ProductAttributeValue{},
		&models.Warehouse{},
		&models.InventoryMovement{},
		&models.Notification{},
		&models.Setting{},
	)
}

// sessionStorage returns the fiber session backend for the configured engine.
// SQLite deployments fall back to the in-memory store; sessions then do not
// survive a restart, which is acceptable for the single-node setups SQLite
// is meant for.
func sessionStorage(cfg *config.Config) storage.Storage {
	switch cfg.DB.Engine {
	case config.EnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         "sessions",
		})
	case config.EngineSQLite:
		return nil
	default:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         "sessions",
		})
	}
}
