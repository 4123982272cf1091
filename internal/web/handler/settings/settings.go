// Package settings provides handlers for application-wide settings. Each
// setting is a named JSON document stored as an opaque blob.
package settings

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/auth"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/config"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/controller/setting"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/web/handler"
)

// Path is the base path for settings management.
const Path = handler.APIPrefix + "/settings"

// Service provides operations for application settings.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.db = db
	s.cfg = cfg

	guard := auth.RequirePermission(authService, auth.PermSystemSettingsManage)

	app.Get(Path, guard, s.List)
	app.Get(Path+"/:name", guard, s.Get)
	app.Put(Path+"/:name", guard, s.Set)
	app.Delete(Path+"/:name", guard, s.Delete)

	return nil
}

// List returns all settings with their JSON values.
func (s *Service) List(c *fiber.Ctx) error {
	all, err := setting.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list settings")

		return handler.Error(c, err)
	}

	items := make([]fiber.Map, 0, len(all))
	for _, item := range all {
		items = append(items, fiber.Map{
			"name":  item.Name,
			"value": json.RawMessage(item.Value),
		})
	}

	return c.JSON(fiber.Map{"items": items})
}

// Get returns a single setting.
func (s *Service) Get(c *fiber.Ctx) error {
	item, err := setting.Get(s.db, c.Params("name"))
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(fiber.Map{
		"name":  item.Name,
		"value": json.RawMessage(item.Value),
	})
}

// Set creates or replaces a setting. The request body must be valid JSON and
// is stored as given.
func (s *Service) Set(c *fiber.Ctx) error {
	body := c.Body()
	if !json.Valid(body) {
		return handler.ValidationError(c, "value must be valid JSON")
	}

	item, err := setting.Set(s.db, c.Params("name"), append([]byte(nil), body...))
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(fiber.Map{
		"name":  item.Name,
		"value": json.RawMessage(item.Value),
	})
}

// Delete removes a setting.
func (s *Service) Delete(c *fiber.Ctx) error {
	if err := setting.Delete(s.db, c.Params("name")); err != nil {
		return handler.Error(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
