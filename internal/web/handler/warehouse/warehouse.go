// Package warehouse provides handlers for managing warehouses.
package warehouse

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/auth"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/config"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/controller/warehouse"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/models"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/web/handler"
)

// Path is the base path for warehouse management.
const Path = handler.APIPrefix + "/warehouses"

// Service provides CRUD operations for warehouses.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
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
	s.validator = validator.New()

	app.Get(Path,
		auth.RequirePermission(authService, auth.PermWarehousesView),
		s.List,
	)
	app.Post(Path,
		auth.RequirePermission(authService, auth.PermWarehousesCreate),
		s.Create,
	)
	app.Get(Path+"/:id",
		auth.RequirePermission(authService, auth.PermWarehousesView),
		s.Get,
	)
	app.Put(Path+"/:id",
		auth.RequirePermission(authService, auth.PermWarehousesUpdate),
		s.Update,
	)
	app.Delete(Path+"/:id",
		auth.RequirePermission(authService, auth.PermWarehousesDelete),
		s.Delete,
	)

	return nil
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err
}

func warehouseResponse(wh *models.Warehouse) fiber.Map {
	return fiber.Map{
		"id":         wh.ID,
		"name":       wh.Name,
		"code":       wh.Code,
		"address":    wh.Address,
		"active":     wh.Active,
		"created_at": wh.CreatedAt,
		"updated_at": wh.UpdatedAt,
	}
}

// List returns all warehouses.
func (s *Service) List(c *fiber.Ctx) error {
	whs, err := warehouse.List(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list warehouses")

		return handler.Error(c, err)
	}

	items := make([]fiber.Map, 0, len(whs))
	for i := range whs {
		items = append(items, warehouseResponse(&whs[i]))
	}

	return c.JSON(fiber.Map{"items": items})
}

// createRequest is the warehouse creation request body.
type createRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Code    string `json:"code" validate:"required,max=50"`
	Address string `json:"address" validate:"max=255"`
}

// Create creates a new warehouse.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(createRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.ValidationError(c, "invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, err.Error())
	}

	created, err := warehouse.Create(s.db, warehouse.CreateInput{
		Name:    req.Name,
		Code:    req.Code,
		Address: req.Address,
	})
	if err != nil {
		return handler.Error(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(warehouseResponse(created))
}

// Get returns a single warehouse.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.ValidationError(c, "invalid warehouse id")
	}

	wh, err := warehouse.Get(s.db, id)
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(warehouseResponse(wh))
}

// updateRequest is the warehouse update request body.
type updateRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=100"`
	Address *string `json:"address" validate:"omitempty,max=255"`
	Active  *bool   `json:"active"`
}

// Update updates a warehouse.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.ValidationError(c, "invalid warehouse id")
	}

	req := new(updateRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.ValidationError(c, "invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, err.Error())
	}

	updated, err := warehouse.Update(s.db, id, warehouse.UpdateInput{
		Name:    req.Name,
		Address: req.Address,
		Active:  req.Active,
	})
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(warehouseResponse(updated))
}

// Delete removes a warehouse.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.ValidationError(c, "invalid warehouse id")
	}

	if err := warehouse.Delete(s.db, id); err != nil {
		return handler.Error(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
