// Package movement provides handlers for recording and browsing inventory
// movements.
package movement

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/auth"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/config"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/controller/movement"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/models"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/web/handler"
)

// Path is the base path for inventory movements.
const Path = handler.APIPrefix + "/movements"

// Service provides operations for inventory movements.
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
	app.Delete(Path+"/:id",
		auth.RequirePermission(authService, auth.PermWarehousesDelete),
		s.Delete,
	)

	return nil
}

func movementResponse(mov *models.InventoryMovement) fiber.Map {
	resp := fiber.Map{
		"id":         mov.ID,
		"direction":  mov.Direction,
		"quantity":   mov.Quantity,
		"note":       mov.Note,
		"created_by": mov.CreatedBy,
		"created_at": mov.CreatedAt,
		"product": fiber.Map{
			"id":   mov.Product.ID,
			"sku":  mov.Product.SKU,
			"name": mov.Product.Name,
		},
		"warehouse": fiber.Map{
			"id":   mov.Warehouse.ID,
			"code": mov.Warehouse.Code,
			"name": mov.Warehouse.Name,
		},
	}

	return resp
}

// List returns movements, optionally filtered by product, warehouse or
// direction.
func (s *Service) List(c *fiber.Ctx) error {
	filter := movement.ListFilter{
		ProductID:   uint64(c.QueryInt("product", 0)),
		WarehouseID: uint(c.QueryInt("warehouse", 0)),
		Direction:   models.MovementDirection(c.Query("direction")),
	}

	movs, err := movement.List(s.db, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list movements")

		return handler.Error(c, err)
	}

	items := make([]fiber.Map, 0, len(movs))
	for i := range movs {
		items = append(items, movementResponse(&movs[i]))
	}

	return c.JSON(fiber.Map{"items": items})
}

// createRequest is the movement creation request body.
type createRequest struct {
	ProductID   uint64 `json:"product_id" validate:"required"`
	WarehouseID uint   `json:"warehouse_id" validate:"required"`
	Direction   string `json:"direction" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required"`
	Note        string `json:"note" validate:"max=255"`
}

// Create records a new movement with the caller as its author.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(createRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.ValidationError(c, "invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, err.Error())
	}

	actorID := auth.CurrentUserID(c)

	created, err := movement.Create(s.db, movement.CreateInput{
		ProductID:   req.ProductID,
		WarehouseID: req.WarehouseID,
		Direction:   models.MovementDirection(req.Direction),
		Quantity:    req.Quantity,
		Note:        req.Note,
		CreatedBy:   &actorID,
	})
	if err != nil {
		return handler.Error(c, err)
	}

	loaded, err := movement.Get(s.db, created.ID)
	if err != nil {
		return handler.Error(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(movementResponse(loaded))
}

// Get returns a single movement.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return handler.ValidationError(c, "invalid movement id")
	}

	mov, err := movement.Get(s.db, id)
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(movementResponse(mov))
}

// Delete removes a movement record.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return handler.ValidationError(c, "invalid movement id")
	}

	if err := movement.Delete(s.db, id); err != nil {
		return handler.Error(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
