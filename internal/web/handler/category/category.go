// Package category provides handlers for managing product categories.
package category

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/auth"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/config"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/controller/category"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/models"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/web/handler"
)

// Path is the base path for category management.
const Path = handler.APIPrefix + "/categories"

// Service provides CRUD operations for categories.
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
		auth.RequirePermission(authService, auth.PermProductsView),
		s.List,
	)
	app.Post(Path,
		auth.RequirePermission(authService, auth.PermProductsUpdate),
		s.Create,
	)
	app.Get(Path+"/:id",
		auth.RequirePermission(authService, auth.PermProductsView),
		s.Get,
	)
	app.Put(Path+"/:id",
		auth.RequirePermission(authService, auth.PermProductsUpdate),
		s.Update,
	)
	app.Delete(Path+"/:id",
		auth.RequirePermission(authService, auth.PermProductsUpdate),
		s.Delete,
	)

	return nil
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err
}

func categoryResponse(cat *models.Category) fiber.Map {
	return fiber.Map{
		"id":          cat.ID,
		"name":        cat.Name,
		"slug":        cat.Slug,
		"description": cat.Description,
		"created_at":  cat.CreatedAt,
		"updated_at":  cat.UpdatedAt,
	}
}

// List returns all categories.
func (s *Service) List(c *fiber.Ctx) error {
	cats, err := category.List(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list categories")

		return handler.Error(c, err)
	}

	items := make([]fiber.Map, 0, len(cats))
	for i := range cats {
		items = append(items, categoryResponse(&cats[i]))
	}

	return c.JSON(fiber.Map{"items": items})
}

// createRequest is the category creation request body.
type createRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"required,max=100"`
	Description string `json:"description" validate:"max=255"`
}

// Create creates a new category.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(createRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.ValidationError(c, "invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, err.Error())
	}

	created, err := category.Create(s.db, category.CreateInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		return handler.Error(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(categoryResponse(created))
}

// Get returns a single category.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.ValidationError(c, "invalid category id")
	}

	cat, err := category.Get(s.db, id)
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(categoryResponse(cat))
}

// updateRequest is the category update request body.
type updateRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

// Update updates a category.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.ValidationError(c, "invalid category id")
	}

	req := new(updateRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.ValidationError(c, "invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, err.Error())
	}

	updated, err := category.Update(s.db, id, category.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(categoryResponse(updated))
}

// Delete removes a category.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.ValidationError(c, "invalid category id")
	}

	if err := category.Delete(s.db, id); err != nil {
		return handler.Error(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
