// Package attribute provides handlers for managing attribute definitions and
// their enumerated options.
package attribute

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/auth"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/config"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/controller/attribute"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/models"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/web/handler"
)

// Path is the base path for attribute management.
const Path = handler.APIPrefix + "/attributes"

// Service provides CRUD operations for attribute definitions.
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

	app.Get(Path+"/:id/options",
		auth.RequirePermission(authService, auth.PermProductsView),
		s.ListOptions,
	)
	app.Post(Path+"/:id/options",
		auth.RequirePermission(authService, auth.PermProductsUpdate),
		s.CreateOption,
	)
	app.Delete(Path+"/:id/options/:optionId",
		auth.RequirePermission(authService, auth.PermProductsUpdate),
		s.DeleteOption,
	)

	return nil
}

func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	return uint(id), err
}

func attributeResponse(attr *models.ProductAttribute) fiber.Map {
	return fiber.Map{
		"id":            attr.ID,
		"name":          attr.Name,
		"slug":          attr.Slug,
		"type":          attr.Type,
		"description":   attr.Description,
		"is_required":   attr.IsRequired,
		"is_filterable": attr.IsFilterable,
		"is_searchable": attr.IsSearchable,
		"sort_order":    attr.SortOrder,
		"active":        attr.Active,
	}
}

func optionResponse(option *models.ProductAttributeOption) fiber.Map {
	return fiber.Map{
		"id":           option.ID,
		"attribute_id": option.AttributeID,
		"value":        option.Value,
		"label":        option.Label,
		"sort_order":   option.SortOrder,
	}
}

// List returns all attribute definitions in display order.
func (s *Service) List(c *fiber.Ctx) error {
	attrs, err := attribute.List(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list attributes")

		return handler.Error(c, err)
	}

	items := make([]fiber.Map, 0, len(attrs))
	for i := range attrs {
		items = append(items, attributeResponse(&attrs[i]))
	}

	return c.JSON(fiber.Map{"items": items})
}

// createRequest is the attribute creation request body.
type createRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Slug         string `json:"slug" validate:"required,max=100"`
	Type         string `json:"type" validate:"required"`
	Description  string `json:"description" validate:"max=255"`
	IsRequired   bool   `json:"is_required"`
	IsFilterable bool   `json:"is_filterable"`
	IsSearchable bool   `json:"is_searchable"`
	SortOrder    int    `json:"sort_order"`
}

// Create creates a new attribute definition.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(createRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.ValidationError(c, "invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, err.Error())
	}

	created, err := attribute.Create(s.db, attribute.CreateInput{
		Name:         req.Name,
		Slug:         req.Slug,
		Type:         models.AttributeType(req.Type),
		Description:  req.Description,
		IsRequired:   req.IsRequired,
		IsFilterable: req.IsFilterable,
		IsSearchable: req.IsSearchable,
		SortOrder:    req.SortOrder,
	})
	if err != nil {
		return handler.Error(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(attributeResponse(created))
}

// Get returns one attribute definition. Enumerated attributes include their
// options.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handler.ValidationError(c, "invalid attribute id")
	}

	attr, err := attribute.Get(s.db, id)
	if err != nil {
		return handler.Error(c, err)
	}

	resp := attributeResponse(attr)

	if attr.Type.IsSelectKind() {
		options, err := attribute.ListOptions(s.db, id)
		if err != nil {
			return handler.Error(c, err)
		}

		optionItems := make([]fiber.Map, 0, len(options))
		for i := range options {
			optionItems = append(optionItems, optionResponse(&options[i]))
		}

		resp["options"] = optionItems
	}

	return c.JSON(resp)
}

// updateRequest is the attribute update request body.
type updateRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Type         string `json:"type" validate:"required"`
	Description  string `json:"description" validate:"max=255"`
	IsRequired   bool   `json:"is_required"`
	IsFilterable bool   `json:"is_filterable"`
	IsSearchable bool   `json:"is_searchable"`
	SortOrder    int    `json:"sort_order"`
	Active       bool   `json:"active"`
}

// Update updates an attribute definition.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handler.ValidationError(c, "invalid attribute id")
	}

	req := new(updateRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.ValidationError(c, "invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, err.Error())
	}

	updated, err := attribute.Update(s.db, id, attribute.UpdateInput{
		Name:         req.Name,
		Type:         models.AttributeType(req.Type),
		Description:  req.Description,
		IsRequired:   req.IsRequired,
		IsFilterable: req.IsFilterable,
		IsSearchable: req.IsSearchable,
		SortOrder:    req.SortOrder,
		Active:       req.Active,
	})
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(attributeResponse(updated))
}

// Delete removes an attribute definition and its options.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handler.ValidationError(c, "invalid attribute id")
	}

	if err := attribute.Delete(s.db, id); err != nil {
		return handler.Error(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListOptions returns the options of an enumerated attribute.
func (s *Service) ListOptions(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handler.ValidationError(c, "invalid attribute id")
	}

	options, err := attribute.ListOptions(s.db, id)
	if err != nil {
		return handler.Error(c, err)
	}

	items := make([]fiber.Map, 0, len(options))
	for i := range options {
		items = append(items, optionResponse(&options[i]))
	}

	return c.JSON(fiber.Map{"items": items})
}

// optionRequest is the option creation request body.
type optionRequest struct {
	Value     string `json:"value" validate:"required,max=100"`
	Label     string `json:"label" validate:"max=100"`
	SortOrder int    `json:"sort_order"`
}

// CreateOption adds an option to an enumerated attribute.
func (s *Service) CreateOption(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handler.ValidationError(c, "invalid attribute id")
	}

	req := new(optionRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.ValidationError(c, "invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, err.Error())
	}

	created, err := attribute.CreateOption(s.db, id, req.Value, req.Label, req.SortOrder)
	if err != nil {
		return handler.Error(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(optionResponse(created))
}

// DeleteOption removes an option from an attribute.
func (s *Service) DeleteOption(c *fiber.Ctx) error {
	attributeID, err := parseID(c, "id")
	if err != nil {
		return handler.ValidationError(c, "invalid attribute id")
	}

	optionID, err := parseID(c, "optionId")
	if err != nil {
		return handler.ValidationError(c, "invalid option id")
	}

	option, err := attribute.GetOption(s.db, optionID)
	if err != nil {
		return handler.Error(c, err)
	}

	if option.AttributeID != attributeID {
		return handler.Error(c, attribute.ErrOptionNotFound)
	}

	if err := attribute.DeleteOption(s.db, optionID); err != nil {
		return handler.Error(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
