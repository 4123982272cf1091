// Package product provides handlers for the product catalog, including the
// dynamic attribute values of a product.
package product

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
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/controller/product"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/models"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/web/handler"
)

// Path is the base path for product management.
const Path = handler.APIPrefix + "/products"

// Service provides CRUD operations for products.
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
		auth.RequirePermission(authService, auth.PermProductsCreate),
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
		auth.RequirePermission(authService, auth.PermProductsDelete),
		s.Delete,
	)

	app.Get(Path+"/:id/attributes",
		auth.RequirePermission(authService, auth.PermProductsView),
		s.ListValues,
	)
	app.Put(Path+"/:id/attributes/:attributeId",
		auth.RequirePermission(authService, auth.PermProductsUpdate),
		s.SetValue,
	)
	app.Delete(Path+"/:id/attributes/:attributeId",
		auth.RequirePermission(authService, auth.PermProductsUpdate),
		s.DeleteValue,
	)

	return nil
}

func parseID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}

func productResponse(p *models.Product) fiber.Map {
	resp := fiber.Map{
		"id":          p.ID,
		"sku":         p.SKU,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"active":      p.Active,
		"created_at":  p.CreatedAt,
		"updated_at":  p.UpdatedAt,
	}

	if p.Category != nil {
		resp["category"] = fiber.Map{
			"id":   p.Category.ID,
			"name": p.Category.Name,
			"slug": p.Category.Slug,
		}
	}

	return resp
}

// List returns products matching the query filters.
func (s *Service) List(c *fiber.Ctx) error {
	filter := product.ListFilter{
		CategoryID: uint(c.QueryInt("category", 0)),
		Search:     c.Query("search"),
		ActiveOnly: c.QueryBool("active", false),
	}

	products, err := product.List(s.db, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list products")

		return handler.Error(c, err)
	}

	items := make([]fiber.Map, 0, len(products))
	for i := range products {
		items = append(items, productResponse(&products[i]))
	}

	return c.JSON(fiber.Map{"items": items})
}

// createRequest is the product creation request body.
type createRequest struct {
	SKU         string  `json:"sku" validate:"required,max=100"`
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description" validate:"max=1000"`
	Price       float64 `json:"price" validate:"gte=0"`
	CategoryID  *uint   `json:"category_id"`
}

// Create creates a new product.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(createRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.ValidationError(c, "invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, err.Error())
	}

	created, err := product.Create(s.db, product.CreateInput{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return handler.Error(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(productResponse(created))
}

// Get returns a product together with its attribute values.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.ValidationError(c, "invalid product id")
	}

	p, err := product.Get(s.db, id)
	if err != nil {
		return handler.Error(c, err)
	}

	values, err := attribute.ValuesForProduct(s.db, id)
	if err != nil {
		return handler.Error(c, err)
	}

	resp := productResponse(p)
	resp["attributes"] = values

	return c.JSON(resp)
}

// updateRequest is the product update request body.
type updateRequest struct {
	SKU           *string  `json:"sku" validate:"omitempty,max=100"`
	Name          *string  `json:"name" validate:"omitempty,max=255"`
	Description   *string  `json:"description" validate:"omitempty,max=1000"`
	Price         *float64 `json:"price" validate:"omitempty,gte=0"`
	CategoryID    *uint    `json:"category_id"`
	ClearCategory bool     `json:"clear_category"`
	Active        *bool    `json:"active"`
}

// Update updates a product.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.ValidationError(c, "invalid product id")
	}

	req := new(updateRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.ValidationError(c, "invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, err.Error())
	}

	updated, err := product.Update(s.db, id, product.UpdateInput{
		SKU:           req.SKU,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		CategoryID:    req.CategoryID,
		ClearCategory: req.ClearCategory,
		Active:        req.Active,
	})
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(productResponse(updated))
}

// Delete removes a product and its attribute values.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.ValidationError(c, "invalid product id")
	}

	if err := product.Delete(s.db, id); err != nil {
		return handler.Error(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListValues returns the attribute values of a product with resolved option
// labels.
func (s *Service) ListValues(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.ValidationError(c, "invalid product id")
	}

	if _, err := product.Get(s.db, id); err != nil {
		return handler.Error(c, err)
	}

	values, err := attribute.ValuesForProduct(s.db, id)
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(fiber.Map{"items": values})
}

// valueRequest is the attribute value upsert request body. Enumerated
// attributes take an option ID, all others take a raw value.
type valueRequest struct {
	Value    string `json:"value"`
	OptionID uint   `json:"option_id"`
}

// SetValue creates or replaces one attribute value of a product.
func (s *Service) SetValue(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.ValidationError(c, "invalid product id")
	}

	attributeID, err := strconv.ParseUint(c.Params("attributeId"), 10, 32)
	if err != nil {
		return handler.ValidationError(c, "invalid attribute id")
	}

	if _, err := product.Get(s.db, id); err != nil {
		return handler.Error(c, err)
	}

	req := new(valueRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.ValidationError(c, "invalid request body")
	}

	value, err := attribute.SetValue(s.db, id, uint(attributeID), req.Value, req.OptionID)
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(fiber.Map{
		"product_id":   value.ProductID,
		"attribute_id": value.AttributeID,
		"value":        value.Value,
		"option_id":    value.OptionID,
	})
}

// DeleteValue removes one attribute value of a product.
func (s *Service) DeleteValue(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.ValidationError(c, "invalid product id")
	}

	attributeID, err := strconv.ParseUint(c.Params("attributeId"), 10, 32)
	if err != nil {
		return handler.ValidationError(c, "invalid attribute id")
	}

	if err := attribute.DeleteValue(s.db, id, uint(attributeID)); err != nil {
		return handler.Error(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
