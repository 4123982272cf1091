// Package role provides handlers for managing roles and their permission
// grants.
package role

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/auth"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/config"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/controller/role"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/models"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/web/handler"
)

const (
	// Path is the base path for role management.
	Path = handler.APIPrefix + "/roles"

	// PermissionsPath lists the known permissions for the role editor.
	PermissionsPath = handler.APIPrefix + "/permissions"
)

// Service provides CRUD operations for roles.
type Service struct {
	cfg         *config.Config
	db          *gorm.DB
	validator   *validator.Validate
	authService *auth.Service
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
	s.authService = authService

	app.Get(Path,
		auth.RequirePermission(authService, auth.PermRolesView),
		s.List,
	)
	app.Post(Path,
		auth.RequirePermission(authService, auth.PermRolesCreate),
		s.Create,
	)
	app.Get(Path+"/:id",
		auth.RequirePermission(authService, auth.PermRolesView),
		s.Get,
	)
	app.Put(Path+"/:id",
		auth.RequirePermission(authService, auth.PermRolesUpdate),
		s.Update,
	)
	app.Delete(Path+"/:id",
		auth.RequirePermission(authService, auth.PermRolesDelete),
		s.Delete,
	)
	app.Put(Path+"/:id/permissions",
		auth.RequirePermission(authService, auth.PermRolesUpdate),
		s.SetPermissions,
	)

	app.Get(PermissionsPath,
		auth.RequirePermission(authService, auth.PermRolesView),
		s.ListPermissions,
	)

	return nil
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err
}

func roleResponse(r *models.Role) fiber.Map {
	return fiber.Map{
		"id":          r.ID,
		"name":        r.Name,
		"slug":        r.Slug,
		"description": r.Description,
		"active":      r.Active,
		"is_system":   r.IsSystem,
		"created_at":  r.CreatedAt,
		"updated_at":  r.UpdatedAt,
	}
}

// List returns all roles.
func (s *Service) List(c *fiber.Ctx) error {
	roles, err := role.List(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list roles")

		return handler.Error(c, err)
	}

	items := make([]fiber.Map, 0, len(roles))
	for i := range roles {
		items = append(items, roleResponse(&roles[i]))
	}

	return c.JSON(fiber.Map{"items": items})
}

// createRequest is the role creation request body.
type createRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"required,max=100"`
	Description string `json:"description" validate:"max=255"`
}

// Create creates a new role.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(createRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.ValidationError(c, "invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, err.Error())
	}

	created, err := role.Create(s.db, role.CreateInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		return handler.Error(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(roleResponse(created))
}

// Get returns a role together with its granted permissions.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.ValidationError(c, "invalid role id")
	}

	r, err := role.Get(s.db, id)
	if err != nil {
		return handler.Error(c, err)
	}

	perms, err := role.Permissions(s.db, id)
	if err != nil {
		return handler.Error(c, err)
	}

	permItems := make([]fiber.Map, 0, len(perms))
	for _, perm := range perms {
		permItems = append(permItems, fiber.Map{
			"id":     perm.ID,
			"slug":   perm.Slug,
			"name":   perm.Name,
			"module": perm.Module,
		})
	}

	resp := roleResponse(r)
	resp["permissions"] = permItems

	return c.JSON(resp)
}

// updateRequest is the role update request body.
type updateRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=255"`
	Active      *bool   `json:"active"`
}

// Update updates a role.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.ValidationError(c, "invalid role id")
	}

	req := new(updateRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.ValidationError(c, "invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, err.Error())
	}

	updated, err := role.Update(s.db, id, role.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
	})
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(roleResponse(updated))
}

// Delete removes a role.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.ValidationError(c, "invalid role id")
	}

	if err := role.Delete(s.db, id); err != nil {
		return handler.Error(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// permissionsRequest is the permission replacement request body. The given
// set fully replaces the current grants of the role.
type permissionsRequest struct {
	PermissionIDs []uint `json:"permission_ids"`
}

// SetPermissions replaces the permission set of a role.
func (s *Service) SetPermissions(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.ValidationError(c, "invalid role id")
	}

	req := new(permissionsRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.ValidationError(c, "invalid request body")
	}

	err = s.authService.ReplaceRolePermissions(id, req.PermissionIDs)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrRoleNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "not_found",
				"message": "role not found",
			})
		case errors.Is(err, auth.ErrPermissionNotFound):
			return handler.ValidationError(c, "one or more permissions do not exist")
		default:
			log.Error().Err(err).Uint("role_id", id).Msg("failed to replace role permissions")

			return handler.Error(c, err)
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListPermissions returns the permission catalog grouped for the role editor.
func (s *Service) ListPermissions(c *fiber.Ctx) error {
	var perms []models.Permission
	err := s.db.Where("active = ?", true).
		Order("module, slug").
		Find(&perms).Error
	if err != nil {
		log.Error().Err(err).Msg("failed to list permissions")

		return handler.Error(c, err)
	}

	items := make([]fiber.Map, 0, len(perms))
	for _, perm := range perms {
		items = append(items, fiber.Map{
			"id":     perm.ID,
			"slug":   perm.Slug,
			"name":   perm.Name,
			"module": perm.Module,
		})
	}

	return c.JSON(fiber.Map{"items": items})
}
