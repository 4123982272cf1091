// Package user provides handlers for managing user accounts.
package user

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/auth"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/config"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/models"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/web/handler"
)

const (
	// Path is the base path for user management.
	Path = handler.APIPrefix + "/users"

	// DefaultPageSize for pagination.
	DefaultPageSize = 25
)

// Service provides CRUD operations for users.
type Service struct {
	cfg         *config.Config
	db          *gorm.DB
	validator   *validator.Validate
	provider    *auth.LocalProvider
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
	s.provider = auth.NewLocalProvider(db)
	s.authService = authService

	app.Get(Path,
		auth.RequirePermission(authService, auth.PermUsersView),
		s.List,
	)
	app.Post(Path,
		auth.RequirePermission(authService, auth.PermUsersCreate),
		s.Create,
	)
	app.Get(Path+"/:id",
		auth.RequirePermission(authService, auth.PermUsersView),
		s.Get,
	)
	app.Put(Path+"/:id",
		auth.RequirePermission(authService, auth.PermUsersUpdate),
		s.Update,
	)
	app.Put(Path+"/:id/password",
		auth.RequirePermission(authService, auth.PermUsersUpdate),
		s.ResetPassword,
	)
	app.Delete(Path+"/:id",
		auth.RequirePermission(authService, auth.PermUsersDelete),
		s.Delete,
	)

	// Changing a user's role is reserved for the super-admin role; the
	// operation itself re-checks the capability of the acting user.
	app.Put(Path+"/:id/role",
		auth.RequireRole(authService, models.RoleSuperAdmin),
		s.SetRole,
	)

	return nil
}

func userResponse(user *models.User) fiber.Map {
	return fiber.Map{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"active":     user.Active,
		"created_at": user.CreatedAt,
		"updated_at": user.UpdatedAt,
	}
}

func parseID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}

// List shows users with simple pagination and an optional active filter.
func (s *Service) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	pageSize := c.QueryInt("pageSize", DefaultPageSize)
	if pageSize < 1 || pageSize > 100 {
		pageSize = DefaultPageSize
	}

	var active *bool
	switch c.Query("active") {
	case "true":
		v := true
		active = &v
	case "false":
		v := false
		active = &v
	}

	users, total, err := s.provider.ListUsers(active, pageSize, (page-1)*pageSize)
	if err != nil {
		log.Error().Err(err).Msg("failed to list users")

		return handler.Error(c, err)
	}

	items := make([]fiber.Map, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}

	return c.JSON(fiber.Map{
		"items":    items,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// createRequest is the user creation request body.
type createRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
}

// Create creates a new user account.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(createRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.ValidationError(c, "invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, err.Error())
	}

	user, err := s.provider.CreateUser(req.Username, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, auth.ErrUserNameOrEmailExists) {
			return handler.ValidationError(c, "username or email already exists")
		}

		log.Error().Err(err).Str("username", req.Username).Msg("failed to create user")

		return handler.Error(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(userResponse(user))
}

// Get returns a single user with their roles.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.ValidationError(c, "invalid user id")
	}

	user, err := s.provider.GetUserByID(id)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "not_found",
				"message": "user not found",
			})
		}

		return handler.Error(c, err)
	}

	roles, err := s.authService.RolesOf(id)
	if err != nil {
		return handler.Error(c, err)
	}

	roleSlugs := make([]string, 0, len(roles))
	for _, role := range roles {
		roleSlugs = append(roleSlugs, role.Slug)
	}

	resp := userResponse(user)
	resp["roles"] = roleSlugs

	return c.JSON(resp)
}

// updateRequest is the user update request body.
type updateRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Active    *bool  `json:"active"`
}

// Update updates the profile fields and active flag of a user.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.ValidationError(c, "invalid user id")
	}

	req := new(updateRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.ValidationError(c, "invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, err.Error())
	}

	if err := s.provider.UpdateUser(id, req.Email, req.FirstName, req.LastName); err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "not_found",
				"message": "user not found",
			})
		}

		return handler.Error(c, err)
	}

	if req.Active != nil {
		if *req.Active {
			err = s.provider.ActivateUser(id)
		} else {
			err = s.provider.DeactivateUser(id)
		}

		if err != nil {
			return handler.Error(c, err)
		}
	}

	user, err := s.provider.GetUserByID(id)
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(userResponse(user))
}

// passwordRequest is the admin password reset request body.
type passwordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// ResetPassword sets a new password for a user without the old one.
func (s *Service) ResetPassword(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.ValidationError(c, "invalid user id")
	}

	req := new(passwordRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.ValidationError(c, "invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, err.Error())
	}

	if err := s.provider.ResetPassword(id, req.Password); err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "not_found",
				"message": "user not found",
			})
		}

		return handler.Error(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Delete removes a user account.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.ValidationError(c, "invalid user id")
	}

	if id == auth.CurrentUserID(c) {
		return handler.ValidationError(c, "you can not delete your own account")
	}

	if err := s.provider.DeleteUser(id); err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "not_found",
				"message": "user not found",
			})
		}

		log.Error().Err(err).Uint64("user_id", id).Msg("failed to delete user")

		return handler.Error(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// roleRequest is the role assignment request body. A zero role ID clears the
// user's role.
type roleRequest struct {
	RoleID uint `json:"role_id"`
}

// SetRole replaces the role of a user.
func (s *Service) SetRole(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.ValidationError(c, "invalid user id")
	}

	req := new(roleRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.ValidationError(c, "invalid request body")
	}

	err = s.authService.ReplaceUserRole(auth.CurrentUserID(c), id, req.RoleID)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "not_found",
				"message": "user not found",
			})
		case errors.Is(err, auth.ErrRoleNotFound):
			return handler.ValidationError(c, "role does not exist")
		case errors.Is(err, auth.ErrMissingCapability):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":   "forbidden",
				"message": "you don't have permission to change user roles",
			})
		default:
			log.Error().Err(err).Uint64("user_id", id).Msg("failed to replace user role")

			return handler.Error(c, err)
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}
