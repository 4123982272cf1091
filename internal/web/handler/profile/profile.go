// Package profile provides endpoints about the authenticated user.
package profile

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/auth"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/config"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/web/handler"
)

// Path is the base path of the profile endpoints.
const Path = handler.APIPrefix + "/auth/me"

// Service is the profile handler service.
type Service struct {
	cfg         *config.Config
	db          *gorm.DB
	provider    *auth.LocalProvider
	authService *auth.Service
}

// Handler is the profile handler.
var Handler = Service{}

// Init initializes the profile handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.db = db
	s.cfg = cfg
	s.provider = auth.NewLocalProvider(db)
	s.authService = authService

	app.Get(Path, auth.RequireAuthenticated(), s.Get)
	app.Put(Path+"/password", auth.RequireAuthenticated(), s.ChangePassword)

	return nil
}

// Get returns the authenticated user together with their roles and effective
// permission set, so clients can decide what to show without extra round
// trips.
func (s *Service) Get(c *fiber.Ctx) error {
	userID := auth.CurrentUserID(c)

	user, err := s.provider.GetUserByID(userID)
	if err != nil {
		// A session can outlive its user when the account is deleted.
		if errors.Is(err, auth.ErrUserNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "unauthorized",
				"message": "authentication required",
			})
		}

		log.Error().Err(err).Uint64("user_id", userID).Msg("failed to load profile")

		return handler.Error(c, err)
	}

	roles, err := s.authService.RolesOf(userID)
	if err != nil {
		return handler.Error(c, err)
	}

	permissions, err := s.authService.ResolvePermissions(userID)
	if err != nil {
		return handler.Error(c, err)
	}

	roleSlugs := make([]string, 0, len(roles))
	for _, role := range roles {
		roleSlugs = append(roleSlugs, role.Slug)
	}

	return c.JSON(fiber.Map{
		"id":          user.ID,
		"username":    user.Username,
		"email":       user.Email,
		"first_name":  user.FirstName,
		"last_name":   user.LastName,
		"roles":       roleSlugs,
		"permissions": permissions,
	})
}

// passwordRequest is the change password request body.
type passwordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangePassword changes the caller's own password.
func (s *Service) ChangePassword(c *fiber.Ctx) error {
	req := new(passwordRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.ValidationError(c, "invalid request body")
	}

	if req.NewPassword == "" {
		return handler.ValidationError(c, "new password is required")
	}

	err := s.provider.ChangePassword(auth.CurrentUserID(c), req.OldPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidOldPassword) {
			return handler.ValidationError(c, "old password does not match")
		}

		return handler.Error(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
