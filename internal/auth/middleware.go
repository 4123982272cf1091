package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/apperr"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/web/session"
)

// currentUserID resolves the authenticated caller from the session cookie.
// Returns 0 if no valid identity is present. The identity travels with the
// request; no process-wide state is involved, so concurrent requests from
// different users can not observe each other.
func currentUserID(c *fiber.Ctx) uint64 {
	sessionID := c.Cookies("session")
	if sessionID == "" {
		return 0
	}

	sessionData := new(session.Data)
	if err := sessionData.Read(sessionID); err != nil {
		return 0
	}

	return sessionData.User.ID
}

// CurrentUserID exposes the resolved caller identity to handlers.
func CurrentUserID(c *fiber.Ctx) uint64 {
	return currentUserID(c)
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   apperr.KindUnauthorized,
		"message": "authentication required",
	})
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"error":   apperr.KindForbidden,
		"message": "you don't have permission to access this resource",
	})
}

// RequirePermission creates Fiber middleware that requires a specific permission.
// The check runs before the guarded handler and mutates no state: an
// unauthenticated caller gets 401, an authenticated caller without the
// permission gets 403.
func RequirePermission(authService *Service, permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := currentUserID(c)
		if userID == 0 {
			return unauthorized(c)
		}

		hasPermission, err := authService.HasPermission(userID, permission)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", userID).Str("permission", permission).
				Msg("Failed to check permission")

			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   apperr.KindInternal,
				"message": "internal server error",
			})
		}

		if !hasPermission {
			log.Warn().Uint64("user_id", userID).Str("permission", permission).
				Msg("User lacks required permission")

			return forbidden(c)
		}

		// User has permission, proceed
		return c.Next()
	}
}

// RequireAnyPermission creates Fiber middleware that requires at least one of the given permissions.
func RequireAnyPermission(authService *Service, permissions ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := currentUserID(c)
		if userID == 0 {
			return unauthorized(c)
		}

		hasPermission, err := authService.HasAnyPermission(userID, permissions)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", userID).Strs("permissions", permissions).
				Msg("Failed to check permissions")

			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   apperr.KindInternal,
				"message": "internal server error",
			})
		}

		if !hasPermission {
			log.Warn().Uint64("user_id", userID).Strs("permissions", permissions).
				Msg("User lacks required permissions")

			return forbidden(c)
		}

		return c.Next()
	}
}

// RequireRole creates Fiber middleware that requires membership in a named
// role, independent of the permission system. Used for coarse checks that
// gate on a role slug directly (e.g., super-admin only operations).
func RequireRole(authService *Service, roleSlug string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := currentUserID(c)
		if userID == 0 {
			return unauthorized(c)
		}

		hasRole, err := authService.HasRole(userID, roleSlug)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", userID).Str("role", roleSlug).
				Msg("Failed to check role")

			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   apperr.KindInternal,
				"message": "internal server error",
			})
		}

		if !hasRole {
			log.Warn().Uint64("user_id", userID).Str("role", roleSlug).
				Msg("User lacks required role")

			return forbidden(c)
		}

		return c.Next()
	}
}

// RequireAuthenticated ensures a valid identity is present, without any
// permission or role requirement.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if currentUserID(c) == 0 {
			return unauthorized(c)
		}

		return c.Next()
	}
}
