// Package dashboard provides the summary endpoint used by the landing view.
package dashboard

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/auth"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/config"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/controller/notification"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/models"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/web/handler"
)

// Path is the path of the dashboard endpoint.
const Path = handler.APIPrefix + "/dashboard"

// Service is the dashboard handler service.
type Service struct {
	cfg         *config.Config
	db          *gorm.DB
	authService *auth.Service
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler. The view is open to any caller
// holding at least one view permission; which counts appear depends on what
// the caller may see.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.db = db
	s.cfg = cfg
	s.authService = authService

	app.Get(Path,
		auth.RequireAnyPermission(authService,
			auth.PermProductsView,
			auth.PermWarehousesView,
			auth.PermUsersView,
			auth.PermRolesView,
		),
		s.Get,
	)

	return nil
}

// Get returns entity counts for the landing view, plus the caller's unread
// notification count. The user and role counts are administrative and only
// included for callers who may view both.
func (s *Service) Get(c *fiber.Ctx) error {
	counts := map[string]interface{}{
		"products":   &models.Product{},
		"categories": &models.Category{},
		"warehouses": &models.Warehouse{},
		"movements":  &models.InventoryMovement{},
	}

	userID := auth.CurrentUserID(c)

	adminView, err := s.authService.HasAllPermissions(userID, []string{
		auth.PermUsersView,
		auth.PermRolesView,
	})
	if err != nil {
		return handler.Error(c, err)
	}

	if adminView {
		counts["users"] = &models.User{}
		counts["roles"] = &models.Role{}
	}

	resp := fiber.Map{"title": s.cfg.Title}

	for name, model := range counts {
		var count int64
		if err := s.db.Model(model).Count(&count).Error; err != nil {
			log.Error().Err(err).Str("entity", name).Msg("failed to count entities")

			return handler.Error(c, err)
		}

		resp[name] = count
	}

	unread, err := notification.UnreadCount(s.db, userID)
	if err != nil {
		return handler.Error(c, err)
	}

	resp["unread_notifications"] = unread

	return c.JSON(resp)
}
