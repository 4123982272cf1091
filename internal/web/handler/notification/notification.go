// Package notification provides handlers for user notifications.
package notification

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/auth"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/config"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/controller/notification"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/models"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/web/handler"
)

// Path is the base path for notifications.
const Path = handler.APIPrefix + "/notifications"

// Service provides operations for notifications.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes. Reading, marking and deleting are scoped to the
// caller's own notifications; sending needs a dedicated permission.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.db = db
	s.cfg = cfg
	s.validator = validator.New()

	app.Get(Path, auth.RequireAuthenticated(), s.List)
	app.Get(Path+"/all",
		auth.RequirePermission(authService, auth.PermNotificationsViewAll),
		s.ListAll,
	)
	app.Get(Path+"/unread-count", auth.RequireAuthenticated(), s.UnreadCount)
	app.Put(Path+"/:id/read", auth.RequireAuthenticated(), s.MarkRead)
	app.Delete(Path+"/:id", auth.RequireAuthenticated(), s.Delete)

	app.Post(Path,
		auth.RequirePermission(authService, auth.PermNotificationsSend),
		s.Send,
	)

	return nil
}

func notificationResponse(n *models.Notification) fiber.Map {
	return fiber.Map{
		"id":         n.ID,
		"sender_id":  n.SenderID,
		"subject":    n.Subject,
		"body":       n.Body,
		"read":       n.Read,
		"created_at": n.CreatedAt,
	}
}

// List returns the caller's notifications, newest first.
func (s *Service) List(c *fiber.Ctx) error {
	notifs, err := notification.ListForUser(s.db, auth.CurrentUserID(c), c.QueryBool("unread", false))
	if err != nil {
		log.Error().Err(err).Msg("failed to list notifications")

		return handler.Error(c, err)
	}

	items := make([]fiber.Map, 0, len(notifs))
	for i := range notifs {
		items = append(items, notificationResponse(&notifs[i]))
	}

	return c.JSON(fiber.Map{"items": items})
}

// ListAll returns every user's notifications, newest first. The response
// carries the recipient so an admin can tell the streams apart.
func (s *Service) ListAll(c *fiber.Ctx) error {
	notifs, err := notification.ListAll(s.db, c.QueryBool("unread", false))
	if err != nil {
		log.Error().Err(err).Msg("failed to list all notifications")

		return handler.Error(c, err)
	}

	items := make([]fiber.Map, 0, len(notifs))
	for i := range notifs {
		item := notificationResponse(&notifs[i])
		item["recipient_id"] = notifs[i].RecipientID
		items = append(items, item)
	}

	return c.JSON(fiber.Map{"items": items})
}

// UnreadCount returns the caller's number of unread notifications.
func (s *Service) UnreadCount(c *fiber.Ctx) error {
	count, err := notification.UnreadCount(s.db, auth.CurrentUserID(c))
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(fiber.Map{"count": count})
}

// MarkRead marks one of the caller's notifications as read.
func (s *Service) MarkRead(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return handler.ValidationError(c, "invalid notification id")
	}

	if err := notification.MarkRead(s.db, auth.CurrentUserID(c), id); err != nil {
		return handler.Error(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Delete removes one of the caller's notifications.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return handler.ValidationError(c, "invalid notification id")
	}

	if err := notification.Delete(s.db, auth.CurrentUserID(c), id); err != nil {
		return handler.Error(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// sendRequest is the notification send request body.
type sendRequest struct {
	RecipientID uint64 `json:"recipient_id" validate:"required"`
	Subject     string `json:"subject" validate:"required,max=255"`
	Body        string `json:"body" validate:"max=2000"`
}

// Send sends a notification to another user.
func (s *Service) Send(c *fiber.Ctx) error {
	req := new(sendRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.ValidationError(c, "invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, err.Error())
	}

	senderID := auth.CurrentUserID(c)

	created, err := notification.Send(s.db, &senderID, req.RecipientID, req.Subject, req.Body)
	if err != nil {
		return handler.Error(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(notificationResponse(created))
}
