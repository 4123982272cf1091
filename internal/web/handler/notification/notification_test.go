package notification

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/auth"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/config"
	notificationctl "github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/controller/notification"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/models"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/web/session"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.RolePermission{},
		&models.UserRole{},
		&models.Notification{},
	)
	require.NoError(t, err, "failed to migrate test database")

	session.Init(nil)

	app := fiber.New()
	h := Service{}
	require.NoError(t, h.Init(app, &config.Config{}, db, auth.NewService(db)))

	return app, db
}

// seedUserWithPerms creates a user holding one role with the given
// permission slugs and returns the user plus a live session ID.
func seedUserWithPerms(t *testing.T, db *gorm.DB, username string, permSlugs ...string) (models.User, string) {
	t.Helper()

	role := models.Role{Name: username + " role", Slug: username + "-role", Active: true}
	require.NoError(t, db.Create(&role).Error)

	for _, slug := range permSlugs {
		perm := models.Permission{Name: slug, Slug: slug, Module: "test", Active: true}
		require.NoError(t, db.Where("slug = ?", slug).FirstOrCreate(&perm).Error)
		require.NoError(t, db.Create(&models.RolePermission{
			RoleID:       role.ID,
			PermissionID: perm.ID,
		}).Error)
	}

	user := models.User{Username: username, Email: username + "@example.com", Active: true}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.UserRole{UserID: user.ID, RoleID: role.ID}).Error)

	sessionID := session.GenerateSessionID()
	data := session.Data{User: user}
	require.NoError(t, data.Write(sessionID, time.Hour))

	return user, sessionID
}

func get(t *testing.T, app *fiber.App, path, sessionID string) (*http.Response, []byte) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: sessionID})
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	return resp, body
}

func TestListAllRoute(t *testing.T) {
	app, db := setupApp(t)

	admin, adminSession := seedUserWithPerms(t, db, "admin", auth.PermNotificationsViewAll)
	worker, workerSession := seedUserWithPerms(t, db, "worker")

	_, err := notificationctl.Send(db, nil, admin.ID, "for admin", "")
	require.NoError(t, err)
	_, err = notificationctl.Send(db, nil, worker.ID, "for worker", "")
	require.NoError(t, err)

	// without the view-all permission the caller stays in their own stream
	resp, _ := get(t, app, Path+"/all", workerSession)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = get(t, app, Path+"/all", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := get(t, app, Path+"/all", adminSession)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Items []struct {
			Subject     string `json:"subject"`
			RecipientID uint64 `json:"recipient_id"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.Len(t, payload.Items, 2, "view-all crosses recipient boundaries")
	assert.Equal(t, worker.ID, payload.Items[0].RecipientID)
	assert.Equal(t, admin.ID, payload.Items[1].RecipientID)
}

func TestListRouteIsRecipientScoped(t *testing.T) {
	app, db := setupApp(t)

	admin, _ := seedUserWithPerms(t, db, "admin", auth.PermNotificationsViewAll)
	worker, workerSession := seedUserWithPerms(t, db, "worker")

	_, err := notificationctl.Send(db, nil, admin.ID, "for admin", "")
	require.NoError(t, err)
	_, err = notificationctl.Send(db, nil, worker.ID, "for worker", "")
	require.NoError(t, err)

	resp, body := get(t, app, Path, workerSession)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Items []struct {
			Subject string `json:"subject"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.Len(t, payload.Items, 1)
	assert.Equal(t, "for worker", payload.Items[0].Subject)
}
