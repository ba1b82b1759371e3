package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"task-flow-backend/config"
	"task-flow-backend/lib/rbac"
	authutils "task-flow-backend/lib/utils/auth-utils"
	"task-flow-backend/models"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	conf := &config.Configuration{}
	conf.Auth.JWTSecret = "test-secret"
	conf.Auth.JWTExpireInSec = 3600
	config.Conf = conf
	rbac.NewHandler()

	app := fiber.New()
	api := fiber.New()
	app.Mount("/api/v1", api)
	api.Use(AuthorizationRequired())
	api.Use(RbacMiddleware())
	api.Get("/tasks", func(c *fiber.Ctx) error {
		return c.SendString(GetUserSpace(c) + "/" + GetUserID(c) + "/" + string(GetUserRole(c)))
	})
	api.Put("/my_tasks/:id/start", RoleRequired(models.EmployeeRole), func(c *fiber.Ctx) error {
		return c.SendString("started " + c.Params("id"))
	})
	api.Post("/tasks", WithBodyLimit(16), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, token, body string) (int, string) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestMiddleware(t *testing.T) {
	app := newTestApp(t)
	adminToken, err := authutils.GetToken("admin-1", "Админ", "space-1", models.AdminRole)
	require.NoError(t, err)
	employeeToken, err := authutils.GetToken("emp-1", "Иванов", "space-1", models.EmployeeRole)
	require.NoError(t, err)

	t.Run(`token required`, func(t *testing.T) {
		code, body := doRequest(t, app, fiber.MethodGet, "/api/v1/tasks", "", "")
		require.Equal(t, fiber.StatusUnauthorized, code)
		require.Contains(t, body, `"status":"fail"`)

		code, _ = doRequest(t, app, fiber.MethodGet, "/api/v1/tasks", "broken.token.value", "")
		require.Equal(t, fiber.StatusUnauthorized, code)
	})

	t.Run(`claims are available`, func(t *testing.T) {
		code, body := doRequest(t, app, fiber.MethodGet, "/api/v1/tasks", adminToken, "")
		require.Equal(t, fiber.StatusOK, code)
		require.Equal(t, "space-1/admin-1/ADMIN", body)
	})

	t.Run(`rbac by role`, func(t *testing.T) {
		code, body := doRequest(t, app, fiber.MethodGet, "/api/v1/tasks", employeeToken, "")
		require.Equal(t, fiber.StatusForbidden, code)
		require.Contains(t, body, rbacForbidden)

		code, body = doRequest(t, app, fiber.MethodPut, "/api/v1/my_tasks/abc/start", employeeToken, "")
		require.Equal(t, fiber.StatusOK, code)
		require.Equal(t, "started abc", body)

		code, _ = doRequest(t, app, fiber.MethodPut, "/api/v1/my_tasks/abc/start", adminToken, "")
		require.Equal(t, fiber.StatusForbidden, code)
	})

	t.Run(`body limit`, func(t *testing.T) {
		code, _ := doRequest(t, app, fiber.MethodPost, "/api/v1/tasks", adminToken, "{}")
		require.Equal(t, fiber.StatusOK, code)
		code, body := doRequest(t, app, fiber.MethodPost, "/api/v1/tasks", adminToken, strings.Repeat("x", 64))
		require.Equal(t, fiber.StatusRequestEntityTooLarge, code)
		require.Contains(t, body, "16")
	})
}
