package apiv1

import (
	"task-flow-backend/controllers"
	"task-flow-backend/lib/rbac"
	"task-flow-backend/middleware"
	apimodels "task-flow-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type permissionsApiController struct {
	controllers.BaseAPIController
}

func InitPermissionsApiRouters(app *fiber.App) {
	controller := permissionsApiController{}
	app.Get("permissions", controller.get)
}

// @Summary Права текущего пользователя
// @Tags Профиль
// @Description Разделы и действия, доступные роли пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=map[string][]string}
// @Failure 403
// @router /api/v1/permissions [get]
func (c *permissionsApiController) get(ctx *fiber.Ctx) error {
	resp := rbac.Instance.GetPermissions(middleware.GetUserRole(ctx))
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
