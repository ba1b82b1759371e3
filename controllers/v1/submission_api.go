package apiv1

import (
	"fmt"
	"task-flow-backend/config"
	"task-flow-backend/controllers"
	pdfexport "task-flow-backend/lib/export/pdf"
	taskhandler "task-flow-backend/lib/task"
	"task-flow-backend/middleware"
	"task-flow-backend/models"
	apimodels "task-flow-backend/models/api"
	taskapimodels "task-flow-backend/models/api/task"

	"github.com/gofiber/fiber/v2"
)

type submissionApiController struct {
	controllers.BaseAPIController
}

func InitSubmissionApiRouters(app *fiber.App) {
	controller := submissionApiController{}
	app.Route("submissions", func(router fiber.Router) {
		router.Use(middleware.RoleRequired(models.AdminRole, models.ManagerRole))
		router.Get("", controller.list)
		router.Get(":taskId", controller.listByTask)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Put("approve", controller.approve)
			idRoute.Put("reject", controller.reject)
			idRoute.Get("report", controller.report)
		})
	})
}

// @Summary Список отправленных работ
// @Tags Проверка работ
// @Description Все работы, новые первыми. Руководитель видит работы только по своим задачам
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]taskapimodels.SubmissionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/submissions [get]
func (c *submissionApiController) list(ctx *fiber.Ctx) error {
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	resp, err := taskhandler.Instance.ListSubmissions(spaceID, userID, middleware.GetUserRole(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка работ")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Работы по задаче
// @Tags Проверка работ
// @Description Работы по задаче, новые первыми
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   taskId          	path    string  				    	true         "task ID"
// @Success 200 {object} apimodels.Response{data=[]taskapimodels.SubmissionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/submissions/{taskId} [get]
func (c *submissionApiController) listByTask(ctx *fiber.Ctx) error {
	taskID, err := c.GetIDByKey(ctx, "taskId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	resp, err := taskhandler.Instance.ListTaskSubmissions(spaceID, userID, middleware.GetUserRole(ctx), taskID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка работ")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Принять работу
// @Tags Проверка работ
// @Description Принять работу, задача переходит в статус Completed
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=taskapimodels.SubmissionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/submissions/{id}/approve [put]
func (c *submissionApiController) approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	resp, err := taskhandler.Instance.Approve(spaceID, userID, middleware.GetUserRole(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка принятия работы")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Отклонить работу
// @Tags Проверка работ
// @Description Отклонить работу с указанием причины, задача переходит в статус Rejected
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 taskapimodels.RejectData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=taskapimodels.SubmissionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/submissions/{id}/reject [put]
func (c *submissionApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload taskapimodels.RejectData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	resp, err := taskhandler.Instance.Reject(spaceID, userID, middleware.GetUserRole(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отклонения работы")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Лист проверки работы
// @Tags Проверка работ
// @Description Лист проверки работы в PDF
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/submissions/{id}/report [get]
func (c *submissionApiController) report(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	view, err := taskhandler.Instance.GetSubmission(spaceID, userID, middleware.GetUserRole(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения работы")
	}
	body, err := pdfexport.SubmissionSheet(config.Conf.Export.FontDir, *view)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования листа проверки")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%v.pdf"`, view.SubmittedID))
	return ctx.Send(body)
}
