package apiv1

import (
	"task-flow-backend/config"
	"task-flow-backend/controllers"
	taskhandler "task-flow-backend/lib/task"
	"task-flow-backend/middleware"
	"task-flow-backend/models"
	apimodels "task-flow-backend/models/api"
	taskapimodels "task-flow-backend/models/api/task"

	"github.com/gofiber/fiber/v2"
)

type myTaskApiController struct {
	controllers.BaseAPIController
}

func InitMyTaskApiRouters(app *fiber.App) {
	controller := myTaskApiController{}
	app.Route("my_tasks", func(router fiber.Router) {
		router.Use(middleware.RoleRequired(models.EmployeeRole))
		router.Get("", controller.list)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Put("start", controller.start)
			idRoute.Post("submission", middleware.WithBodyLimit(config.Conf.Tasks.MaxAttachmentSize), controller.submit)
			idRoute.Put("submission", middleware.WithBodyLimit(config.Conf.Tasks.MaxAttachmentSize), controller.editSubmission)
			idRoute.Get("submissions", controller.submissions)
		})
	})
}

// @Summary Мои задачи
// @Tags Мои задачи
// @Description Задачи, в которых сотрудник указан исполнителем, новые первыми
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]taskapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/my_tasks [get]
func (c *myTaskApiController) list(ctx *fiber.Ctx) error {
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	resp, err := taskhandler.Instance.ListMy(spaceID, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка задач")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Взять задачу в работу
// @Tags Мои задачи
// @Description Перевод задачи в статус In Progress
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=taskapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/my_tasks/{id}/start [put]
func (c *myTaskApiController) start(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	resp, err := taskhandler.Instance.Start(spaceID, userID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка начала работы над задачей")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Отправить работу
// @Tags Мои задачи
// @Description Отправка работы на проверку. Принимает JSON или multipart/form-data с файлом в поле attachment
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 taskapimodels.SubmissionData	true	"request body"
// @Param   attachment			formData	file 	false 	"Вложение"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=taskapimodels.SubmissionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 413 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/my_tasks/{id}/submission [post]
func (c *myTaskApiController) submit(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	payload, file, err := c.parseSubmissionData(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	resp, err := taskhandler.Instance.Submit(ctx.UserContext(), spaceID, userID, id, payload, file)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отправки работы")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Изменить работу
// @Tags Мои задачи
// @Description Изменение последней отправленной работы до её проверки. Отклонённая работа по задаче, снова взятой в работу, после изменения возвращается на проверку
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 taskapimodels.SubmissionData	true	"request body"
// @Param   attachment			formData	file 	false 	"Вложение"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=taskapimodels.SubmissionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 413 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/my_tasks/{id}/submission [put]
func (c *myTaskApiController) editSubmission(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	payload, file, err := c.parseSubmissionData(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	resp, err := taskhandler.Instance.EditSubmission(ctx.UserContext(), spaceID, userID, id, payload, file)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения работы")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Мои работы по задаче
// @Tags Мои задачи
// @Description Работы сотрудника по задаче, новые первыми
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=[]taskapimodels.SubmissionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/my_tasks/{id}/submissions [get]
func (c *myTaskApiController) submissions(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	resp, err := taskhandler.Instance.MySubmissions(spaceID, userID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка работ")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

func (c *myTaskApiController) parseSubmissionData(ctx *fiber.Ctx) (taskapimodels.SubmissionData, *models.File, error) {
	var payload taskapimodels.SubmissionData
	if !c.IsMultipart(ctx) {
		err := c.BodyParser(ctx, &payload)
		return payload, nil, err
	}
	payload = taskapimodels.SubmissionData{
		Title:       ctx.FormValue("title"),
		Description: ctx.FormValue("description"),
		Attachment:  ctx.FormValue("attachment"),
	}
	file, err := c.FormFile(ctx, "attachment")
	if err != nil {
		return payload, nil, err
	}
	return payload, file, nil
}
