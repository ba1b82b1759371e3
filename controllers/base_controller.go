package controllers

import (
	"io"
	"strings"
	apperrors "task-flow-backend/lib/utils/app-errors"
	"task-flow-backend/lib/utils/helpers"
	"task-flow-backend/middleware"
	"task-flow-backend/models"
	apimodels "task-flow-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	return c.GetIDByKey(ctx, "id")
}

func (c *BaseAPIController) GetIDByKey(ctx *fiber.Ctx, key string) (string, error) {
	id := strings.TrimSpace(ctx.Params(key))
	if id == "" {
		return "", errors.Errorf("не указан идентификатор (%v)", key)
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("space_id", middleware.GetUserSpace(ctx)).
		WithField("user_id", middleware.GetUserID(ctx)).
		WithField("path", ctx.Path())
}

// SendError бизнес-ошибки возвращаются с их текстом, остальные логируются и скрываются за msg
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, apperrors.ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, apperrors.ErrConflict):
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, apperrors.ErrForbidden):
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(err.Error()))
	}
	logger.WithError(err).Error(msg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(msg))
}

func (c *BaseAPIController) IsMultipart(ctx *fiber.Ctx) bool {
	return strings.HasPrefix(ctx.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm)
}

// FormFile файл из multipart формы, при отсутствии поля возвращает nil
func (c *BaseAPIController) FormFile(ctx *fiber.Ctx, key string) (*models.File, error) {
	form, err := ctx.MultipartForm()
	if err != nil {
		return nil, errors.New("не удалось получить данные формы")
	}
	headers := form.File[key]
	if len(headers) == 0 {
		return nil, nil
	}
	header := headers[0]
	reader, err := header.Open()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка при получении файла")
	}
	defer reader.Close()
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка при чтении файла")
	}
	return &models.File{
		FileName:    header.Filename,
		ContentType: helpers.GetFileContentType(header, body),
		Body:        body,
	}, nil
}

// FormValues значения полей формы по ключу, повторяющиеся поля сохраняются
func (c *BaseAPIController) FormValues(ctx *fiber.Ctx, key string) []string {
	form, err := ctx.MultipartForm()
	if err != nil {
		return nil
	}
	return form.Value[key]
}
