package middleware

import (
	"fmt"
	"strconv"
	apimodels "task-flow-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

// WithBodyLimit ограничение размера запроса для маршрутов с вложениями
func WithBodyLimit(limit int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentLength := c.Get(fiber.HeaderContentLength)
		if contentLength != "" && contentLength != "0" {
			size, err := strconv.ParseInt(contentLength, 10, 64)
			if err == nil && size > limit {
				return c.Status(fiber.StatusRequestEntityTooLarge).
					JSON(apimodels.NewError(fmt.Sprintf("Размер запроса превышает допустимый: %d байт", limit)))
			}
		}
		if limit > 0 && int64(len(c.Body())) > limit {
			return c.Status(fiber.StatusRequestEntityTooLarge).
				JSON(apimodels.NewError(fmt.Sprintf("Размер запроса превышает допустимый: %d байт", limit)))
		}
		return c.Next()
	}
}
