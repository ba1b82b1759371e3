package middleware

import (
	"slices"
	authutils "task-flow-backend/lib/utils/auth-utils"
	"task-flow-backend/models"
	apimodels "task-flow-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

func GetUserSpace(ctx *fiber.Ctx) string {
	return getStringClaim(ctx, "space")
}

func GetUserID(ctx *fiber.Ctx) string {
	return getStringClaim(ctx, "sub")
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	return models.UserRole(getStringClaim(ctx, "role"))
}

// RoleRequired доступ к группе маршрутов только для перечисленных ролей
func RoleRequired(roles ...models.UserRole) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if !slices.Contains(roles, GetUserRole(ctx)) {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}

func getStringClaim(ctx *fiber.Ctx, key string) string {
	value, ok := authutils.GetClaims(ctx)[key].(string)
	if !ok {
		return ""
	}
	return value
}
