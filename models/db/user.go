package dbmodels

import (
	"strings"
	"task-flow-backend/models"
)

// User сотрудник организации, записи ведёт сервис авторизации
type User struct {
	BaseSpaceModel
	Name       string          `gorm:"type:varchar(255)"`
	Email      string          `gorm:"type:varchar(255)"`
	EmployeeID string          `gorm:"type:varchar(64)"`
	Role       models.UserRole `gorm:"type:varchar(50)"`
}

func (u User) GetFullName() string {
	return strings.TrimSpace(u.Name)
}
