package models

type UserRole string

const (
	AdminRole    UserRole = "ADMIN"
	ManagerRole  UserRole = "MANAGER"
	EmployeeRole UserRole = "EMPLOYEE"
)

var roleHumanName = map[UserRole]string{
	AdminRole:    "Администратор",
	ManagerRole:  "Руководитель",
	EmployeeRole: "Сотрудник",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == AdminRole
}

// CanAssign роли, которые могут ставить задачи и проверять работы
func (r UserRole) CanAssign() bool {
	return r == AdminRole || r == ManagerRole
}
