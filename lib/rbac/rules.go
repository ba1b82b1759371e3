package rbac

import (
	"task-flow-backend/models"
)

var (
	AssignerRoleSet = []models.UserRole{models.AdminRole, models.ManagerRole}
	EmployeeRoleSet = []models.UserRole{models.EmployeeRole}
	AllRoles        = []models.UserRole{models.AdminRole, models.ManagerRole, models.EmployeeRole}
)

func (i *impl) initRules() {
	i.tasks()
	i.submissions()
	i.myTasks()
	i.profile()
}

// ограничение руководителя своими задачами проверяется в обработчике задач
func (i *impl) tasks() {
	// VIEW
	i.mustRegister(models.TasksModule, models.ViewPermission, AssignerRoleSet, "/api/v1/tasks [get]", nil)
	i.mustRegister(models.TasksModule, models.ViewPermission, AssignerRoleSet, "/api/v1/tasks/{id} [get]", nil)
	i.mustRegister(models.TasksModule, models.ViewPermission, AssignerRoleSet, "/api/v1/tasks/{id}/history [get]", nil)
	// EXPORT
	i.mustRegister(models.TasksModule, models.ExportPermission, AssignerRoleSet, "/api/v1/tasks/export [get]", nil)
	// CREATE/EDIT
	i.mustRegister(models.TasksModule, models.CreatePermission, AssignerRoleSet, "/api/v1/tasks [post]", nil)
	i.mustRegister(models.TasksModule, models.EditPermission, AssignerRoleSet, "/api/v1/tasks/{id} [patch]", nil)
	i.mustRegister(models.TasksModule, models.DeletePermission, AssignerRoleSet, "/api/v1/tasks/{id} [delete]", nil)
}

func (i *impl) submissions() {
	// VIEW
	i.mustRegister(models.SubmissionsModule, models.ViewPermission, AssignerRoleSet, "/api/v1/submissions [get]", nil)
	i.mustRegister(models.SubmissionsModule, models.ViewPermission, AssignerRoleSet, "/api/v1/submissions/{taskId} [get]", nil)
	i.mustRegister(models.SubmissionsModule, models.ExportPermission, AssignerRoleSet, "/api/v1/submissions/{id}/report [get]", nil)
	// REVIEW
	i.mustRegister(models.SubmissionsModule, models.ReviewPermission, AssignerRoleSet, "/api/v1/submissions/{id}/approve [put]", nil)
	i.mustRegister(models.SubmissionsModule, models.ReviewPermission, AssignerRoleSet, "/api/v1/submissions/{id}/reject [put]", nil)
}

func (i *impl) myTasks() {
	// VIEW
	i.mustRegister(models.MyTasksModule, models.ViewPermission, EmployeeRoleSet, "/api/v1/my_tasks [get]", nil)
	i.mustRegister(models.MyTasksModule, models.ViewPermission, EmployeeRoleSet, "/api/v1/my_tasks/{id}/submissions [get]", nil)
	// FLOW
	i.mustRegister(models.MyTasksModule, models.FlowPermission, EmployeeRoleSet, "/api/v1/my_tasks/{id}/start [put]", nil)
	i.mustRegister(models.MyTasksModule, models.FlowPermission, EmployeeRoleSet, "/api/v1/my_tasks/{id}/submission [post]", nil)
	i.mustRegister(models.MyTasksModule, models.FlowPermission, EmployeeRoleSet, "/api/v1/my_tasks/{id}/submission [put]", nil)
}

func (i *impl) profile() {
	i.mustRegister(models.ProfileModule, models.ViewPermission, AllRoles, "/api/v1/permissions [get]", nil)
}
