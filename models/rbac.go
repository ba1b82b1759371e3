package models

type RbacFunc func(spaceID, userID string, role UserRole, path string) bool

type Module string

const (
	TasksModule       Module = "TASKS"
	SubmissionsModule Module = "SUBMISSIONS"
	MyTasksModule     Module = "MY_TASKS"
	ProfileModule     Module = "PROFILE"
)

type Permission string

const (
	CreatePermission Permission = "CREATE"
	EditPermission   Permission = "EDIT"
	ViewPermission   Permission = "VIEW"
	DeletePermission Permission = "DELETE"
	ReviewPermission Permission = "REVIEW"
	ExportPermission Permission = "EXPORT"
	FlowPermission   Permission = "FLOW"
)
