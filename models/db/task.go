package dbmodels

import (
	"task-flow-backend/models"
	"time"

	"github.com/lib/pq"
)

type Task struct {
	BaseSpaceModel
	TaskID          string            `gorm:"type:varchar(32);uniqueIndex"`
	Title           string            `gorm:"type:varchar(255)"`
	Description     string            `gorm:"type:text"`
	Status          models.TaskStatus `gorm:"type:varchar(32);index"`
	AssignedTo      pq.StringArray    `gorm:"type:varchar(36)[]"`
	AssignedByID    string            `gorm:"type:varchar(36);index"`
	AssignedBy      *User             `gorm:"foreignKey:AssignedByID"`
	StartDate       *time.Time        `gorm:"type:date"`
	Deadline        *time.Time        `gorm:"type:date"`
	Attachment      string            `gorm:"type:text"`
	RejectionReason *string           `gorm:"type:text"`
	TaskStarted     *time.Time        `gorm:"type:timestamptz"`
	SubmittedAt     *time.Time        `gorm:"type:timestamptz"`
	Marks           int               `gorm:"default:0"`
}

func (t Task) IsInProgress() bool {
	return t.Status == models.TaskStatusInProgress
}

func (t Task) IsAssignee(userID string) bool {
	for _, id := range t.AssignedTo {
		if id == userID {
			return true
		}
	}
	return false
}

type TaskSubmission struct {
	BaseSpaceModel
	TaskRef         string                  `gorm:"type:varchar(36);index"`
	Task            *Task                   `gorm:"foreignKey:TaskRef"`
	EmployeeID      string                  `gorm:"type:varchar(36);index"`
	Employee        *User                   `gorm:"foreignKey:EmployeeID"`
	SubmittedID     string                  `gorm:"type:varchar(32);uniqueIndex"`
	Title           string                  `gorm:"type:varchar(255)"`
	Description     string                  `gorm:"type:text"`
	Attachment      string                  `gorm:"type:text"`
	Status          models.SubmissionStatus `gorm:"type:varchar(32)"`
	RejectionReason *string                 `gorm:"type:text"`
	ReviewedByID    *string                 `gorm:"type:varchar(36)"`
	ReviewedAt      *time.Time              `gorm:"type:timestamptz"`
}

type TaskHistory struct {
	BaseSpaceModel
	TaskRef       string            `gorm:"type:varchar(36);index"`
	SubmissionRef string            `gorm:"type:varchar(36)"`
	UserID        string            `gorm:"type:varchar(36)"`
	User          *User             `gorm:"foreignKey:UserID"`
	Action        models.TaskAction `gorm:"type:varchar(32)"`
	Status        models.TaskStatus `gorm:"type:varchar(32)"`
	Comment       string            `gorm:"type:text"`
	Changes       EntityChanges     `gorm:"type:jsonb"`
}
