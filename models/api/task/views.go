package taskapimodels

import (
	"task-flow-backend/lib/overdue"
	"task-flow-backend/models"
	dbmodels "task-flow-backend/models/db"
	"time"
)

type UserShortView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	EmployeeID string `json:"employee_id,omitempty"`
}

func UserShortConvert(rec dbmodels.User) UserShortView {
	return UserShortView{
		ID:         rec.ID,
		Name:       rec.GetFullName(),
		Email:      rec.Email,
		EmployeeID: rec.EmployeeID,
	}
}

type TaskView struct {
	ID              string            `json:"id"`
	TaskID          string            `json:"task_id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Status          models.TaskStatus `json:"status"`
	AssignedTo      []UserShortView   `json:"assigned_to"`
	AssignedBy      *UserShortView    `json:"assigned_by"`
	StartDate       *time.Time        `json:"start_date"`
	Deadline        *time.Time        `json:"deadline"`
	Attachment      string            `json:"attachment,omitempty"`
	IsInProgress    bool              `json:"is_in_progress"`
	IsOverdue       bool              `json:"is_overdue"`
	RejectionReason *string           `json:"rejection_reason,omitempty"`
	TaskStarted     *time.Time        `json:"task_started"`
	SubmittedAt     *time.Time        `json:"submitted_at"`
	Marks           int               `json:"marks"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// TaskConvert users - справочник сотрудников для раскрытия исполнителей,
// неизвестные идентификаторы выводятся без имени
func TaskConvert(rec dbmodels.Task, users map[string]dbmodels.User, now time.Time) TaskView {
	assignees := make([]UserShortView, 0, len(rec.AssignedTo))
	for _, id := range rec.AssignedTo {
		user, ok := users[id]
		if !ok {
			assignees = append(assignees, UserShortView{ID: id})
			continue
		}
		assignees = append(assignees, UserShortConvert(user))
	}
	var assignedBy *UserShortView
	if rec.AssignedBy != nil {
		view := UserShortConvert(*rec.AssignedBy)
		assignedBy = &view
	} else if rec.AssignedByID != "" {
		assignedBy = &UserShortView{ID: rec.AssignedByID}
	}
	return TaskView{
		ID:              rec.ID,
		TaskID:          rec.TaskID,
		Title:           rec.Title,
		Description:     rec.Description,
		Status:          rec.Status,
		AssignedTo:      assignees,
		AssignedBy:      assignedBy,
		StartDate:       rec.StartDate,
		Deadline:        rec.Deadline,
		Attachment:      rec.Attachment,
		IsInProgress:    rec.IsInProgress(),
		IsOverdue:       overdue.IsOverdue(rec, now),
		RejectionReason: rec.RejectionReason,
		TaskStarted:     rec.TaskStarted,
		SubmittedAt:     rec.SubmittedAt,
		Marks:           rec.Marks,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}
}

type SubmissionView struct {
	ID              string                  `json:"id"`
	SubmittedID     string                  `json:"submitted_id"`
	TaskRef         string                  `json:"task_ref"`
	TaskID          string                  `json:"task_id,omitempty"`    // пусто, если задача удалена
	TaskTitle       string                  `json:"task_title,omitempty"` // пусто, если задача удалена
	Employee        UserShortView           `json:"employee"`
	Title           string                  `json:"title"`
	Description     string                  `json:"description"`
	Attachment      string                  `json:"attachment,omitempty"`
	Status          models.SubmissionStatus `json:"status"`
	RejectionReason *string                 `json:"rejection_reason,omitempty"`
	ReviewedAt      *time.Time              `json:"reviewed_at"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

func SubmissionConvert(rec dbmodels.TaskSubmission) SubmissionView {
	result := SubmissionView{
		ID:              rec.ID,
		SubmittedID:     rec.SubmittedID,
		TaskRef:         rec.TaskRef,
		Employee:        UserShortView{ID: rec.EmployeeID},
		Title:           rec.Title,
		Description:     rec.Description,
		Attachment:      rec.Attachment,
		Status:          rec.Status,
		RejectionReason: rec.RejectionReason,
		ReviewedAt:      rec.ReviewedAt,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}
	if rec.Task != nil {
		result.TaskID = rec.Task.TaskID
		result.TaskTitle = rec.Task.Title
	}
	if rec.Employee != nil {
		result.Employee = UserShortConvert(*rec.Employee)
	}
	return result
}

type TaskHistoryView struct {
	ID            string                 `json:"id"`
	Action        models.TaskAction      `json:"action"`
	ActionName    string                 `json:"action_name"`
	Status        models.TaskStatus      `json:"status"`
	SubmissionRef string                 `json:"submission_ref,omitempty"`
	UserID        string                 `json:"user_id"`
	UserName      string                 `json:"user_name"`
	Comment       string                 `json:"comment,omitempty"`
	Changes       dbmodels.EntityChanges `json:"changes"`
	CreatedAt     time.Time              `json:"created_at"`
}

func TaskHistoryConvert(rec dbmodels.TaskHistory) TaskHistoryView {
	userName := ""
	if rec.User != nil {
		userName = rec.User.GetFullName()
	}
	return TaskHistoryView{
		ID:            rec.ID,
		Action:        rec.Action,
		ActionName:    rec.Action.ToHuman(),
		Status:        rec.Status,
		SubmissionRef: rec.SubmissionRef,
		UserID:        rec.UserID,
		UserName:      userName,
		Comment:       rec.Comment,
		Changes:       rec.Changes,
		CreatedAt:     rec.CreatedAt,
	}
}
