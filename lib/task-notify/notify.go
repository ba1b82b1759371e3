package tasknotify

import (
	"fmt"
	"strings"
	"task-flow-backend/lib/smtp"
	dbmodels "task-flow-backend/models/db"

	log "github.com/sirupsen/logrus"
)

// Provider уведомления по задачам. Ошибки отправки только логируются,
// на результат операции они не влияют.
type Provider interface {
	TaskAssigned(task dbmodels.Task, assignees []dbmodels.User)
	SubmissionApproved(task dbmodels.Task, employee *dbmodels.User)
	SubmissionRejected(task dbmodels.Task, employee *dbmodels.User, reason string)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		sender: smtp.Instance,
	}
}

func NewInstance(sender smtp.Provider) Provider {
	return impl{
		sender: sender,
	}
}

type impl struct {
	sender smtp.Provider
}

func (i impl) TaskAssigned(task dbmodels.Task, assignees []dbmodels.User) {
	subject := fmt.Sprintf("Новая задача %s", task.TaskID)
	lines := []string{
		fmt.Sprintf("Вам назначена задача %s: %s", task.TaskID, task.Title),
		"",
		task.Description,
	}
	if task.Deadline != nil {
		lines = append(lines, "", fmt.Sprintf("Срок: %s", task.Deadline.Format("02.01.2006")))
	}
	message := strings.Join(lines, "\r\n")
	for _, user := range assignees {
		i.send(task, user.Email, subject, message)
	}
}

func (i impl) SubmissionApproved(task dbmodels.Task, employee *dbmodels.User) {
	if employee == nil {
		return
	}
	subject := fmt.Sprintf("Задача %s принята", task.TaskID)
	message := fmt.Sprintf("Ваша работа по задаче %s: %s принята.", task.TaskID, task.Title)
	i.send(task, employee.Email, subject, message)
}

func (i impl) SubmissionRejected(task dbmodels.Task, employee *dbmodels.User, reason string) {
	if employee == nil {
		return
	}
	subject := fmt.Sprintf("Задача %s отклонена", task.TaskID)
	message := fmt.Sprintf("Ваша работа по задаче %s: %s отклонена.\r\nПричина: %s\r\nИсправьте замечания и отправьте работу повторно.",
		task.TaskID, task.Title, reason)
	i.send(task, employee.Email, subject, message)
}

func (i impl) send(task dbmodels.Task, to, subject, message string) {
	if i.sender == nil || to == "" {
		return
	}
	err := i.sender.SendEMail(to, subject, message)
	if err != nil {
		log.
			WithField("space_id", task.SpaceID).
			WithField("task_id", task.TaskID).
			WithField("recipient", to).
			WithError(err).
			Warn("не удалось отправить уведомление по задаче")
	}
}
