// Package overdue вычисляет просрочку задачи. Результат не сохраняется,
// считается при каждом чтении задачи.
package overdue

import (
	dbmodels "task-flow-backend/models/db"
	"time"
)

// IsOverdue для сданных и принятых задач сравнивает дату сдачи со сроком,
// для остальных текущее время со сроком. Задача без срока не просрочена.
func IsOverdue(task dbmodels.Task, now time.Time) bool {
	if task.Deadline == nil {
		return false
	}
	if task.Status.IsDelivered() {
		return task.SubmittedAt != nil && task.SubmittedAt.After(*task.Deadline)
	}
	return now.After(*task.Deadline)
}
