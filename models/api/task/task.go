package taskapimodels

import (
	"strings"
	"task-flow-backend/models"
	"time"

	"github.com/pkg/errors"
)

const dateLayout = "2006-01-02"

// ParseDate принимает дату в формате YYYY-MM-DD или RFC3339, пустая строка - отсутствие даты
func ParseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(dateLayout, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, errors.Errorf("некорректная дата: %v", value)
	}
	t = t.UTC()
	return &t, nil
}

type TaskData struct {
	Title       string       `json:"title"`       // заголовок
	Description string       `json:"description"` // описание
	AssignedTo  AssigneeList `json:"assigned_to"` // исполнители
	StartDate   string       `json:"start_date"`  // дата начала
	Deadline    string       `json:"deadline"`    // срок
	Attachment  string       `json:"attachment"`  // ссылка на вложение
}

func (t TaskData) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("отсутствует заголовок задачи")
	}
	if strings.TrimSpace(t.Description) == "" {
		return errors.New("отсутствует описание задачи")
	}
	if err := t.AssignedTo.Validate(); err != nil {
		return err
	}
	startDate, err := ParseDate(t.StartDate)
	if err != nil {
		return err
	}
	deadline, err := ParseDate(t.Deadline)
	if err != nil {
		return err
	}
	if startDate != nil && deadline != nil && deadline.Before(*startDate) {
		return errors.New("срок не может быть раньше даты начала")
	}
	return nil
}

func (t TaskData) GetStartDate() *time.Time {
	d, _ := ParseDate(t.StartDate)
	return d
}

func (t TaskData) GetDeadline() *time.Time {
	d, _ := ParseDate(t.Deadline)
	return d
}

// TaskPatchData правка задачи администратором, переданные поля меняются как есть
type TaskPatchData struct {
	Title           *string            `json:"title"`
	Description     *string            `json:"description"`
	Status          *models.TaskStatus `json:"status"`
	AssignedTo      *AssigneeList      `json:"assigned_to"`
	StartDate       *string            `json:"start_date"`
	Deadline        *string            `json:"deadline"`
	Attachment      *string            `json:"attachment"`
	RejectionReason *string            `json:"rejection_reason"`
	Marks           *int               `json:"marks"`
}

func (t TaskPatchData) Validate() error {
	if t.Title != nil && strings.TrimSpace(*t.Title) == "" {
		return errors.New("заголовок задачи не может быть пустым")
	}
	if t.Description != nil && strings.TrimSpace(*t.Description) == "" {
		return errors.New("описание задачи не может быть пустым")
	}
	if t.Status != nil {
		if err := t.Status.Validate(); err != nil {
			return err
		}
		if !t.Status.IsAllowPatch() {
			return errors.Errorf("статус %v устанавливается только через проверку работы", *t.Status)
		}
	}
	if t.AssignedTo != nil {
		if err := t.AssignedTo.Validate(); err != nil {
			return err
		}
	}
	if t.StartDate != nil {
		if _, err := ParseDate(*t.StartDate); err != nil {
			return err
		}
	}
	if t.Deadline != nil {
		if _, err := ParseDate(*t.Deadline); err != nil {
			return err
		}
	}
	if t.Marks != nil && *t.Marks < 0 {
		return errors.New("оценка не может быть отрицательной")
	}
	return nil
}

type SubmissionData struct {
	Title       string `json:"title"`       // заголовок отчёта
	Description string `json:"description"` // содержание
	Attachment  string `json:"attachment"`  // ссылка на вложение
}

func (s SubmissionData) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return errors.New("отсутствует заголовок работы")
	}
	return nil
}

type RejectData struct {
	RejectionReason string `json:"rejection_reason"`
}

func (r RejectData) Validate() error {
	if strings.TrimSpace(r.RejectionReason) == "" {
		return errors.New("отсутствует причина отклонения")
	}
	return nil
}
