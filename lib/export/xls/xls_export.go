package xlsexport

import (
	"bytes"
	"strings"
	taskapimodels "task-flow-backend/models/api/task"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportTaskList(list []taskapimodels.TaskView) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const taskSheet = "Задачи"

var taskHeaders = []string{"Номер", "Заголовок", "Статус", "Исполнители", "Автор", "Дата начала", "Срок", "Просрочена", "Дата сдачи", "Оценка", "Причина отклонения"}

func (i impl) ExportTaskList(list []taskapimodels.TaskView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row, err := writeHeader(f, sheet, 0, taskHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		if err = writeTaskData(f, sheet, list, row); err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, taskSheet)
	return f.WriteToBuffer()
}

func writeTaskData(f *excelize.File, sheet string, list []taskapimodels.TaskView, row int) error {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(taskHeaders), row+len(list)); err != nil {
		return err
	}
	for _, item := range list {
		row++
		assignees := make([]string, 0, len(item.AssignedTo))
		for _, user := range item.AssignedTo {
			assignees = append(assignees, userName(user))
		}
		author := ""
		if item.AssignedBy != nil {
			author = userName(*item.AssignedBy)
		}
		overdue := "нет"
		if item.IsOverdue {
			overdue = "да"
		}
		var reason interface{}
		if item.RejectionReason != nil {
			reason = *item.RejectionReason
		}
		err := writeRow(f, sheet, row,
			item.TaskID,
			item.Title,
			string(item.Status),
			strings.Join(assignees, "\r"),
			author,
			formatDate(item.StartDate),
			formatDate(item.Deadline),
			overdue,
			formatDate(item.SubmittedAt),
			item.Marks,
			reason,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func userName(user taskapimodels.UserShortView) string {
	if user.Name != "" {
		return user.Name
	}
	return user.ID
}

func formatDate(value *time.Time) interface{} {
	if value == nil || value.IsZero() {
		return nil
	}
	return value.Format(dateLayout)
}
