package xlsexport

import (
	"task-flow-backend/models"
	taskapimodels "task-flow-backend/models/api/task"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportTaskList(t *testing.T) {
	deadline := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	reason := "incomplete report"
	list := []taskapimodels.TaskView{
		{
			TaskID:          "TSK-10001",
			Title:           "Квартальный отчёт",
			Status:          models.TaskStatusRejected,
			AssignedTo:      []taskapimodels.UserShortView{{ID: "emp-1", Name: "Иванов"}, {ID: "emp-2"}},
			AssignedBy:      &taskapimodels.UserShortView{ID: "admin-1", Name: "Админ"},
			Deadline:        &deadline,
			IsOverdue:       true,
			RejectionReason: &reason,
			Marks:           3,
		},
		{
			TaskID: "TSK-10000",
			Title:  "Инвентаризация",
			Status: models.TaskStatusCreated,
		},
	}

	buf, err := impl{}.ExportTaskList(list)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(taskSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, taskHeaders, rows[0])
	require.Equal(t, "TSK-10001", rows[1][0])
	require.Equal(t, "Rejected", rows[1][2])
	require.Contains(t, rows[1][3], "Иванов")
	require.Contains(t, rows[1][3], "emp-2")
	require.Equal(t, "Админ", rows[1][4])
	require.Equal(t, "10.01.2024", rows[1][6])
	require.Equal(t, "да", rows[1][7])
	require.Equal(t, "3", rows[1][9])
	require.Equal(t, reason, rows[1][10])
	require.Equal(t, "TSK-10000", rows[2][0])
	require.Equal(t, "нет", rows[2][7])

	t.Run(`empty list`, func(t *testing.T) {
		buf, err := impl{}.ExportTaskList(nil)
		require.NoError(t, err)
		f, err := excelize.OpenReader(buf)
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows(taskSheet)
		require.NoError(t, err)
		require.Len(t, rows, 1)
	})
}
