package pdfexport

import (
	"bytes"
	"task-flow-backend/models"
	taskapimodels "task-flow-backend/models/api/task"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSubmissionSheet(t *testing.T) {
	reviewedAt := time.Date(2024, 1, 12, 15, 30, 0, 0, time.UTC)
	reason := "incomplete report"
	sub := taskapimodels.SubmissionView{
		SubmittedID:     "SUB-10000",
		TaskID:          "TSK-10000",
		TaskTitle:       "Quarterly report",
		Employee:        taskapimodels.UserShortView{ID: "emp-1", Name: "Ivanov"},
		Title:           "Report",
		Description:     "first line\nsecond line",
		Status:          models.SubmissionStatusRejected,
		RejectionReason: &reason,
		ReviewedAt:      &reviewedAt,
		CreatedAt:       time.Date(2024, 1, 12, 10, 0, 0, 0, time.UTC),
	}

	t.Run(`core font fallback`, func(t *testing.T) {
		data, err := SubmissionSheet(t.TempDir(), sub)
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	})

	t.Run(`orphaned submission`, func(t *testing.T) {
		orphan := sub
		orphan.TaskID = ""
		orphan.TaskTitle = ""
		orphan.RejectionReason = nil
		data, err := SubmissionSheet("", orphan)
		require.NoError(t, err)
		require.NotEmpty(t, data)
	})
}

func TestHasFonts(t *testing.T) {
	require.False(t, hasFonts(""))
	require.False(t, hasFonts(t.TempDir()))
}
