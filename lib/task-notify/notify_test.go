package tasknotify

import (
	"task-flow-backend/models"
	dbmodels "task-flow-backend/models/db"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to, subject, message string
}

type memSender struct {
	sent []sentMail
	err  error
}

func (m *memSender) SendEMail(to, subject, message string) error {
	m.sent = append(m.sent, sentMail{to: to, subject: subject, message: message})
	return m.err
}

func TestNotify(t *testing.T) {
	task := dbmodels.Task{TaskID: "TSK-10000", Title: "Отчёт", Status: models.TaskStatusCreated}

	t.Run(`TaskAssigned check`, func(t *testing.T) {
		sender := &memSender{}
		i := NewInstance(sender)
		i.TaskAssigned(task, []dbmodels.User{{Email: "a@corp.ru"}, {Email: ""}, {Email: "b@corp.ru"}})
		require.Len(t, sender.sent, 2)
		require.Equal(t, "a@corp.ru", sender.sent[0].to)
		require.Contains(t, sender.sent[0].subject, "TSK-10000")
	})

	t.Run(`SubmissionRejected check`, func(t *testing.T) {
		sender := &memSender{err: errors.New("smtp down")}
		i := NewInstance(sender)
		i.SubmissionRejected(task, &dbmodels.User{Email: "a@corp.ru"}, "incomplete report")
		require.Len(t, sender.sent, 1)
		require.Contains(t, sender.sent[0].message, "incomplete report")

		i.SubmissionApproved(task, nil)
		require.Len(t, sender.sent, 1)
	})
}
