package taskhandler

import (
	"strings"
	submissionstore "task-flow-backend/lib/task/submission-store"
	apperrors "task-flow-backend/lib/utils/app-errors"
	"task-flow-backend/models"
	taskapimodels "task-flow-backend/models/api/task"
	dbmodels "task-flow-backend/models/db"

	"github.com/pkg/errors"
)

func (i impl) ListSubmissions(spaceID, userID string, role models.UserRole) ([]taskapimodels.SubmissionView, error) {
	filter := submissionstore.Filter{}
	switch role {
	case models.AdminRole:
	case models.ManagerRole:
		filter.AssignedByID = userID
	default:
		return nil, apperrors.Forbidden()
	}
	return i.listSubmissions(spaceID, filter)
}

func (i impl) ListTaskSubmissions(spaceID, userID string, role models.UserRole, taskID string) ([]taskapimodels.SubmissionView, error) {
	if !role.CanAssign() {
		return nil, apperrors.Forbidden()
	}
	task, err := i.getTask(spaceID, taskID)
	if err != nil {
		return nil, err
	}
	if err = checkScope(*task, userID, role); err != nil {
		return nil, err
	}
	return i.listSubmissions(spaceID, submissionstore.Filter{TaskRef: taskID})
}

func (i impl) GetSubmission(spaceID, userID string, role models.UserRole, id string) (*taskapimodels.SubmissionView, error) {
	rec, err := i.getSubmission(spaceID, id)
	if err != nil {
		return nil, err
	}
	if rec.Task == nil {
		// работа по удалённой задаче доступна только администратору
		if !role.IsAdmin() {
			return nil, apperrors.Forbidden()
		}
	} else if err = checkScope(*rec.Task, userID, role); err != nil {
		return nil, err
	}
	view := taskapimodels.SubmissionConvert(*rec)
	return &view, nil
}

func (i impl) Approve(spaceID, userID string, role models.UserRole, id string) (*taskapimodels.SubmissionView, error) {
	if !role.CanAssign() {
		return nil, apperrors.Forbidden()
	}
	var reviewed *dbmodels.TaskSubmission
	err := i.inTransaction(func(s stores) error {
		var err error
		reviewed, err = i.checkReview(s, spaceID, userID, role, id)
		if err != nil {
			return err
		}
		updMap := map[string]interface{}{
			"status":           models.SubmissionStatusApproved,
			"reviewed_by_id":   userID,
			"reviewed_at":      i.now(),
			"rejection_reason": nil,
		}
		if err = i.changeSubmission(s, spaceID, id, updMap); err != nil {
			return err
		}
		taskUpd := map[string]interface{}{
			"status":           models.TaskStatusCompleted,
			"rejection_reason": nil,
		}
		if err = i.changeTask(s, spaceID, reviewed.TaskRef, taskUpd); err != nil {
			return err
		}
		reviewed.Task.Status = models.TaskStatusCompleted
		return i.audit(s, *reviewed.Task, userID, id, models.TaskActionApprove, "", nil)
	})
	if err != nil {
		return nil, err
	}
	i.getLogger(spaceID, userID, id).Info("работа принята")
	if i.notifier != nil {
		i.notifier.SubmissionApproved(*reviewed.Task, reviewed.Employee)
	}
	return i.getSubmissionView(spaceID, id)
}

func (i impl) Reject(spaceID, userID string, role models.UserRole, id string, data taskapimodels.RejectData) (*taskapimodels.SubmissionView, error) {
	if !role.CanAssign() {
		return nil, apperrors.Forbidden()
	}
	if err := data.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	reason := strings.TrimSpace(data.RejectionReason)
	var reviewed *dbmodels.TaskSubmission
	err := i.inTransaction(func(s stores) error {
		var err error
		reviewed, err = i.checkReview(s, spaceID, userID, role, id)
		if err != nil {
			return err
		}
		updMap := map[string]interface{}{
			"status":           models.SubmissionStatusRejected,
			"reviewed_by_id":   userID,
			"reviewed_at":      i.now(),
			"rejection_reason": reason,
		}
		if err = i.changeSubmission(s, spaceID, id, updMap); err != nil {
			return err
		}
		taskUpd := map[string]interface{}{
			"status":           models.TaskStatusRejected,
			"rejection_reason": reason,
		}
		if err = i.changeTask(s, spaceID, reviewed.TaskRef, taskUpd); err != nil {
			return err
		}
		reviewed.Task.Status = models.TaskStatusRejected
		return i.audit(s, *reviewed.Task, userID, id, models.TaskActionReject, reason, nil)
	})
	if err != nil {
		return nil, err
	}
	i.getLogger(spaceID, userID, id).Info("работа отклонена")
	if i.notifier != nil {
		i.notifier.SubmissionRejected(*reviewed.Task, reviewed.Employee, reason)
	}
	return i.getSubmissionView(spaceID, id)
}

// checkReview проверить можно только последнюю работу, ожидающую проверки, по задаче в статусе Submitted
func (i impl) checkReview(s stores, spaceID, userID string, role models.UserRole, id string) (*dbmodels.TaskSubmission, error) {
	rec, err := s.submission.GetByID(spaceID, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperrors.NotFound("работа не найдена")
	}
	task, err := s.task.GetByID(spaceID, rec.TaskRef)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperrors.Conflict("задача, к которой относится работа, удалена")
	}
	if err = checkScope(*task, userID, role); err != nil {
		return nil, err
	}
	if rec.Status != models.SubmissionStatusPending {
		return nil, apperrors.Conflictf("работа уже проверена, статус \"%v\"", rec.Status)
	}
	if !task.Status.AllowReview() {
		return nil, apperrors.Conflictf("задача в статусе \"%v\" не ожидает проверки", task.Status)
	}
	latest, err := s.submission.GetLatest(spaceID, task.ID)
	if err != nil {
		return nil, err
	}
	if latest == nil || latest.ID != rec.ID {
		return nil, apperrors.Conflict("проверить можно только последнюю отправленную работу")
	}
	rec.Task = task
	return rec, nil
}

func (i impl) changeSubmission(s stores, spaceID, id string, updMap map[string]interface{}) error {
	ok, err := s.submission.ChangeStatus(spaceID, id, models.SubmissionStatusPending, updMap)
	if err != nil {
		return errors.Wrap(err, "ошибка изменения статуса работы")
	}
	if !ok {
		return apperrors.Conflict("работа уже проверена")
	}
	return nil
}

func (i impl) changeTask(s stores, spaceID, id string, updMap map[string]interface{}) error {
	ok, err := s.task.ChangeStatus(spaceID, id, []models.TaskStatus{models.TaskStatusSubmitted}, updMap)
	if err != nil {
		return errors.Wrap(err, "ошибка изменения статуса задачи")
	}
	if !ok {
		return apperrors.Conflict("статус задачи изменился, обновите данные")
	}
	return nil
}

func (i impl) getSubmission(spaceID, id string) (*dbmodels.TaskSubmission, error) {
	rec, err := i.submission.GetByID(spaceID, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperrors.NotFound("работа не найдена")
	}
	return rec, nil
}

func (i impl) getSubmissionView(spaceID, id string) (*taskapimodels.SubmissionView, error) {
	rec, err := i.getSubmission(spaceID, id)
	if err != nil {
		return nil, err
	}
	view := taskapimodels.SubmissionConvert(*rec)
	return &view, nil
}

func (i impl) listSubmissions(spaceID string, filter submissionstore.Filter) ([]taskapimodels.SubmissionView, error) {
	list, err := i.submission.List(spaceID, filter)
	if err != nil {
		return nil, err
	}
	result := make([]taskapimodels.SubmissionView, 0, len(list))
	for _, rec := range list {
		result = append(result, taskapimodels.SubmissionConvert(rec))
	}
	return result, nil
}
