package submissionstore

import (
	"task-flow-backend/models"
	dbmodels "task-flow-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Filter пустые поля не применяются
type Filter struct {
	TaskRef      string
	EmployeeID   string
	AssignedByID string // только работы по задачам автора
}

type Provider interface {
	Create(rec dbmodels.TaskSubmission) (id string, err error)
	GetByID(spaceID, id string) (rec *dbmodels.TaskSubmission, err error)
	GetLatest(spaceID, taskRef string) (rec *dbmodels.TaskSubmission, err error)
	// ChangeStatus обновляет работу только если её текущий статус равен from
	ChangeStatus(spaceID, id string, from models.SubmissionStatus, updMap map[string]interface{}) (updated bool, err error)
	List(spaceID string, filter Filter) (list []dbmodels.TaskSubmission, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.TaskSubmission) (id string, err error) {
	err = i.db.
		Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.TaskSubmission, error) {
	rec := dbmodels.TaskSubmission{}
	err := i.db.
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Preload(clause.Associations).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetLatest(spaceID, taskRef string) (*dbmodels.TaskSubmission, error) {
	rec := dbmodels.TaskSubmission{}
	err := i.db.
		Where("task_ref = ?", taskRef).
		Where("space_id = ?", spaceID).
		Order("created_at DESC").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ChangeStatus(spaceID, id string, from models.SubmissionStatus, updMap map[string]interface{}) (bool, error) {
	tx := i.db.
		Model(&dbmodels.TaskSubmission{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Where("status = ?", from).
		Updates(updMap)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (i impl) List(spaceID string, filter Filter) (list []dbmodels.TaskSubmission, err error) {
	list = []dbmodels.TaskSubmission{}
	tx := i.db.
		Where("task_submissions.space_id = ?", spaceID).
		Order("task_submissions.created_at DESC").
		Preload(clause.Associations)
	if filter.TaskRef != "" {
		tx = tx.Where("task_submissions.task_ref = ?", filter.TaskRef)
	}
	if filter.EmployeeID != "" {
		tx = tx.Where("task_submissions.employee_id = ?", filter.EmployeeID)
	}
	if filter.AssignedByID != "" {
		tx = tx.
			Joins("JOIN tasks ON tasks.id = task_submissions.task_ref").
			Where("tasks.assigned_by_id = ?", filter.AssignedByID)
	}
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}
