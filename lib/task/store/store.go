package taskstore

import (
	"task-flow-backend/models"
	dbmodels "task-flow-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Filter ограничение выборки по роли пользователя, пустые поля не применяются
type Filter struct {
	AssignedByID string
	AssigneeID   string
}

type Provider interface {
	Create(rec dbmodels.Task) (id string, err error)
	GetByID(spaceID, id string) (rec *dbmodels.Task, err error)
	Update(spaceID, id string, updMap map[string]interface{}) error
	ChangeStatus(spaceID, id string, from []models.TaskStatus, updMap map[string]interface{}) (updated bool, err error)
	Delete(spaceID, id string) error
	List(spaceID string, filter Filter) (list []dbmodels.Task, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Task) (id string, err error) {
	err = i.db.
		Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.Task, error) {
	rec := dbmodels.Task{}
	err := i.db.
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Preload("AssignedBy").
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

func (i impl) Update(spaceID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Task{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("задача не найдена")
	}
	return nil
}

// ChangeStatus обновляет задачу только если её текущий статус входит в from
func (i impl) ChangeStatus(spaceID, id string, from []models.TaskStatus, updMap map[string]interface{}) (bool, error) {
	tx := i.db.
		Model(&dbmodels.Task{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Where("status IN ?", from).
		Updates(updMap)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (i impl) Delete(spaceID, id string) error {
	rec := dbmodels.Task{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: id},
			SpaceID:   spaceID,
		},
	}
	err := i.db.
		Where("space_id = ?", spaceID).
		Delete(&rec).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List(spaceID string, filter Filter) (list []dbmodels.Task, err error) {
	list = []dbmodels.Task{}
	tx := i.db.
		Where("space_id = ?", spaceID).
		Order("created_at DESC").
		Preload("AssignedBy")
	if filter.AssignedByID != "" {
		tx = tx.Where("assigned_by_id = ?", filter.AssignedByID)
	}
	if filter.AssigneeID != "" {
		tx = tx.Where("? = ANY(assigned_to)", filter.AssigneeID)
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
