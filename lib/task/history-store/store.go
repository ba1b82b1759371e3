package taskhistorystore

import (
	dbmodels "task-flow-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.TaskHistory) (id string, err error)
	List(spaceID, taskRef string) (list []dbmodels.TaskHistory, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.TaskHistory) (id string, err error) {
	err = i.db.
		Omit("User").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(spaceID, taskRef string) (list []dbmodels.TaskHistory, err error) {
	list = []dbmodels.TaskHistory{}
	tx := i.db.
		Where("space_id = ?", spaceID).
		Where("task_ref = ?", taskRef).
		Order("created_at ASC").
		Preload("User")
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}
