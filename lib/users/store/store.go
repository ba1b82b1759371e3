package usersstore

import (
	dbmodels "task-flow-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	GetByIDs(spaceID string, userIDs []string) (list []dbmodels.User, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetByIDs(spaceID string, userIDs []string) (list []dbmodels.User, err error) {
	list = []dbmodels.User{}
	if len(userIDs) == 0 {
		return list, nil
	}
	err = i.db.
		Where("space_id = ?", spaceID).
		Where("id IN ?", userIDs).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
