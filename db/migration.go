package db

import (
	dbmodels "task-flow-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры User")
	}
	if err := DB.AutoMigrate(&dbmodels.Counter{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Counter")
	}
	if err := DB.AutoMigrate(&dbmodels.Task{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Task")
	}
	if err := DB.AutoMigrate(&dbmodels.TaskSubmission{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры TaskSubmission")
	}
	if err := DB.AutoMigrate(&dbmodels.TaskHistory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры TaskHistory")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
