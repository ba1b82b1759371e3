package counterhandler

import (
	"context"
	"fmt"
	"task-flow-backend/db"
	counterstore "task-flow-backend/lib/counter/store"
	"task-flow-backend/models"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	NextTaskID(ctx context.Context) (string, error)
	NextSubmissionID(ctx context.Context) (string, error)
}

var Instance Provider

func NewHandler(base int64) {
	Instance = impl{
		store: counterstore.NewInstance(db.DB),
		base:  base,
	}
}

func NewInstance(store counterstore.Provider, base int64) Provider {
	return impl{
		store: store,
		base:  base,
	}
}

type impl struct {
	store counterstore.Provider
	base  int64
}

func (i impl) NextTaskID(ctx context.Context) (string, error) {
	return i.next(ctx, models.TaskIDCounter, models.TaskIDPrefix)
}

func (i impl) NextSubmissionID(ctx context.Context) (string, error) {
	return i.next(ctx, models.SubmissionIDCounter, models.SubmissionIDPrefix)
}

func (i impl) next(ctx context.Context, name, prefix string) (string, error) {
	seq, err := i.store.Next(ctx, name, i.base)
	if err != nil {
		log.
			WithField("counter", name).
			WithError(err).
			Error("ошибка получения следующего значения счётчика")
		return "", errors.Wrapf(err, "ошибка получения идентификатора (%v)", name)
	}
	return fmt.Sprintf("%s%d", prefix, seq), nil
}
