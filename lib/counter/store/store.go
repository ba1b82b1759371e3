package counterstore

import (
	"context"

	"gorm.io/gorm"
)

type Provider interface {
	// Next атомарно увеличивает счётчик и возвращает новое значение.
	// Для нового счётчика возвращается base+1.
	Next(ctx context.Context, name string, base int64) (seq int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

const nextSeqSQL = `INSERT INTO counters (id, seq) VALUES (?, ?)
ON CONFLICT (id) DO UPDATE SET seq = counters.seq + 1
RETURNING seq`

func (i impl) Next(ctx context.Context, name string, base int64) (seq int64, err error) {
	err = i.db.
		WithContext(ctx).
		Raw(nextSeqSQL, name, base+1).
		Scan(&seq).
		Error
	if err != nil {
		return 0, err
	}
	return seq, nil
}
