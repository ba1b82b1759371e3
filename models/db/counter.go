package dbmodels

type Counter struct {
	ID  string `gorm:"primaryKey;type:varchar(64)"`
	Seq int64
}
