package sqlstore

import "time"

// Record is one slot of the record store.
type Record struct {
	Namespace string    `gorm:"primaryKey;size:32"`
	Slot      string    `gorm:"primaryKey;size:200"`
	Data      []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the Record model.
func (Record) TableName() string {
	return "records"
}
