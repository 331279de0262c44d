package models

import "time"

// TillSession brackets a cash drawer shift. Sales committed while a
// session is open may reference it for closing reconciliation.
type TillSession struct {
	ID            int64      `gorm:"column:id;primaryKey;autoIncrement"`
	OpenedAt      time.Time  `gorm:"column:opened_at;not null"`
	OpenedBy      int64      `gorm:"column:opened_by;not null"`
	OpeningFloat  int64      `gorm:"column:opening_float;not null"`
	ClosedAt      *time.Time `gorm:"column:closed_at"`
	ClosedBy      *int64     `gorm:"column:closed_by"`
	CountedAmount *int64     `gorm:"column:counted_amount"`
}
