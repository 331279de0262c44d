package models

import (
	"time"

	"github.com/aurumpos/backend/pkg/enums"
)

// Sale is the header of a committed transaction. Total is fixed at commit
// time as the sum of line item subtotals and never recomputed.
type Sale struct {
	ID            int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Timestamp     time.Time  `gorm:"column:timestamp;not null"`
	OperatorID    int64      `gorm:"column:operator_id;not null"`
	Tier          enums.Tier `gorm:"column:tier;not null"`
	TillSessionID *int64     `gorm:"column:till_session_id"`
	Total         int64      `gorm:"column:total;not null"`

	Items    []SaleLineItem `gorm:"foreignKey:SaleID"`
	Payments []Payment      `gorm:"foreignKey:SaleID"`
}
