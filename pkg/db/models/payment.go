package models

import "github.com/aurumpos/backend/pkg/enums"

// Payment records one settlement split against a sale. The sum of a
// sale's payments is not required to equal its total.
type Payment struct {
	ID     int64               `gorm:"column:id;primaryKey;autoIncrement"`
	SaleID int64               `gorm:"column:sale_id;not null"`
	Method enums.PaymentMethod `gorm:"column:method;not null"`
	Amount int64               `gorm:"column:amount;not null"`
}
