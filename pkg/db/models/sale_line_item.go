package models

import "github.com/aurumpos/backend/pkg/enums"

// SaleLineItem is one priced entry within a sale, either a weighed catalog
// material or a free-form extra charge. Immutable once created.
type SaleLineItem struct {
	ID          int64              `gorm:"column:id;primaryKey;autoIncrement"`
	SaleID      int64              `gorm:"column:sale_id;not null"`
	MaterialID  *int64             `gorm:"column:material_id"`
	Description string             `gorm:"column:description;not null"`
	WeightGrams *float64           `gorm:"column:weight"`
	UnitPrice   *float64           `gorm:"column:unit_price"`
	Quantity    int                `gorm:"column:quantity;not null;default:1"`
	Subtotal    int64              `gorm:"column:subtotal;not null"`
	Kind        enums.LineItemKind `gorm:"column:kind;not null"`
}
