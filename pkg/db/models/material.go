package models

// Material is a sellable weighed good with one per-gram price per tier.
// Stock is advisory: sale commits never decrement it.
type Material struct {
	ID          int64   `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string  `gorm:"column:name;not null"`
	Purity      *string `gorm:"column:purity"`
	BulkPrice   float64 `gorm:"column:bulk_price;not null"`
	RetailPrice float64 `gorm:"column:retail_price;not null"`
	Active      bool    `gorm:"column:active;not null;default:true"`
	Stock       float64 `gorm:"column:stock;not null;default:0"`
}
