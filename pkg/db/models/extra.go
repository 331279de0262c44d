package models

// Extra is a fixed-price add-on charge (repairs, clasps, engraving).
type Extra struct {
	ID     int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name   string `gorm:"column:name;not null"`
	Price  int64  `gorm:"column:price;not null"`
	Active bool   `gorm:"column:active;not null;default:true"`
}
