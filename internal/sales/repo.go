package sales

import (
	"context"

	"github.com/aurumpos/backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository manages persistence for sale aggregates.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateSale(ctx context.Context, sale *models.Sale) error
	CreateLineItems(ctx context.Context, items []models.SaleLineItem) error
	CreatePayments(ctx context.Context, payments []models.Payment) error
	FindSaleByID(ctx context.Context, id int64) (*models.Sale, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a sales repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateSale(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *repository) CreateLineItems(ctx context.Context, items []models.SaleLineItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) CreatePayments(ctx context.Context, payments []models.Payment) error {
	if len(payments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&payments).Error
}

func (r *repository) FindSaleByID(ctx context.Context, id int64) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		Where("id = ?", id).
		First(&sale).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}
