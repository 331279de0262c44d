package catalog

import (
	"context"

	"github.com/aurumpos/backend/internal/repo"
	"github.com/aurumpos/backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository reads sellable materials and extras. The catalog is
// maintained outside the till; nothing here writes.
type Repository struct {
	repo.Base
}

// NewRepository constructs a catalog repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// ListActiveMaterials returns active materials ordered by name.
func (r *Repository) ListActiveMaterials(ctx context.Context) ([]models.Material, error) {
	var materials []models.Material
	err := r.DB(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&materials).Error
	if err != nil {
		return nil, err
	}
	return materials, nil
}

// FindActiveMaterial loads one active material by id.
func (r *Repository) FindActiveMaterial(ctx context.Context, id int64) (*models.Material, error) {
	var material models.Material
	err := r.DB(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&material).Error
	if err != nil {
		return nil, err
	}
	return &material, nil
}

// ReadStock selects only the stock column so databases missing it fail
// with a recognizable error instead of a scan mismatch.
func (r *Repository) ReadStock(ctx context.Context, id int64) (float64, error) {
	var stock float64
	err := r.DB(ctx).
		Raw("SELECT stock FROM materials WHERE id = ?", id).
		Scan(&stock).Error
	if err != nil {
		return 0, err
	}
	return stock, nil
}

// ListActiveExtras returns active fixed-price extras ordered by name.
func (r *Repository) ListActiveExtras(ctx context.Context) ([]models.Extra, error) {
	var extras []models.Extra
	err := r.DB(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&extras).Error
	if err != nil {
		return nil, err
	}
	return extras, nil
}
