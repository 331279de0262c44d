package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/aurumpos/backend/pkg/db"
	"github.com/aurumpos/backend/pkg/db/models"
	pkgerrors "github.com/aurumpos/backend/pkg/errors"
	"gorm.io/gorm"
)

// MaterialSummary is the listing row shown when building a cart.
type MaterialSummary struct {
	ID     int64
	Name   string
	Purity string
}

// Prices holds the two per-gram prices of a material.
type Prices struct {
	Bulk   float64
	Retail float64
}

// Service defines the read-only catalog surface.
type Service interface {
	ListMaterials(ctx context.Context) ([]MaterialSummary, error)
	GetPrices(ctx context.Context, materialID int64) (Prices, error)
	GetStock(ctx context.Context, materialID int64) (float64, error)
	CheckAvailability(ctx context.Context, materialID int64, weightGrams float64) (bool, error)
	ListExtras(ctx context.Context) ([]models.Extra, error)
}

type service struct {
	repo *Repository
}

// NewService wires a catalog service with the provided repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// ListMaterials returns active materials sorted by name.
func (s *service) ListMaterials(ctx context.Context) ([]MaterialSummary, error) {
	materials, err := s.repo.ListActiveMaterials(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "list materials")
	}

	summaries := make([]MaterialSummary, 0, len(materials))
	for _, m := range materials {
		purity := ""
		if m.Purity != nil {
			purity = *m.Purity
		}
		summaries = append(summaries, MaterialSummary{ID: m.ID, Name: m.Name, Purity: purity})
	}
	return summaries, nil
}

// GetPrices returns both tier prices. Inactive materials are treated as
// not found for pricing purposes.
func (s *service) GetPrices(ctx context.Context, materialID int64) (Prices, error) {
	material, err := s.repo.FindActiveMaterial(ctx, materialID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Prices{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("material %d not found", materialID))
		}
		return Prices{}, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "read material prices")
	}
	return Prices{Bulk: material.BulkPrice, Retail: material.RetailPrice}, nil
}

// GetStock returns the available quantity in grams. Missing rows and
// databases predating the stock column both report zero.
func (s *service) GetStock(ctx context.Context, materialID int64) (float64, error) {
	stock, err := s.repo.ReadStock(ctx, materialID)
	if err != nil {
		if db.IsMissingColumn(err, "stock") {
			return 0, nil
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "read stock")
	}
	return stock, nil
}

// CheckAvailability compares a proposed weight against current stock.
// This is a point-in-time read, not a reservation: stock is never
// decremented on commit, so the answer can go stale.
func (s *service) CheckAvailability(ctx context.Context, materialID int64, weightGrams float64) (bool, error) {
	stock, err := s.GetStock(ctx, materialID)
	if err != nil {
		return false, err
	}
	return weightGrams <= stock, nil
}

// ListExtras returns active fixed-price add-on charges.
func (s *service) ListExtras(ctx context.Context) ([]models.Extra, error) {
	extras, err := s.repo.ListActiveExtras(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "list extras")
	}
	return extras, nil
}
