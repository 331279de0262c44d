package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aurumpos/backend/pkg/db/models"
	pkgerrors "github.com/aurumpos/backend/pkg/errors"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Service is the sale ledger: it durably commits sale aggregates and
// reads them back for reprint/audit.
type Service interface {
	CommitSale(ctx context.Context, input CommitSaleInput) (int64, error)
	GetSale(ctx context.Context, saleID int64) (*models.Sale, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo     Repository
	tx       txRunner
	validate *validator.Validate
	now      func() time.Time
}

// ServiceParams bundles the dependencies required to build the sale ledger.
type ServiceParams struct {
	Repo Repository
	Tx   txRunner

	// Now overrides the commit clock; defaults to time.Now.
	Now func() time.Time
}

// NewService constructs a sale ledger with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("sales repository is required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:     params.Repo,
		tx:       params.Tx,
		validate: validator.New(),
		now:      now,
	}, nil
}

// CommitSale writes the header, line items, and payments as one atomic
// unit and returns the new sale id. Total is the sum of line item
// subtotals, never the sum of payments.
func (s *service) CommitSale(ctx context.Context, input CommitSaleInput) (int64, error) {
	if err := s.validateInput(input); err != nil {
		return 0, err
	}

	var total int64
	for _, item := range input.Items {
		total += item.Subtotal
	}

	sale := &models.Sale{
		Timestamp:     s.now(),
		OperatorID:    input.OperatorID,
		Tier:          input.Tier,
		TillSessionID: input.TillSessionID,
		Total:         total,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if err := txRepo.CreateSale(ctx, sale); err != nil {
			return fmt.Errorf("insert sale header: %w", err)
		}

		items := make([]models.SaleLineItem, 0, len(input.Items))
		for _, item := range input.Items {
			quantity := item.Quantity
			if quantity == 0 {
				quantity = 1
			}
			items = append(items, models.SaleLineItem{
				SaleID:      sale.ID,
				MaterialID:  item.MaterialID,
				Description: item.Description,
				WeightGrams: item.WeightGrams,
				UnitPrice:   item.UnitPrice,
				Quantity:    quantity,
				Subtotal:    item.Subtotal,
				Kind:        item.Kind,
			})
		}
		if err := txRepo.CreateLineItems(ctx, items); err != nil {
			return fmt.Errorf("insert line items: %w", err)
		}

		payments := make([]models.Payment, 0, len(input.Payments))
		for _, p := range input.Payments {
			payments = append(payments, models.Payment{
				SaleID: sale.ID,
				Method: p.Method,
				Amount: p.Amount,
			})
		}
		if err := txRepo.CreatePayments(ctx, payments); err != nil {
			return fmt.Errorf("insert payments: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "commit sale")
	}

	return sale.ID, nil
}

// GetSale loads a committed sale with its line items and payments.
func (s *service) GetSale(ctx context.Context, saleID int64) (*models.Sale, error) {
	sale, err := s.repo.FindSaleByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("sale %d not found", saleID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "read sale")
	}
	return sale, nil
}

func (s *service) validateInput(input CommitSaleInput) error {
	if err := s.validate.Struct(input); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sale input")
	}
	if !input.Tier.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid tier %q", input.Tier))
	}
	for _, item := range input.Items {
		if !item.Kind.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid line item kind %q", item.Kind))
		}
	}
	for _, p := range input.Payments {
		if !p.Method.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment method %q", p.Method))
		}
	}
	return nil
}
