package sales

import "github.com/aurumpos/backend/pkg/enums"

// LineItemInput is one cart line submitted for commit. Subtotal is
// computed upstream (internal/pricing for materials, list price for
// extras) and stored as-is.
type LineItemInput struct {
	MaterialID  *int64
	Description string `validate:"required"`
	WeightGrams *float64
	UnitPrice   *float64
	Quantity    int   `validate:"gte=0"`
	Subtotal    int64 `validate:"gte=0"`
	Kind        enums.LineItemKind
}

// PaymentInput is one settlement split submitted for commit.
type PaymentInput struct {
	Method enums.PaymentMethod
	Amount int64 `validate:"gt=0"`
}

// CommitSaleInput carries a full sale aggregate. Payment sufficiency is
// not validated; an underpaid sale is legal.
type CommitSaleInput struct {
	OperatorID    int64 `validate:"gt=0"`
	Tier          enums.Tier
	TillSessionID *int64
	Items         []LineItemInput `validate:"min=1,dive"`
	Payments      []PaymentInput  `validate:"dive"`
}
