package receipt

import (
	"strings"
	"testing"
	"time"

	"github.com/aurumpos/backend/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFullTicket(t *testing.T) {
	header := Header{
		ShopName:  "AURUM",
		Phone:     "0981 123 456",
		SaleID:    42,
		Operator:  "ana",
		Tier:      enums.TierRetail,
		Timestamp: time.Date(2025, 9, 15, 10, 30, 0, 0, time.UTC),
	}
	items := []Item{
		{Description: "Oro 18K", Detail: "2.5 g x $ 86.000", Subtotal: 215000},
		{Description: "Grabado", Subtotal: 15000},
	}
	payments := []PaymentLine{
		{Method: enums.PaymentMethodCash, Amount: 200000},
		{Method: enums.PaymentMethodCard, Amount: 30000},
	}

	ticket := Render(header, items, payments, 230000)

	lines := strings.Split(ticket, "\n")
	assert.Equal(t, "AURUM", lines[0])
	assert.Equal(t, "Tel: 0981 123 456", lines[1])
	assert.Equal(t, strings.Repeat("-", 30), lines[2])
	assert.Equal(t, "Ticket: 42 2025-09-15 10:30", lines[3])
	assert.Equal(t, "Vendedor: ana", lines[4])
	assert.Equal(t, "Modalidad: RETAIL", lines[5])

	assert.Contains(t, ticket, "Oro 18K\n2.5 g x $ 86.000\nSubt: $ 215.000\n")
	assert.Contains(t, ticket, "Grabado\nSubt: $ 15.000\n")
	assert.Contains(t, ticket, "TOTAL: $ 230.000\n")
	assert.Contains(t, ticket, "Pago CASH: $ 200.000\n")
	assert.Contains(t, ticket, "Pago CARD: $ 30.000\n")
	assert.True(t, strings.HasSuffix(ticket, "\n"))
}

func TestRenderDefaultsAndOmissions(t *testing.T) {
	ticket := Render(Header{SaleID: 1, Operator: "ana", Tier: enums.TierBulk}, nil, nil, 0)

	lines := strings.Split(ticket, "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "TIENDA", lines[0], "missing shop name falls back to a generic banner")
	assert.NotContains(t, ticket, "Tel:")
	assert.NotContains(t, ticket, "Pago")
	assert.Contains(t, ticket, "TOTAL: $ 0\n")
}
