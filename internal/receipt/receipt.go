// Package receipt renders the line-oriented text ticket handed to the
// printer or saved to disk. The core services only supply the data; no
// output routing happens here.
package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/aurumpos/backend/pkg/enums"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const separatorWidth = 30

// Amounts are grouped with dots, Paraguayan style: 212.500
var amountPrinter = message.NewPrinter(language.Spanish)

// Header identifies the shop and the sale on top of the ticket.
type Header struct {
	ShopName  string
	Phone     string
	SaleID    int64
	Operator  string
	Tier      enums.Tier
	Timestamp time.Time
}

// Item is one printed line entry.
type Item struct {
	Description string
	Detail      string
	Subtotal    int64
}

// PaymentLine is one printed settlement split.
type PaymentLine struct {
	Method enums.PaymentMethod
	Amount int64
}

// Render produces the full ticket text, one line per element, ending
// with a trailing newline.
func Render(header Header, items []Item, payments []PaymentLine, total int64) string {
	var b strings.Builder
	separator := strings.Repeat("-", separatorWidth)

	shopName := header.ShopName
	if shopName == "" {
		shopName = "TIENDA"
	}
	b.WriteString(shopName + "\n")
	if header.Phone != "" {
		b.WriteString("Tel: " + header.Phone + "\n")
	}
	b.WriteString(separator + "\n")

	b.WriteString(fmt.Sprintf("Ticket: %d %s\n", header.SaleID, header.Timestamp.Format("2006-01-02 15:04")))
	b.WriteString("Vendedor: " + header.Operator + "\n")
	b.WriteString("Modalidad: " + header.Tier.String() + "\n")
	b.WriteString(separator + "\n")

	for _, item := range items {
		b.WriteString(item.Description + "\n")
		if item.Detail != "" {
			b.WriteString(item.Detail + "\n")
		}
		b.WriteString("Subt: $ " + formatAmount(item.Subtotal) + "\n")
		b.WriteString(separator + "\n")
	}

	b.WriteString("TOTAL: $ " + formatAmount(total) + "\n")

	for _, p := range payments {
		b.WriteString(fmt.Sprintf("Pago %s: $ %s\n", p.Method, formatAmount(p.Amount)))
	}

	return b.String()
}

func formatAmount(amount int64) string {
	return amountPrinter.Sprintf("%d", amount)
}
