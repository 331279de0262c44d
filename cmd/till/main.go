package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aurumpos/backend/internal/auth"
	"github.com/aurumpos/backend/internal/bootstrap"
	"github.com/aurumpos/backend/internal/catalog"
	"github.com/aurumpos/backend/internal/closing"
	"github.com/aurumpos/backend/internal/pricing"
	"github.com/aurumpos/backend/internal/receipt"
	"github.com/aurumpos/backend/internal/sales"
	"github.com/aurumpos/backend/internal/users"
	"github.com/aurumpos/backend/pkg/config"
	"github.com/aurumpos/backend/pkg/db"
	"github.com/aurumpos/backend/pkg/enums"
	pkgerrors "github.com/aurumpos/backend/pkg/errors"
	"github.com/aurumpos/backend/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "till"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cmd := flag.String("cmd", "", "command: enroll|list|sell|close-day|reprint|open-session|close-session")
	username := flag.String("username", "", "operator username (for enroll/sell)")
	password := flag.String("password", "", "operator password (for enroll/sell)")
	role := flag.String("role", string(enums.RoleSeller), "operator role: MANAGER|SELLER (for enroll)")
	tier := flag.String("tier", string(enums.TierRetail), "pricing tier: BULK|RETAIL (for sell)")
	itemsArg := flag.String("items", "", "material lines materialID:grams[,materialID:grams...] (for sell)")
	extrasArg := flag.String("extras", "", "extra ids id[,id...] (for sell)")
	payArg := flag.String("pay", "", "payments METHOD:amount[,METHOD:amount...] (for sell)")
	date := flag.String("date", "", "calendar day YYYY-MM-DD (for close-day, defaults to today)")
	saleID := flag.Int64("sale", 0, "sale id (for reprint)")
	operatorID := flag.Int64("operator", 0, "operator id (for open-session/close-session)")
	sessionID := flag.Int64("session", 0, "till session id (for close-session)")
	amount := flag.Int64("amount", 0, "opening float or counted amount (for sessions)")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "till",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	err = bootstrap.Run(ctx, cfg, logg, dbClient)
	requireResource(ctx, logg, "bootstrap", err)

	userRepo := users.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		PasswordConfig: cfg.Password,
	})
	requireResource(ctx, logg, "auth service", err)

	salesService, err := sales.NewService(sales.ServiceParams{
		Repo: sales.NewRepository(dbClient.DB()),
		Tx:   dbClient,
	})
	requireResource(ctx, logg, "sales service", err)

	closingService, err := closing.NewService(closing.NewRepository(dbClient.DB()))
	requireResource(ctx, logg, "closing service", err)

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	requireResource(ctx, logg, "catalog service", err)

	switch *cmd {
	case "enroll":
		if *username == "" || *password == "" {
			fail("enroll requires -username and -password")
		}
		parsedRole, err := enums.ParseRole(*role)
		if err != nil {
			fail(err.Error())
		}
		id, err := authService.Enroll(ctx, auth.EnrollInput{
			Username: *username,
			Password: *password,
			Role:     parsedRole,
		})
		if err != nil {
			failErr(err)
		}
		logg.Info(logg.WithOperator(ctx, *username), "operator enrolled")
		fmt.Printf("enrolled %s (id %d)\n", *username, id)

	case "list":
		materials, err := catalogService.ListMaterials(ctx)
		if err != nil {
			failErr(err)
		}
		fmt.Println("Materials:")
		for _, m := range materials {
			prices, err := catalogService.GetPrices(ctx, m.ID)
			if err != nil {
				failErr(err)
			}
			fmt.Printf("  %3d %-20s %-5s bulk %.0f retail %.0f\n", m.ID, m.Name, m.Purity, prices.Bulk, prices.Retail)
		}
		extras, err := catalogService.ListExtras(ctx)
		if err != nil {
			failErr(err)
		}
		fmt.Println("Extras:")
		for _, e := range extras {
			fmt.Printf("  %3d %-20s %d\n", e.ID, e.Name, e.Price)
		}

	case "sell":
		if *username == "" || *password == "" {
			fail("sell requires -username and -password")
		}
		operator, err := authService.Authenticate(ctx, *username, *password)
		if err != nil {
			failErr(err)
		}
		parsedTier, err := enums.ParseTier(*tier)
		if err != nil {
			fail(err.Error())
		}
		ctx = logg.WithOperator(ctx, operator.Username)

		items, receiptItems := buildMaterialLines(ctx, logg, catalogService, parsedTier, *itemsArg)
		extraItems, extraReceiptItems := buildExtraLines(ctx, catalogService, *extrasArg)
		items = append(items, extraItems...)
		receiptItems = append(receiptItems, extraReceiptItems...)

		input := sales.CommitSaleInput{
			OperatorID: operator.ID,
			Tier:       parsedTier,
			Items:      items,
			Payments:   parsePayments(*payArg),
		}
		sessionRef, err := currentSessionRef(ctx, closingService)
		if err != nil {
			failErr(err)
		}
		input.TillSessionID = sessionRef

		newSaleID, err := salesService.CommitSale(ctx, input)
		if err != nil {
			failErr(err)
		}
		logg.Info(logg.WithSaleID(ctx, newSaleID), "sale committed")

		sale, err := salesService.GetSale(ctx, newSaleID)
		if err != nil {
			failErr(err)
		}
		payments := make([]receipt.PaymentLine, 0, len(sale.Payments))
		var paid int64
		for _, p := range sale.Payments {
			payments = append(payments, receipt.PaymentLine{Method: p.Method, Amount: p.Amount})
			paid += p.Amount
		}
		if warning, mismatch := paymentMismatchWarning(paid, sale.Total); mismatch {
			logg.Warn(logg.WithSaleID(ctx, sale.ID), warning)
		}
		fmt.Print(receipt.Render(receipt.Header{
			ShopName:  cfg.Shop.Name,
			Phone:     cfg.Shop.Phone,
			SaleID:    sale.ID,
			Operator:  operator.Username,
			Tier:      sale.Tier,
			Timestamp: sale.Timestamp,
		}, receiptItems, payments, sale.Total))

	case "close-day":
		day := time.Now()
		if *date != "" {
			day, err = time.ParseInLocation("2006-01-02", *date, time.Local)
			if err != nil {
				fail(fmt.Sprintf("invalid -date: %v", err))
			}
		}
		summary, err := closingService.SummarizeDay(ctx, day)
		if err != nil {
			failErr(err)
		}
		fmt.Printf("Day %s: %d sale(s), total %d\n", summary.Date.Format("2006-01-02"), summary.Count, summary.Total)
		for _, row := range summary.Breakdown {
			fmt.Printf("  %-9s %d\n", row.Method, row.Amount)
		}

	case "reprint":
		if *saleID <= 0 {
			fail("reprint requires -sale")
		}
		sale, err := salesService.GetSale(ctx, *saleID)
		if err != nil {
			failErr(err)
		}
		operatorName := fmt.Sprintf("#%d", sale.OperatorID)
		if operator, err := userRepo.FindByID(ctx, sale.OperatorID); err == nil {
			operatorName = operator.Username
		}

		items := make([]receipt.Item, 0, len(sale.Items))
		for _, item := range sale.Items {
			detail := ""
			if item.WeightGrams != nil && item.UnitPrice != nil {
				detail = fmt.Sprintf("%.3f g x %.0f", *item.WeightGrams, *item.UnitPrice)
			}
			items = append(items, receipt.Item{
				Description: item.Description,
				Detail:      detail,
				Subtotal:    item.Subtotal,
			})
		}
		payments := make([]receipt.PaymentLine, 0, len(sale.Payments))
		var paid int64
		for _, p := range sale.Payments {
			payments = append(payments, receipt.PaymentLine{Method: p.Method, Amount: p.Amount})
			paid += p.Amount
		}
		if warning, mismatch := paymentMismatchWarning(paid, sale.Total); mismatch {
			logg.Warn(logg.WithSaleID(ctx, sale.ID), warning)
		}

		fmt.Print(receipt.Render(receipt.Header{
			ShopName:  cfg.Shop.Name,
			Phone:     cfg.Shop.Phone,
			SaleID:    sale.ID,
			Operator:  operatorName,
			Tier:      sale.Tier,
			Timestamp: sale.Timestamp,
		}, items, payments, sale.Total))

	case "open-session":
		if *operatorID <= 0 {
			fail("open-session requires -operator")
		}
		id, err := closingService.OpenSession(ctx, *operatorID, *amount)
		if err != nil {
			failErr(err)
		}
		fmt.Printf("opened till session %d\n", id)

	case "close-session":
		if *sessionID <= 0 || *operatorID <= 0 {
			fail("close-session requires -session and -operator")
		}
		if err := closingService.CloseSession(ctx, *sessionID, *operatorID, *amount); err != nil {
			failErr(err)
		}
		fmt.Printf("closed till session %d\n", *sessionID)

	default:
		fail("unknown -cmd value: " + *cmd)
	}
}

// buildMaterialLines prices weighed material entries of the form
// "materialID:grams" against the catalog at the given tier.
func buildMaterialLines(ctx context.Context, logg *logger.Logger, catalogService catalog.Service, tier enums.Tier, arg string) ([]sales.LineItemInput, []receipt.Item) {
	if arg == "" {
		return nil, nil
	}

	summaries, err := catalogService.ListMaterials(ctx)
	if err != nil {
		failErr(err)
	}
	names := make(map[int64]string, len(summaries))
	for _, m := range summaries {
		name := m.Name
		if m.Purity != "" {
			name = fmt.Sprintf("%s %s", m.Name, m.Purity)
		}
		names[m.ID] = name
	}

	var items []sales.LineItemInput
	var receiptItems []receipt.Item
	for _, entry := range strings.Split(arg, ",") {
		parts := strings.SplitN(entry, ":", 2)
		if len(parts) != 2 {
			fail("invalid -items entry: " + entry)
		}
		materialID, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			fail("invalid material id: " + parts[0])
		}
		grams, err := strconv.ParseFloat(parts[1], 64)
		if err != nil || grams <= 0 {
			fail("invalid weight: " + parts[1])
		}

		prices, err := catalogService.GetPrices(ctx, materialID)
		if err != nil {
			failErr(err)
		}
		listPrice := prices.Retail
		if tier == enums.TierBulk {
			listPrice = prices.Bulk
		}
		effective, _ := pricing.EffectiveUnitPrice(listPrice, tier).Float64()
		subtotal := pricing.Subtotal(listPrice, grams, tier)

		if ok, err := catalogService.CheckAvailability(ctx, materialID, grams); err == nil && !ok {
			logg.Warn(ctx, fmt.Sprintf("material %d: requested %.3f g exceeds recorded stock", materialID, grams))
		}

		items = append(items, sales.LineItemInput{
			MaterialID:  &materialID,
			Description: names[materialID],
			WeightGrams: &grams,
			UnitPrice:   &effective,
			Quantity:    1,
			Subtotal:    subtotal,
			Kind:        enums.LineItemKindMaterial,
		})
		receiptItems = append(receiptItems, receipt.Item{
			Description: names[materialID],
			Detail:      fmt.Sprintf("%.3f g x %.0f", grams, effective),
			Subtotal:    subtotal,
		})
	}
	return items, receiptItems
}

// buildExtraLines resolves comma-separated extra ids to fixed-price lines.
func buildExtraLines(ctx context.Context, catalogService catalog.Service, arg string) ([]sales.LineItemInput, []receipt.Item) {
	if arg == "" {
		return nil, nil
	}

	extras, err := catalogService.ListExtras(ctx)
	if err != nil {
		failErr(err)
	}

	var items []sales.LineItemInput
	var receiptItems []receipt.Item
	for _, entry := range strings.Split(arg, ",") {
		extraID, err := strconv.ParseInt(entry, 10, 64)
		if err != nil {
			fail("invalid extra id: " + entry)
		}
		found := false
		for _, e := range extras {
			if e.ID != extraID {
				continue
			}
			items = append(items, sales.LineItemInput{
				Description: e.Name,
				Quantity:    1,
				Subtotal:    e.Price,
				Kind:        enums.LineItemKindExtra,
			})
			receiptItems = append(receiptItems, receipt.Item{Description: e.Name, Subtotal: e.Price})
			found = true
			break
		}
		if !found {
			fail(fmt.Sprintf("extra %d not found", extraID))
		}
	}
	return items, receiptItems
}

// currentSessionRef resolves the open till session id for a sale. Only
// "no open session" reads as absence; any other lookup failure is
// returned to the caller.
func currentSessionRef(ctx context.Context, closingService closing.Service) (*int64, error) {
	session, err := closingService.CurrentSession(ctx)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &session.ID, nil
}

// paymentMismatchWarning builds the operator warning emitted when the
// settled amount differs from the sale total. Underpaid sales are legal
// and still commit.
func paymentMismatchWarning(paid, total int64) (string, bool) {
	if paid == total {
		return "", false
	}
	return fmt.Sprintf("payments (%d) do not match total (%d)", paid, total), true
}

// parsePayments parses comma-separated "METHOD:amount" settlement splits.
func parsePayments(arg string) []sales.PaymentInput {
	if arg == "" {
		return nil
	}

	var payments []sales.PaymentInput
	for _, entry := range strings.Split(arg, ",") {
		parts := strings.SplitN(entry, ":", 2)
		if len(parts) != 2 {
			fail("invalid -pay entry: " + entry)
		}
		method, err := enums.ParsePaymentMethod(parts[0])
		if err != nil {
			fail(err.Error())
		}
		amount, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			fail("invalid payment amount: " + parts[1])
		}
		payments = append(payments, sales.PaymentInput{Method: method, Amount: amount})
	}
	return payments
}

func fail(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}

// failErr renders service errors for the operator, prefixing the public
// message for the code and appending a retry hint when transient.
func failErr(err error) {
	if typed := pkgerrors.As(err); typed != nil {
		msg := fmt.Sprintf("%s: %s", pkgerrors.MetadataFor(typed.Code()).PublicMessage, typed.Message())
		if pkgerrors.MetadataFor(typed.Code()).Retryable {
			msg += " (retry may succeed)"
		}
		fail(msg)
	}
	fail(err.Error())
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
