package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/maliwan-flora/api/internal/database"
	"github.com/maliwan-flora/api/internal/enum"
	"github.com/shopspring/decimal"
)

// Errors returned by the checkout service.
var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrMissingPaymentMethod = errors.New("payment_method is required")
	ErrInvalidPaymentMethod = errors.New("invalid payment_method")
	ErrInvalidQuantity      = errors.New("cart_quantity must be > 0")
	ErrInvalidProductID     = errors.New("invalid product id")
	ErrInvalidUnitPrice     = errors.New("invalid unit price")
)

// InsufficientStockError reports the first product whose requested quantity,
// summed across all of its cart lines, exceeds the quantity on hand. The
// enclosing transaction is rolled back, so no sale row exists and no stock
// was touched when this is returned.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Requested int32
	Available int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// CheckoutStore defines the DB methods needed to record a POS sale.
// Satisfied by *database.Queries (and its WithTx variant).
type CheckoutStore interface {
	GetStockForUpdate(ctx context.Context, productID uuid.UUID) (int32, error)
	CreatePosSale(ctx context.Context, arg database.CreatePosSaleParams) (database.PosSale, error)
	CreatePosSaleItem(ctx context.Context, arg database.CreatePosSaleItemParams) (database.PosSaleItem, error)
	DecrementStock(ctx context.Context, arg database.DecrementStockParams) (int64, error)
}

// NewCheckoutStore creates a CheckoutStore from a DBTX (pool or tx).
// This allows the service to create store instances from transactions.
type NewCheckoutStore func(db database.DBTX) CheckoutStore

// CheckoutRequest is the proposed cart for one POS checkout.
type CheckoutRequest struct {
	Lines         []CheckoutLine
	PaymentMethod string
	Note          string
}

// CheckoutLine is a single product line in the cart.
type CheckoutLine struct {
	ProductID string
	UnitPrice string
	Quantity  int32
}

// CheckoutResult is the recorded sale with its line items.
type CheckoutResult struct {
	Sale  database.PosSale
	Items []database.PosSaleItem
}

// CheckoutService handles the POS checkout transaction.
type CheckoutService struct {
	pool     TxBeginner
	newStore NewCheckoutStore
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(pool TxBeginner, newStore NewCheckoutStore) *CheckoutService {
	return &CheckoutService{pool: pool, newStore: newStore}
}

// checkoutLine is a validated cart line with parsed types.
type checkoutLine struct {
	productID uuid.UUID
	unitPrice decimal.Decimal
	quantity  int32
}

// Checkout atomically verifies stock for every cart line, records one sale
// with its line items, and decrements stock. If any line is short the whole
// transaction rolls back and nothing is persisted.
//
// A successful checkout is not idempotent: resubmitting the same cart creates
// a second, independent sale.
func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	// --- Validate before touching the database ---
	if len(req.Lines) == 0 {
		return nil, ErrEmptyCart
	}
	if req.PaymentMethod == "" {
		return nil, ErrMissingPaymentMethod
	}
	if !isValidPaymentMethod(req.PaymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}

	lines := make([]checkoutLine, len(req.Lines))
	total := decimal.Zero
	for i, l := range req.Lines {
		if l.Quantity <= 0 {
			return nil, fmt.Errorf("cart[%d]: %w", i, ErrInvalidQuantity)
		}
		productID, err := uuid.Parse(l.ProductID)
		if err != nil {
			return nil, fmt.Errorf("cart[%d]: %w", i, ErrInvalidProductID)
		}
		price, err := decimal.NewFromString(l.UnitPrice)
		if err != nil || price.IsNegative() {
			return nil, fmt.Errorf("cart[%d]: %w", i, ErrInvalidUnitPrice)
		}
		lines[i] = checkoutLine{productID: productID, unitPrice: price, quantity: l.Quantity}
		total = total.Add(price.Mul(decimal.NewFromInt32(l.Quantity)))
	}

	// Lock stock rows in ascending product ID order. Locking in cart order
	// can deadlock when two multi-line carts overlap in reverse.
	sort.Slice(lines, func(i, j int) bool {
		return bytes.Compare(lines[i].productID[:], lines[j].productID[:]) < 0
	})

	return s.checkoutTx(ctx, lines, total, req)
}

// checkoutTx executes the full checkout in a single transaction.
func (s *CheckoutService) checkoutTx(ctx context.Context, lines []checkoutLine, total decimal.Decimal, req CheckoutRequest) (*CheckoutResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	// --- Verify stock for every product under row locks ---
	// A product may appear on several cart lines; stock is checked against
	// the combined quantity. Lines are sorted, so duplicates are adjacent
	// and each row is locked exactly once.
	required := make(map[uuid.UUID]int32, len(lines))
	for _, line := range lines {
		required[line.productID] += line.quantity
	}
	for i, line := range lines {
		if i > 0 && line.productID == lines[i-1].productID {
			continue
		}
		available, err := store.GetStockForUpdate(ctx, line.productID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// No stock row means nothing was ever put on hand.
				available = 0
			} else {
				return nil, fmt.Errorf("lock stock: %w", err)
			}
		}
		if need := required[line.productID]; available < need {
			return nil, &InsufficientStockError{
				ProductID: line.productID,
				Requested: need,
				Available: available,
			}
		}
	}

	// --- Record the sale ---
	note := pgtype.Text{}
	if req.Note != "" {
		note = pgtype.Text{String: req.Note, Valid: true}
	}

	sale, err := store.CreatePosSale(ctx, database.CreatePosSaleParams{
		TotalAmount:   decimalToNumeric(total),
		PaymentMethod: database.PaymentMethod(req.PaymentMethod),
		Note:          note,
	})
	if err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}

	items := make([]database.PosSaleItem, len(lines))
	for i, line := range lines {
		subtotal := line.unitPrice.Mul(decimal.NewFromInt32(line.quantity))
		item, err := store.CreatePosSaleItem(ctx, database.CreatePosSaleItemParams{
			SaleID:    sale.ID,
			ProductID: line.productID,
			Quantity:  line.quantity,
			UnitPrice: decimalToNumeric(line.unitPrice),
			Subtotal:  decimalToNumeric(subtotal),
		})
		if err != nil {
			return nil, fmt.Errorf("create sale item: %w", err)
		}
		items[i] = item

		rows, err := store.DecrementStock(ctx, database.DecrementStockParams{
			Quantity:  line.quantity,
			ProductID: line.productID,
		})
		if err != nil {
			return nil, fmt.Errorf("decrement stock: %w", err)
		}
		if rows == 0 {
			// The row was locked above, so it cannot have disappeared.
			return nil, fmt.Errorf("decrement stock: no row for product %s", line.productID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &CheckoutResult{Sale: sale, Items: items}, nil
}

// --- Helpers ---

func isValidPaymentMethod(s string) bool {
	switch s {
	case enum.PaymentMethodCash, enum.PaymentMethodTransfer, enum.PaymentMethodCredit:
		return true
	}
	return false
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(2))
	return n
}
