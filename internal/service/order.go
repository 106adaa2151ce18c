package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/maliwan-flora/api/internal/database"
	"github.com/shopspring/decimal"
)

const maxOrderNumberRetries = 3

// Errors returned by the order service.
var (
	ErrMissingFirstName  = errors.New("first_name is required")
	ErrMissingLastName   = errors.New("last_name is required")
	ErrMissingNickname   = errors.New("nickname is required")
	ErrMissingGrade      = errors.New("grade is required")
	ErrMissingSlipImage  = errors.New("slip image is required")
	ErrEmptyItems        = errors.New("cart is required")
	ErrInvalidTotalPrice = errors.New("invalid total_price")
	ErrInvalidItemPrice  = errors.New("invalid item price")
	ErrInvalidFlowerID   = errors.New("invalid flower_id")
)

// OrderStore defines the DB methods needed to create storefront orders.
// Satisfied by *database.Queries (and its WithTx variant).
type OrderStore interface {
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	CreateOrderItem(ctx context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error)
	CreateOrderBouquetItem(ctx context.Context, arg database.CreateOrderBouquetItemParams) (database.OrderBouquetItem, error)
}

// NewOrderStore creates an OrderStore from a DBTX (pool or tx).
// This allows the service to create store instances from transactions.
type NewOrderStore func(db database.DBTX) OrderStore

// CreateOrderRequest is the validated input for creating a pre-order.
// SlipImageURL must already point at the uploaded payment slip.
type CreateOrderRequest struct {
	FirstName    string
	LastName     string
	Nickname     string
	Grade        string
	TotalPrice   string
	SlipImageURL string
	Items        []OrderItemRequest
}

// OrderItemRequest is one cart line. Custom bouquets carry no product ID
// and describe their composition in Bouquet.
type OrderItemRequest struct {
	ProductID string
	Name      string
	Price     string
	Color     string
	Wrapping  string
	CartID    string
	Bouquet   []BouquetItemRequest
}

// BouquetItemRequest is one flower inside a custom bouquet, snapshotted
// at order time.
type BouquetItemRequest struct {
	FlowerID    string
	FlowerName  string
	FlowerColor string
	FlowerPrice string
	Quantity    int32
}

// CreateOrderResult is the full created order with items.
type CreateOrderResult struct {
	Order database.Order
	Items []OrderItemResult
}

// OrderItemResult is an item with its bouquet composition.
type OrderItemResult struct {
	Item    database.OrderItem
	Bouquet []database.OrderBouquetItem
}

// OrderService handles storefront pre-order creation.
type OrderService struct {
	pool     TxBeginner
	newStore NewOrderStore
}

// NewOrderService creates a new OrderService.
func NewOrderService(pool TxBeginner, newStore NewOrderStore) *OrderService {
	return &OrderService{pool: pool, newStore: newStore}
}

// preparedItem holds a prepared order item and its bouquet rows.
type preparedItem struct {
	params  database.CreateOrderItemParams
	bouquet []database.CreateOrderBouquetItemParams
}

// CreateOrder validates the cart and creates the order, its items, and any
// bouquet compositions in one transaction. Retries up to
// maxOrderNumberRetries times on order_number unique constraint violations
// (two orders placed within the same second get the same number).
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResult, error) {
	if err := validateOrderRequest(req); err != nil {
		return nil, err
	}

	totalPrice, err := decimal.NewFromString(req.TotalPrice)
	if err != nil || totalPrice.IsNegative() {
		return nil, ErrInvalidTotalPrice
	}

	items, err := prepareItems(req.Items)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < maxOrderNumberRetries; attempt++ {
		result, err := s.createOrderTx(ctx, req, totalPrice, items)
		if err == nil {
			return result, nil
		}
		if isOrderNumberConflict(err) {
			lastErr = err
			continue
		}
		return nil, err
	}
	return nil, lastErr
}

func validateOrderRequest(req CreateOrderRequest) error {
	if req.FirstName == "" {
		return ErrMissingFirstName
	}
	if req.LastName == "" {
		return ErrMissingLastName
	}
	if req.Nickname == "" {
		return ErrMissingNickname
	}
	if req.Grade == "" {
		return ErrMissingGrade
	}
	if req.SlipImageURL == "" {
		return ErrMissingSlipImage
	}
	if len(req.Items) == 0 {
		return ErrEmptyItems
	}
	return nil
}

func prepareItems(items []OrderItemRequest) ([]preparedItem, error) {
	prepared := make([]preparedItem, 0, len(items))
	for i, item := range items {
		price, err := decimal.NewFromString(item.Price)
		if err != nil || price.IsNegative() {
			return nil, fmt.Errorf("item[%d]: %w", i, ErrInvalidItemPrice)
		}

		productID := pgtype.UUID{}
		if item.ProductID != "" {
			pid, err := uuid.Parse(item.ProductID)
			if err != nil {
				return nil, fmt.Errorf("item[%d]: %w", i, ErrInvalidProductID)
			}
			productID = pgtype.UUID{Bytes: pid, Valid: true}
		}

		color := pgtype.Text{}
		if item.Color != "" {
			color = pgtype.Text{String: item.Color, Valid: true}
		}
		wrapping := pgtype.Text{}
		if item.Wrapping != "" {
			wrapping = pgtype.Text{String: item.Wrapping, Valid: true}
		}

		var bouquet []database.CreateOrderBouquetItemParams
		for j, flower := range item.Bouquet {
			if flower.Quantity <= 0 {
				return nil, fmt.Errorf("item[%d].bouquet[%d]: %w", i, j, ErrInvalidQuantity)
			}
			flowerPrice, err := decimal.NewFromString(flower.FlowerPrice)
			if err != nil || flowerPrice.IsNegative() {
				return nil, fmt.Errorf("item[%d].bouquet[%d]: %w", i, j, ErrInvalidItemPrice)
			}
			flowerID := pgtype.UUID{}
			if flower.FlowerID != "" {
				fid, err := uuid.Parse(flower.FlowerID)
				if err != nil {
					return nil, fmt.Errorf("item[%d].bouquet[%d]: %w", i, j, ErrInvalidFlowerID)
				}
				flowerID = pgtype.UUID{Bytes: fid, Valid: true}
			}
			bouquet = append(bouquet, database.CreateOrderBouquetItemParams{
				FlowerID:    flowerID,
				FlowerName:  flower.FlowerName,
				FlowerColor: flower.FlowerColor,
				FlowerPrice: decimalToNumeric(flowerPrice),
				Quantity:    flower.Quantity,
			})
		}

		prepared = append(prepared, preparedItem{
			params: database.CreateOrderItemParams{
				ProductID:   productID,
				ProductName: item.Name,
				Price:       decimalToNumeric(price),
				Color:       color,
				Wrapping:    wrapping,
				CartID:      item.CartID,
			},
			bouquet: bouquet,
		})
	}
	return prepared, nil
}

// isOrderNumberConflict checks if the error is a unique constraint violation
// on the order number (pgconn error code 23505).
func isOrderNumberConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "orders_order_number_key"
	}
	return false
}

// newOrderNumber builds the customer-facing order number, e.g.
// MD250902143015 for an order placed 2025-09-02 14:30:15.
func newOrderNumber(t time.Time) string {
	return "MD" + t.Format("060102150405")
}

// createOrderTx executes the full order creation in a single transaction.
func (s *OrderService) createOrderTx(ctx context.Context, req CreateOrderRequest, totalPrice decimal.Decimal, items []preparedItem) (*CreateOrderResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	order, err := store.CreateOrder(ctx, database.CreateOrderParams{
		OrderNumber:  newOrderNumber(time.Now()),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Nickname:     req.Nickname,
		Grade:        req.Grade,
		TotalPrice:   decimalToNumeric(totalPrice),
		SlipImageUrl: req.SlipImageURL,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	var itemResults []OrderItemResult
	for _, pi := range items {
		pi.params.OrderID = order.ID
		item, err := store.CreateOrderItem(ctx, pi.params)
		if err != nil {
			return nil, fmt.Errorf("create order item: %w", err)
		}

		var bouquetResults []database.OrderBouquetItem
		for _, bp := range pi.bouquet {
			bp.OrderItemID = item.ID
			obi, err := store.CreateOrderBouquetItem(ctx, bp)
			if err != nil {
				return nil, fmt.Errorf("create bouquet item: %w", err)
			}
			bouquetResults = append(bouquetResults, obi)
		}

		itemResults = append(itemResults, OrderItemResult{
			Item:    item,
			Bouquet: bouquetResults,
		})
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &CreateOrderResult{
		Order: order,
		Items: itemResults,
	}, nil
}
