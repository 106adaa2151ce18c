package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/maliwan-flora/api/internal/database"
	"github.com/maliwan-flora/api/internal/service"
	"github.com/shopspring/decimal"
)

const (
	defaultSalesLimit = 20
	maxSalesLimit     = 100
)

// CheckoutServicer defines the service methods needed by POS sale handlers.
// Satisfied by *service.CheckoutService; narrow interface for testability.
type CheckoutServicer interface {
	Checkout(ctx context.Context, req service.CheckoutRequest) (*service.CheckoutResult, error)
}

// PosSaleStore defines the database methods needed by POS sale read/update handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type PosSaleStore interface {
	ListRecentPosSales(ctx context.Context, limit int32) ([]database.ListRecentPosSalesRow, error)
	UpdatePosSale(ctx context.Context, arg database.UpdatePosSaleParams) (database.PosSale, error)
	DeletePosSale(ctx context.Context, id uuid.UUID) (int64, error)
}

// PosSaleHandler handles POS checkout and sale management endpoints.
type PosSaleHandler struct {
	svc   CheckoutServicer
	store PosSaleStore
}

// NewPosSaleHandler creates a new PosSaleHandler.
func NewPosSaleHandler(svc CheckoutServicer, store PosSaleStore) *PosSaleHandler {
	return &PosSaleHandler{svc: svc, store: store}
}

// RegisterRoutes registers POS sale endpoints on the given Chi router.
// Expected to be mounted inside an authenticated subrouter: /pos
func (h *PosSaleHandler) RegisterRoutes(r chi.Router) {
	r.Post("/sales", h.Checkout)
	r.Get("/sales", h.ListRecent)
	r.Put("/sales/{id}", h.Update)
	r.Delete("/sales/{id}", h.Delete)
}

// --- Request / Response types ---

type checkoutRequest struct {
	Cart          []checkoutCartItem `json:"cart"`
	PaymentMethod string             `json:"payment_method"`
	Note          string             `json:"note"`
}

type checkoutCartItem struct {
	ID           string      `json:"id"`
	Price        json.Number `json:"price"`
	CartQuantity int32       `json:"cart_quantity"`
}

type checkoutResponse struct {
	Message string    `json:"message"`
	SaleID  uuid.UUID `json:"sale_id"`
}

type updateSaleRequest struct {
	TotalAmount   string `json:"total_amount"`
	PaymentMethod string `json:"payment_method"`
	Note          string `json:"note"`
}

type posSaleResponse struct {
	ID            uuid.UUID `json:"id"`
	SaleDate      time.Time `json:"sale_date"`
	TotalAmount   string    `json:"total_amount"`
	PaymentMethod string    `json:"payment_method"`
	Note          *string   `json:"note"`
}

type recentSaleResponse struct {
	posSaleResponse
	ProductNames string `json:"product_names"`
	Quantities   string `json:"quantities"`
}

func dbPosSaleToResponse(s database.PosSale) posSaleResponse {
	resp := posSaleResponse{
		ID:            s.ID,
		SaleDate:      s.SaleDate,
		TotalAmount:   moneyString(s.TotalAmount),
		PaymentMethod: string(s.PaymentMethod),
	}
	if s.Note.Valid {
		resp.Note = &s.Note.String
	}
	return resp
}

// --- Handlers ---

// Checkout handles POST /pos/sales, the atomic stock-checked sale.
func (h *PosSaleHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	lines := make([]service.CheckoutLine, 0, len(req.Cart))
	for _, c := range req.Cart {
		lines = append(lines, service.CheckoutLine{
			ProductID: c.ID,
			UnitPrice: c.Price.String(),
			Quantity:  c.CartQuantity,
		})
	}

	result, err := h.svc.Checkout(r.Context(), service.CheckoutRequest{
		Lines:         lines,
		PaymentMethod: req.PaymentMethod,
		Note:          req.Note,
	})
	if err != nil {
		var stockErr *service.InsufficientStockError
		if errors.As(err, &stockErr) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": stockErr.Error()})
			return
		}
		if isCheckoutValidationError(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: checkout: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, checkoutResponse{
		Message: "sale recorded",
		SaleID:  result.Sale.ID,
	})
}

// ListRecent handles GET /pos/sales?limit=. Each row carries an aggregated
// item summary (product names and quantities).
func (h *PosSaleHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	limit := int32(defaultSalesLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		limit = int32(parsed)
		if limit > maxSalesLimit {
			limit = maxSalesLimit
		}
	}

	sales, err := h.store.ListRecentPosSales(r.Context(), limit)
	if err != nil {
		log.Printf("ERROR: list recent sales: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]recentSaleResponse, 0, len(sales))
	for _, s := range sales {
		sr := recentSaleResponse{
			posSaleResponse: posSaleResponse{
				ID:            s.ID,
				SaleDate:      s.SaleDate,
				TotalAmount:   moneyString(s.TotalAmount),
				PaymentMethod: string(s.PaymentMethod),
			},
			ProductNames: s.ProductNames,
			Quantities:   s.Quantities,
		}
		if s.Note.Valid {
			sr.Note = &s.Note.String
		}
		resp = append(resp, sr)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Update handles PUT /pos/sales/{id}.
func (h *PosSaleHandler) Update(w http.ResponseWriter, r *http.Request) {
	saleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid sale ID"})
		return
	}

	var req updateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	total, err := decimal.NewFromString(req.TotalAmount)
	if err != nil || total.IsNegative() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid total_amount"})
		return
	}

	method := database.PaymentMethod(req.PaymentMethod)
	if !isValidPaymentMethod(method) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payment_method"})
		return
	}

	params := database.UpdatePosSaleParams{
		ID:            saleID,
		TotalAmount:   decimalToNumeric(total),
		PaymentMethod: method,
	}
	if req.Note != "" {
		params.Note.String = req.Note
		params.Note.Valid = true
	}

	updated, err := h.store.UpdatePosSale(r.Context(), params)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "sale not found"})
			return
		}
		log.Printf("ERROR: update sale: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, dbPosSaleToResponse(updated))
}

// Delete handles DELETE /pos/sales/{id}. Items cascade with the sale; stock
// is left untouched.
func (h *PosSaleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	saleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid sale ID"})
		return
	}

	rows, err := h.store.DeletePosSale(r.Context(), saleID)
	if err != nil {
		log.Printf("ERROR: delete sale: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if rows == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "sale not found"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "sale deleted"})
}

// --- Helpers ---

func isValidPaymentMethod(m database.PaymentMethod) bool {
	switch m {
	case database.PaymentMethodCASH, database.PaymentMethodTRANSFER, database.PaymentMethodCREDIT:
		return true
	}
	return false
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(2))
	return n
}

func isCheckoutValidationError(err error) bool {
	for _, target := range []error{
		service.ErrEmptyCart,
		service.ErrMissingPaymentMethod,
		service.ErrInvalidPaymentMethod,
		service.ErrInvalidQuantity,
		service.ErrInvalidProductID,
		service.ErrInvalidUnitPrice,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
