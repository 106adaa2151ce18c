package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/maliwan-flora/api/internal/database"
	"github.com/maliwan-flora/api/internal/enum"
)

// PosProductStore defines the database methods needed by POS product handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type PosProductStore interface {
	ListPosProductsWithStock(ctx context.Context) ([]database.ListPosProductsWithStockRow, error)
	IncreaseStock(ctx context.Context, arg database.IncreaseStockParams) (int32, error)
	DecreaseStockClamped(ctx context.Context, arg database.DecreaseStockClampedParams) (int32, error)
	SetStock(ctx context.Context, arg database.SetStockParams) (int32, error)
}

// PosProductHandler handles POS product and stock endpoints.
type PosProductHandler struct {
	store PosProductStore
}

// NewPosProductHandler creates a new PosProductHandler.
func NewPosProductHandler(store PosProductStore) *PosProductHandler {
	return &PosProductHandler{store: store}
}

// RegisterRoutes registers POS product endpoints on the given Chi router.
// Expected to be mounted inside an authenticated subrouter: /pos
func (h *PosProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/products", h.List)
	r.Patch("/products/{id}/stock", h.AdjustStock)
}

// --- Request / Response types ---

type adjustStockRequest struct {
	Quantity int32  `json:"quantity"`
	Action   string `json:"action"`
}

type adjustStockResponse struct {
	Message   string    `json:"message"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int32     `json:"quantity"`
	Action    string    `json:"action"`
}

type posProductResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Price         string    `json:"price"`
	ImageURL      *string   `json:"image_url"`
	StockQuantity int32     `json:"stock_quantity"`
}

// --- Handlers ---

// List handles GET /pos/products. Products with no stock row report zero.
func (h *PosProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.ListPosProductsWithStock(r.Context())
	if err != nil {
		log.Printf("ERROR: list pos products: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]posProductResponse, 0, len(products))
	for _, p := range products {
		pr := posProductResponse{
			ID:            p.ID,
			Name:          p.Name,
			Price:         moneyString(p.Price),
			StockQuantity: p.StockQuantity,
		}
		if p.ImageUrl.Valid {
			pr.ImageURL = &p.ImageUrl.String
		}
		resp = append(resp, pr)
	}

	writeJSON(w, http.StatusOK, resp)
}

// AdjustStock handles PATCH /pos/products/{id}/stock.
// increase upserts and adds, decrease clamps at zero, set overwrites.
func (h *PosProductHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product ID"})
		return
	}

	var req adjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Quantity < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "quantity must not be negative"})
		return
	}

	var quantity int32
	switch req.Action {
	case enum.StockActionIncrease:
		quantity, err = h.store.IncreaseStock(r.Context(), database.IncreaseStockParams{
			ProductID: productID,
			Quantity:  req.Quantity,
		})
	case enum.StockActionDecrease:
		quantity, err = h.store.DecreaseStockClamped(r.Context(), database.DecreaseStockClampedParams{
			ProductID: productID,
			Quantity:  req.Quantity,
		})
	case enum.StockActionSet:
		quantity, err = h.store.SetStock(r.Context(), database.SetStockParams{
			ProductID: productID,
			Quantity:  req.Quantity,
		})
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "action must be increase, decrease, or set"})
		return
	}

	if err != nil {
		// decrease: no stock row to decrement
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no stock record for product"})
			return
		}
		// increase/set: upsert against a product that does not exist
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
			return
		}
		log.Printf("ERROR: adjust stock: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, adjustStockResponse{
		Message:   "stock updated",
		ProductID: productID,
		Quantity:  quantity,
		Action:    req.Action,
	})
}
