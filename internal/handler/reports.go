package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/maliwan-flora/api/internal/database"
)

// ReportStore defines the database methods needed by report handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type ReportStore interface {
	GetProductRevenue(ctx context.Context) ([]database.GetProductRevenueRow, error)
	GetSalesByDay(ctx context.Context) ([]database.GetSalesByDayRow, error)
}

// ReportHandler handles POS report endpoints.
type ReportHandler struct {
	store ReportStore
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(store ReportStore) *ReportHandler {
	return &ReportHandler{store: store}
}

// RegisterRoutes registers report endpoints on the given Chi router.
// Expected to be mounted inside an authenticated subrouter: /pos
func (h *ReportHandler) RegisterRoutes(r chi.Router) {
	r.Get("/reports/financial", h.Financial)
	r.Get("/reports/sales-by-day", h.SalesByDay)
}

// --- Response types ---

type productRevenueResponse struct {
	ProductID         uuid.UUID `json:"product_id"`
	ProductName       string    `json:"product_name"`
	TotalQuantitySold int64     `json:"total_quantity_sold"`
	TotalRevenue      string    `json:"total_revenue"`
}

// --- Handlers ---

// Financial handles GET /pos/reports/financial. Per-product revenue,
// highest earner first.
func (h *ReportHandler) Financial(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.GetProductRevenue(r.Context())
	if err != nil {
		log.Printf("ERROR: product revenue report: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]productRevenueResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, productRevenueResponse{
			ProductID:         row.ProductID,
			ProductName:       row.ProductName,
			TotalQuantitySold: row.TotalQuantitySold,
			TotalRevenue:      moneyString(row.TotalRevenue),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// SalesByDay handles GET /pos/reports/sales-by-day. Returns a date ×
// product quantity matrix: {"2025-09-02": {"Rose Bouquet": 3}}.
func (h *ReportHandler) SalesByDay(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.GetSalesByDay(r.Context())
	if err != nil {
		log.Printf("ERROR: sales by day report: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	matrix := make(map[string]map[string]int64)
	for _, row := range rows {
		day := row.SaleDay.Format("2006-01-02")
		if matrix[day] == nil {
			matrix[day] = make(map[string]int64)
		}
		matrix[day][row.ProductName] += row.Quantity
	}

	writeJSON(w, http.StatusOK, matrix)
}
