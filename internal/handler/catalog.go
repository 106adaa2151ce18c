package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/maliwan-flora/api/internal/database"
	"github.com/shopspring/decimal"
)

// CatalogStore defines the database methods needed by catalog handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type CatalogStore interface {
	ListFreshFlowers(ctx context.Context) ([]database.FreshFlower, error)
	ListFreshFlowerColors(ctx context.Context) ([]database.FreshFlowerColor, error)
	ListPreservedFlowers(ctx context.Context) ([]database.PreservedFlower, error)
}

// CatalogHandler serves the public flower catalog.
type CatalogHandler struct {
	store CatalogStore
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(store CatalogStore) *CatalogHandler {
	return &CatalogHandler{store: store}
}

// RegisterRoutes registers catalog endpoints on the given Chi router.
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/catalog/fresh-flowers", h.ListFreshFlowers)
	r.Get("/catalog/preserved-flowers", h.ListPreservedFlowers)
}

// --- Response types ---

type freshFlowerResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Price  string    `json:"price"`
	Colors []string  `json:"colors"`
}

type preservedFlowerResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Price string    `json:"price"`
}

// --- Handlers ---

// ListFreshFlowers returns every fresh flower with its available colors.
// Colors come from a second bulk query and are grouped in memory to avoid
// one query per flower.
func (h *CatalogHandler) ListFreshFlowers(w http.ResponseWriter, r *http.Request) {
	flowers, err := h.store.ListFreshFlowers(r.Context())
	if err != nil {
		log.Printf("ERROR: list fresh flowers: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	colors, err := h.store.ListFreshFlowerColors(r.Context())
	if err != nil {
		log.Printf("ERROR: list fresh flower colors: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	colorsByFlower := make(map[uuid.UUID][]string)
	for _, c := range colors {
		colorsByFlower[c.FlowerID] = append(colorsByFlower[c.FlowerID], c.Color)
	}

	resp := make([]freshFlowerResponse, 0, len(flowers))
	for _, f := range flowers {
		resp = append(resp, freshFlowerResponse{
			ID:     f.ID,
			Name:   f.Name,
			Price:  moneyString(f.Price),
			Colors: colorsByFlower[f.ID],
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListPreservedFlowers returns every preserved flower.
func (h *CatalogHandler) ListPreservedFlowers(w http.ResponseWriter, r *http.Request) {
	flowers, err := h.store.ListPreservedFlowers(r.Context())
	if err != nil {
		log.Printf("ERROR: list preserved flowers: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]preservedFlowerResponse, 0, len(flowers))
	for _, f := range flowers {
		resp = append(resp, preservedFlowerResponse{
			ID:    f.ID,
			Name:  f.Name,
			Price: moneyString(f.Price),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// moneyString formats a numeric column with 2 decimal places for consistent
// money representation over the wire.
func moneyString(n pgtype.Numeric) string {
	if !n.Valid {
		return "0.00"
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return "0.00"
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return "0.00"
	}
	return d.StringFixed(2)
}
