package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/maliwan-flora/api/internal/database"
	"github.com/maliwan-flora/api/internal/handler"
	"github.com/maliwan-flora/api/internal/service"
)

type fakeCheckoutService struct {
	lastReq service.CheckoutRequest
	result  *service.CheckoutResult
	err     error
}

func (f *fakeCheckoutService) Checkout(_ context.Context, req service.CheckoutRequest) (*service.CheckoutResult, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &service.CheckoutResult{Sale: database.PosSale{ID: uuid.New()}}, nil
}

type mockSaleStore struct {
	recent    []database.ListRecentPosSalesRow
	lastLimit int32
	sales     map[uuid.UUID]database.PosSale
}

func newMockSaleStore() *mockSaleStore {
	return &mockSaleStore{sales: make(map[uuid.UUID]database.PosSale)}
}

func (m *mockSaleStore) ListRecentPosSales(_ context.Context, limit int32) ([]database.ListRecentPosSalesRow, error) {
	m.lastLimit = limit
	return m.recent, nil
}

func (m *mockSaleStore) UpdatePosSale(_ context.Context, arg database.UpdatePosSaleParams) (database.PosSale, error) {
	s, ok := m.sales[arg.ID]
	if !ok {
		return database.PosSale{}, pgx.ErrNoRows
	}
	s.TotalAmount = arg.TotalAmount
	s.PaymentMethod = arg.PaymentMethod
	s.Note = arg.Note
	m.sales[arg.ID] = s
	return s, nil
}

func (m *mockSaleStore) DeletePosSale(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := m.sales[id]; !ok {
		return 0, nil
	}
	delete(m.sales, id)
	return 1, nil
}

type saleFixture struct {
	svc    *fakeCheckoutService
	store  *mockSaleStore
	router *chi.Mux
}

func newSaleFixture() *saleFixture {
	f := &saleFixture{
		svc:   &fakeCheckoutService{},
		store: newMockSaleStore(),
	}
	h := handler.NewPosSaleHandler(f.svc, f.store)
	f.router = chi.NewRouter()
	f.router.Route("/pos", h.RegisterRoutes)
	return f
}

// --- Checkout tests ---

func TestCheckoutEndpoint_Success(t *testing.T) {
	f := newSaleFixture()
	saleID := uuid.New()
	f.svc.result = &service.CheckoutResult{Sale: database.PosSale{ID: saleID}}

	rr := postJSON(t, f.router, "/pos/sales", map[string]interface{}{
		"cart": []map[string]interface{}{
			{"id": uuid.NewString(), "price": 40, "cart_quantity": 2},
			{"id": uuid.NewString(), "price": "25.50", "cart_quantity": 1},
		},
		"payment_method": "CASH",
		"note":           "walk-in",
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}

	resp := decodeResponse(t, rr)
	if resp["sale_id"] != saleID.String() {
		t.Errorf("sale_id: got %v", resp["sale_id"])
	}

	if len(f.svc.lastReq.Lines) != 2 {
		t.Fatalf("lines: got %d", len(f.svc.lastReq.Lines))
	}
	if f.svc.lastReq.Lines[0].UnitPrice != "40" || f.svc.lastReq.Lines[1].UnitPrice != "25.50" {
		t.Errorf("prices: got %+v", f.svc.lastReq.Lines)
	}
	if f.svc.lastReq.Note != "walk-in" {
		t.Errorf("note: got %q", f.svc.lastReq.Note)
	}
}

func TestCheckoutEndpoint_InsufficientStock(t *testing.T) {
	f := newSaleFixture()
	productID := uuid.New()
	f.svc.err = &service.InsufficientStockError{ProductID: productID, Requested: 3, Available: 1}

	rr := postJSON(t, f.router, "/pos/sales", map[string]interface{}{
		"cart":           []map[string]interface{}{{"id": productID.String(), "price": 40, "cart_quantity": 3}},
		"payment_method": "CASH",
	})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
	resp := decodeResponse(t, rr)
	if resp["error"] == nil || resp["error"] == "" {
		t.Error("expected error naming the product")
	}
}

func TestCheckoutEndpoint_ValidationError(t *testing.T) {
	f := newSaleFixture()
	f.svc.err = service.ErrEmptyCart

	rr := postJSON(t, f.router, "/pos/sales", map[string]interface{}{
		"cart":           []map[string]interface{}{},
		"payment_method": "CASH",
	})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestCheckoutEndpoint_InternalError(t *testing.T) {
	f := newSaleFixture()
	f.svc.err = pgx.ErrTxClosed

	rr := postJSON(t, f.router, "/pos/sales", map[string]interface{}{
		"cart":           []map[string]interface{}{{"id": uuid.NewString(), "price": 40, "cart_quantity": 1}},
		"payment_method": "CASH",
	})
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}

// --- ListRecent tests ---

func TestListRecentSales(t *testing.T) {
	f := newSaleFixture()
	f.store.recent = []database.ListRecentPosSalesRow{
		{
			ID:            uuid.New(),
			SaleDate:      time.Now(),
			TotalAmount:   makeNumeric(t, "105.50"),
			PaymentMethod: database.PaymentMethodCASH,
			ProductNames:  "Rose Bouquet, Tulip Bundle",
			Quantities:    "2, 1",
		},
	}

	rr := getJSON(t, f.router, "/pos/sales")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if f.store.lastLimit != 20 {
		t.Errorf("default limit: got %d, want 20", f.store.lastLimit)
	}

	var resp []map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("sales: got %d", len(resp))
	}
	if resp[0]["total_amount"] != "105.50" {
		t.Errorf("total: got %v", resp[0]["total_amount"])
	}
	if resp[0]["product_names"] != "Rose Bouquet, Tulip Bundle" {
		t.Errorf("product names: got %v", resp[0]["product_names"])
	}
}

func TestListRecentSales_LimitCapped(t *testing.T) {
	f := newSaleFixture()

	rr := getJSON(t, f.router, "/pos/sales?limit=500")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if f.store.lastLimit != 100 {
		t.Errorf("limit: got %d, want 100", f.store.lastLimit)
	}
}

func TestListRecentSales_InvalidLimit(t *testing.T) {
	f := newSaleFixture()

	for _, raw := range []string{"abc", "0", "-5"} {
		rr := getJSON(t, f.router, "/pos/sales?limit="+raw)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("limit %q: got %d, want %d", raw, rr.Code, http.StatusBadRequest)
		}
	}
}

// --- Update / Delete tests ---

func TestUpdateSale(t *testing.T) {
	f := newSaleFixture()
	saleID := uuid.New()
	f.store.sales[saleID] = database.PosSale{ID: saleID, PaymentMethod: database.PaymentMethodCASH}

	req := httptest.NewRequest("PUT", "/pos/sales/"+saleID.String(),
		jsonBody(t, map[string]string{"total_amount": "80.00", "payment_method": "TRANSFER", "note": "corrected"}))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}
	resp := decodeResponse(t, rr)
	if resp["total_amount"] != "80.00" || resp["payment_method"] != "TRANSFER" {
		t.Errorf("response: got %+v", resp)
	}
}

func TestUpdateSale_NotFound(t *testing.T) {
	f := newSaleFixture()

	req := httptest.NewRequest("PUT", "/pos/sales/"+uuid.NewString(),
		jsonBody(t, map[string]string{"total_amount": "80.00", "payment_method": "CASH"}))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestUpdateSale_BadInput(t *testing.T) {
	f := newSaleFixture()
	saleID := uuid.New()
	f.store.sales[saleID] = database.PosSale{ID: saleID}

	tests := []map[string]string{
		{"total_amount": "abc", "payment_method": "CASH"},
		{"total_amount": "-5", "payment_method": "CASH"},
		{"total_amount": "10.00", "payment_method": "BARTER"},
	}
	for _, body := range tests {
		req := httptest.NewRequest("PUT", "/pos/sales/"+saleID.String(), jsonBody(t, body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		f.router.ServeHTTP(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("body %v: got %d, want %d", body, rr.Code, http.StatusBadRequest)
		}
	}
}

func TestDeleteSale(t *testing.T) {
	f := newSaleFixture()
	saleID := uuid.New()
	f.store.sales[saleID] = database.PosSale{ID: saleID}

	req := httptest.NewRequest("DELETE", "/pos/sales/"+saleID.String(), nil)
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if _, exists := f.store.sales[saleID]; exists {
		t.Error("sale not deleted")
	}
}

func TestDeleteSale_NotFound(t *testing.T) {
	f := newSaleFixture()

	req := httptest.NewRequest("DELETE", "/pos/sales/"+uuid.NewString(), nil)
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}
