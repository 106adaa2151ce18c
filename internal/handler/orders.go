package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/maliwan-flora/api/internal/database"
	"github.com/maliwan-flora/api/internal/service"
	"github.com/maliwan-flora/api/internal/upload"
	"github.com/maliwan-flora/api/internal/ws"
)

// maxSlipSize caps payment slip uploads at 10 MB.
const maxSlipSize = 10 << 20

// OrderServicer defines the service methods needed by order handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderServicer interface {
	CreateOrder(ctx context.Context, req service.CreateOrderRequest) (*service.CreateOrderResult, error)
}

// OrderStore defines the database methods needed by order read/update handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type OrderStore interface {
	GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
	ListOrders(ctx context.Context) ([]database.Order, error)
	ListAllOrderItems(ctx context.Context) ([]database.OrderItem, error)
	ListAllOrderBouquetItems(ctx context.Context) ([]database.OrderBouquetItem, error)
	UpdateOrderStatus(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error)
}

// Broadcaster pushes order events to connected dashboard clients.
// Satisfied by *ws.Hub.
type Broadcaster interface {
	Broadcast(event ws.Event)
}

// OrderHandler handles storefront and admin order endpoints.
type OrderHandler struct {
	svc   OrderServicer
	store OrderStore
	slips upload.Storer
	hub   Broadcaster
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc OrderServicer, store OrderStore, slips upload.Storer, hub Broadcaster) *OrderHandler {
	return &OrderHandler{svc: svc, store: store, slips: slips, hub: hub}
}

// RegisterPublicRoutes registers the storefront order endpoint.
func (h *OrderHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/orders", h.Create)
}

// RegisterAdminRoutes registers admin order endpoints. Expected to be
// mounted inside an authenticated subrouter: /admin
func (h *OrderHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/orders", h.List)
	r.Patch("/orders/{id}/status", h.UpdateStatus)
}

// --- Request / Response types ---

// cartItem mirrors the storefront cart JSON. Prices arrive as JSON numbers
// or strings depending on the client, so json.Number accepts both.
type cartItem struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Price    json.Number       `json:"price"`
	Color    string            `json:"color"`
	Wrapping string            `json:"wrapping"`
	CartID   string            `json:"cart_id"`
	Bouquet  []cartBouquetItem `json:"bouquet"`
}

type cartBouquetItem struct {
	FlowerID    string      `json:"flower_id"`
	FlowerName  string      `json:"flower_name"`
	FlowerColor string      `json:"flower_color"`
	FlowerPrice json.Number `json:"flower_price"`
	Quantity    int32       `json:"quantity"`
}

type createOrderResponse struct {
	Message      string    `json:"message"`
	OrderNumber  string    `json:"order_number"`
	OrderID      uuid.UUID `json:"order_id"`
	SlipImageURL string    `json:"slip_image_url"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type orderResponse struct {
	ID           uuid.UUID           `json:"id"`
	OrderNumber  string              `json:"order_number"`
	FirstName    string              `json:"first_name"`
	LastName     string              `json:"last_name"`
	Nickname     string              `json:"nickname"`
	Grade        string              `json:"grade"`
	TotalPrice   string              `json:"total_price"`
	SlipImageURL string              `json:"slip_image_url"`
	Status       string              `json:"status"`
	OrderDate    time.Time           `json:"order_date"`
	Items        []orderItemResponse `json:"items"`
}

type orderItemResponse struct {
	ID          uuid.UUID             `json:"id"`
	ProductID   *uuid.UUID            `json:"product_id"`
	ProductName string                `json:"product_name"`
	Price       string                `json:"price"`
	Color       *string               `json:"color"`
	Wrapping    *string               `json:"wrapping"`
	CartID      string                `json:"cart_id"`
	Bouquet     []bouquetItemResponse `json:"bouquet"`
}

type bouquetItemResponse struct {
	FlowerID    *uuid.UUID `json:"flower_id"`
	FlowerName  string     `json:"flower_name"`
	FlowerColor string     `json:"flower_color"`
	FlowerPrice string     `json:"flower_price"`
	Quantity    int32      `json:"quantity"`
}

func dbOrderToResponse(o database.Order) orderResponse {
	return orderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		FirstName:    o.FirstName,
		LastName:     o.LastName,
		Nickname:     o.Nickname,
		Grade:        o.Grade,
		TotalPrice:   moneyString(o.TotalPrice),
		SlipImageURL: o.SlipImageUrl,
		Status:       string(o.Status),
		OrderDate:    o.OrderDate,
		Items:        []orderItemResponse{},
	}
}

func dbOrderItemToResponse(item database.OrderItem, bouquet []database.OrderBouquetItem) orderItemResponse {
	resp := orderItemResponse{
		ID:          item.ID,
		ProductName: item.ProductName,
		Price:       moneyString(item.Price),
		CartID:      item.CartID,
		Bouquet:     []bouquetItemResponse{},
	}
	if item.ProductID.Valid {
		id := uuid.UUID(item.ProductID.Bytes)
		resp.ProductID = &id
	}
	if item.Color.Valid {
		resp.Color = &item.Color.String
	}
	if item.Wrapping.Valid {
		resp.Wrapping = &item.Wrapping.String
	}
	for _, b := range bouquet {
		br := bouquetItemResponse{
			FlowerName:  b.FlowerName,
			FlowerColor: b.FlowerColor,
			FlowerPrice: moneyString(b.FlowerPrice),
			Quantity:    b.Quantity,
		}
		if b.FlowerID.Valid {
			id := uuid.UUID(b.FlowerID.Bytes)
			br.FlowerID = &id
		}
		resp.Bouquet = append(resp.Bouquet, br)
	}
	return resp
}

// --- Handlers ---

// Create handles POST /orders, the public storefront pre-order form.
// Multipart fields: first_name, last_name, nickname, grade, total_price,
// cart (JSON array), slip_image (file).
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSlipSize+1<<20)
	if err := r.ParseMultipartForm(maxSlipSize); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("slip_image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "slip_image is required"})
		return
	}
	defer file.Close()

	if header.Size > maxSlipSize {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "slip image exceeds 10MB"})
		return
	}

	contentType, err := detectImageType(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "slip image must be jpeg, png, or webp"})
		return
	}

	var cart []cartItem
	if err := json.Unmarshal([]byte(r.FormValue("cart")), &cart); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid cart"})
		return
	}

	slipURL, err := h.slips.Store(r.Context(), header.Filename, contentType, file)
	if err != nil {
		log.Printf("ERROR: store slip image: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to store slip image"})
		return
	}

	items := make([]service.OrderItemRequest, 0, len(cart))
	for _, c := range cart {
		item := service.OrderItemRequest{
			ProductID: c.ID,
			Name:      c.Name,
			Price:     c.Price.String(),
			Color:     c.Color,
			Wrapping:  c.Wrapping,
			CartID:    c.CartID,
		}
		for _, b := range c.Bouquet {
			item.Bouquet = append(item.Bouquet, service.BouquetItemRequest{
				FlowerID:    b.FlowerID,
				FlowerName:  b.FlowerName,
				FlowerColor: b.FlowerColor,
				FlowerPrice: b.FlowerPrice.String(),
				Quantity:    b.Quantity,
			})
		}
		items = append(items, item)
	}

	result, err := h.svc.CreateOrder(r.Context(), service.CreateOrderRequest{
		FirstName:    r.FormValue("first_name"),
		LastName:     r.FormValue("last_name"),
		Nickname:     r.FormValue("nickname"),
		Grade:        r.FormValue("grade"),
		TotalPrice:   r.FormValue("total_price"),
		SlipImageURL: slipURL,
		Items:        items,
	})
	if err != nil {
		if isOrderValidationError(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: create order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.hub.Broadcast(ws.NewEvent("order.created", map[string]string{
		"order_id":     result.Order.ID.String(),
		"order_number": result.Order.OrderNumber,
		"nickname":     result.Order.Nickname,
		"grade":        result.Order.Grade,
		"total_price":  moneyString(result.Order.TotalPrice),
	}))

	writeJSON(w, http.StatusCreated, createOrderResponse{
		Message:      "order received",
		OrderNumber:  result.Order.OrderNumber,
		OrderID:      result.Order.ID,
		SlipImageURL: result.Order.SlipImageUrl,
	})
}

// List handles GET /admin/orders. Orders come back newest first; items and
// bouquet rows are fetched with two bulk queries and grouped in memory to
// avoid one query per order.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.ListOrders(r.Context())
	if err != nil {
		log.Printf("ERROR: list orders: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	items, err := h.store.ListAllOrderItems(r.Context())
	if err != nil {
		log.Printf("ERROR: list order items: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	bouquetItems, err := h.store.ListAllOrderBouquetItems(r.Context())
	if err != nil {
		log.Printf("ERROR: list bouquet items: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	bouquetByItem := make(map[uuid.UUID][]database.OrderBouquetItem)
	for _, b := range bouquetItems {
		bouquetByItem[b.OrderItemID] = append(bouquetByItem[b.OrderItemID], b)
	}

	itemsByOrder := make(map[uuid.UUID][]orderItemResponse)
	for _, item := range items {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], dbOrderItemToResponse(item, bouquetByItem[item.ID]))
	}

	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		or := dbOrderToResponse(o)
		if grouped := itemsByOrder[o.ID]; grouped != nil {
			or.Items = grouped
		}
		resp = append(resp, or)
	}

	writeJSON(w, http.StatusOK, resp)
}

// UpdateStatus handles PATCH /admin/orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Status == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status is required"})
		return
	}

	newStatus := database.OrderStatus(req.Status)
	if !isValidOrderStatus(newStatus) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		return
	}

	// Fetch current order to validate transition
	current, err := h.store.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: get order for status update: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if err := validateStatusTransition(current.Status, newStatus); err != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}

	updated, err := h.store.UpdateOrderStatus(r.Context(), database.UpdateOrderStatusParams{
		ID:       orderID,
		Status:   newStatus,
		Status_2: current.Status,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// If no rows were updated, the status changed between our read and write (race condition)
			writeJSON(w, http.StatusConflict, map[string]string{"error": "order status changed, please retry"})
			return
		}
		log.Printf("ERROR: update order status: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.hub.Broadcast(ws.NewEvent("order.status_updated", map[string]string{
		"order_id":     updated.ID.String(),
		"order_number": updated.OrderNumber,
		"status":       string(updated.Status),
	}))

	writeJSON(w, http.StatusOK, dbOrderToResponse(updated))
}

// --- Helpers ---

// allowedTransitions defines valid status transitions.
// Key is current status, value is the set of statuses it can transition to.
var allowedTransitions = map[database.OrderStatus][]database.OrderStatus{
	database.OrderStatusPENDING:   {database.OrderStatusCONFIRMED, database.OrderStatusCANCELLED},
	database.OrderStatusCONFIRMED: {database.OrderStatusCOMPLETED, database.OrderStatusCANCELLED},
}

// validateStatusTransition checks if the transition from current to next is allowed.
func validateStatusTransition(current, next database.OrderStatus) error {
	allowed, ok := allowedTransitions[current]
	if !ok {
		return fmt.Errorf("cannot transition from %s", current)
	}
	for _, s := range allowed {
		if s == next {
			return nil
		}
	}
	return fmt.Errorf("cannot transition from %s to %s", current, next)
}

func isValidOrderStatus(s database.OrderStatus) bool {
	switch s {
	case database.OrderStatusPENDING, database.OrderStatusCONFIRMED,
		database.OrderStatusCOMPLETED, database.OrderStatusCANCELLED:
		return true
	}
	return false
}

// detectImageType sniffs the file content and rewinds the reader.
// Only jpeg, png, and webp slips are accepted.
func detectImageType(file io.ReadSeeker) (string, error) {
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	contentType := http.DetectContentType(buf[:n])
	switch contentType {
	case "image/jpeg", "image/png", "image/webp":
		return contentType, nil
	}
	return "", fmt.Errorf("unsupported image type %s", contentType)
}

func isOrderValidationError(err error) bool {
	for _, target := range []error{
		service.ErrMissingFirstName,
		service.ErrMissingLastName,
		service.ErrMissingNickname,
		service.ErrMissingGrade,
		service.ErrMissingSlipImage,
		service.ErrEmptyItems,
		service.ErrInvalidTotalPrice,
		service.ErrInvalidItemPrice,
		service.ErrInvalidFlowerID,
		service.ErrInvalidProductID,
		service.ErrInvalidQuantity,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
