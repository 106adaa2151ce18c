package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maliwan-flora/api/internal/config"
	"github.com/maliwan-flora/api/internal/database"
	"github.com/maliwan-flora/api/internal/enum"
	"github.com/maliwan-flora/api/internal/handler"
	mw "github.com/maliwan-flora/api/internal/middleware"
	"github.com/maliwan-flora/api/internal/service"
	"github.com/maliwan-flora/api/internal/upload"
	"github.com/maliwan-flora/api/internal/ws"
)

// New creates a Chi router with all application routes wired up.
// Storefront routes are public; /admin requires ADMIN, /pos requires
// ADMIN or STAFF.
func New(cfg *config.Config, queries *database.Queries, pool *pgxpool.Pool, hub *ws.Hub, slips upload.Storer) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173", // SvelteKit dev server
			"https://maliwan-flora.com",
			"https://admin.maliwan-flora.com",
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(queries, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// Storefront catalog (public)
	catalogHandler := handler.NewCatalogHandler(queries)
	catalogHandler.RegisterRoutes(r)

	// Pre-orders: public create, admin management
	orderService := service.NewOrderService(pool, func(db database.DBTX) service.OrderStore {
		return database.New(db)
	})
	orderHandler := handler.NewOrderHandler(orderService, queries, slips, hub)
	orderHandler.RegisterPublicRoutes(r)

	// Locally stored payment slips are served back as static files.
	r.Handle(cfg.SlipPublicURL+"/*", http.StripPrefix(cfg.SlipPublicURL+"/",
		http.FileServer(http.Dir(cfg.SlipLocalDir))))

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	// Admin routes (ADMIN only)
	r.Route("/admin", func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))
		r.Use(mw.RequireRole(enum.UserRoleAdmin))

		orderHandler.RegisterAdminRoutes(r)

		userHandler := handler.NewUserHandler(queries)
		userHandler.RegisterRoutes(r)
	})

	// POS routes (ADMIN or STAFF)
	r.Route("/pos", func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))
		r.Use(mw.RequireRole(enum.UserRoleAdmin, enum.UserRoleStaff))

		productHandler := handler.NewPosProductHandler(queries)
		productHandler.RegisterRoutes(r)

		checkoutService := service.NewCheckoutService(pool, func(db database.DBTX) service.CheckoutStore {
			return database.New(db)
		})
		saleHandler := handler.NewPosSaleHandler(checkoutService, queries)
		saleHandler.RegisterRoutes(r)

		reportHandler := handler.NewReportHandler(queries)
		reportHandler.RegisterRoutes(r)
	})

	return r
}
