package http

import (
	"net/http"

	"librarylens/internal/delivery/http/handler"
	"librarylens/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	sectionHandler      *handler.SectionHandler
	bookHandler         *handler.BookHandler
	purchaseHandler     *handler.PurchaseHandler
	adminHandler        *handler.AdminHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	rateLimitMiddleware *middleware.RateLimitMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	sectionHandler *handler.SectionHandler,
	bookHandler *handler.BookHandler,
	purchaseHandler *handler.PurchaseHandler,
	adminHandler *handler.AdminHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		sectionHandler:      sectionHandler,
		bookHandler:         bookHandler,
		purchaseHandler:     purchaseHandler,
		adminHandler:        adminHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	api := r.router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Catalog routes (public)
	api.HandleFunc("/books", r.bookHandler.SearchBooks).Methods(http.MethodGet)
	api.HandleFunc("/books/{id:[0-9]+}", r.bookHandler.GetBook).Methods(http.MethodGet)
	api.HandleFunc("/sections", r.sectionHandler.GetAllSections).Methods(http.MethodGet)
	api.HandleFunc("/search", r.bookHandler.LiveSearch).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.Handle("/register", r.rateLimitMiddleware.Limit("register")(http.HandlerFunc(r.authHandler.Register))).Methods(http.MethodPost)
	auth.Handle("/login", r.rateLimitMiddleware.Limit("login")(http.HandlerFunc(r.authHandler.Login))).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/logout-all", r.authHandler.LogoutAll).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Purchase routes (protected)
	purchases := api.NewRoute().Subrouter()
	purchases.Use(r.authMiddleware.Authenticate)
	purchases.HandleFunc("/books/{id:[0-9]+}/purchase", r.purchaseHandler.Purchase).Methods(http.MethodPost)
	purchases.HandleFunc("/purchases/me", r.purchaseHandler.GetMyPurchases).Methods(http.MethodGet)

	// Catalog management (admin, librarian)
	catalog := api.NewRoute().Subrouter()
	catalog.Use(r.authMiddleware.Authenticate)
	catalog.Use(middleware.RequireCatalogManager)
	catalog.HandleFunc("/sections", r.sectionHandler.CreateSection).Methods(http.MethodPost)
	catalog.HandleFunc("/sections/{id:[0-9]+}", r.sectionHandler.GetSection).Methods(http.MethodGet)
	catalog.HandleFunc("/sections/{id:[0-9]+}", r.sectionHandler.UpdateSection).Methods(http.MethodPut)
	catalog.HandleFunc("/sections/{id:[0-9]+}", r.sectionHandler.DeleteSection).Methods(http.MethodDelete)
	catalog.HandleFunc("/books", r.bookHandler.CreateBook).Methods(http.MethodPost)
	catalog.HandleFunc("/books/{id:[0-9]+}", r.bookHandler.UpdateBook).Methods(http.MethodPut)
	catalog.HandleFunc("/books/{id:[0-9]+}", r.bookHandler.DeleteBook).Methods(http.MethodDelete)

	// Admin routes (protected, gated per capability)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)

	librarians := admin.NewRoute().Subrouter()
	librarians.Use(middleware.RequireLibrarianManager)
	librarians.HandleFunc("/librarians", r.adminHandler.CreateLibrarian).Methods(http.MethodPost)

	settings := admin.NewRoute().Subrouter()
	settings.Use(middleware.RequireSettingsManager)
	settings.HandleFunc("/purchase-settings", r.purchaseHandler.GetSettings).Methods(http.MethodGet)
	settings.HandleFunc("/purchase-settings", r.purchaseHandler.UpdateSettings).Methods(http.MethodPut)

	audit := admin.NewRoute().Subrouter()
	audit.Use(middleware.RequireAuditViewer)
	audit.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	audit.HandleFunc("/audit-logs/{id:[0-9]+}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
