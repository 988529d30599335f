package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/JohananOppongAmoateng/speg-admin-gateway/internal/backend"
	"github.com/JohananOppongAmoateng/speg-admin-gateway/internal/config"
	"github.com/JohananOppongAmoateng/speg-admin-gateway/internal/notify"
	"github.com/JohananOppongAmoateng/speg-admin-gateway/internal/pending"
	"github.com/JohananOppongAmoateng/speg-admin-gateway/internal/prefs"
	"github.com/JohananOppongAmoateng/speg-admin-gateway/internal/rates"
	"github.com/JohananOppongAmoateng/speg-admin-gateway/internal/store"
	"github.com/JohananOppongAmoateng/speg-admin-gateway/internal/workflow"
	"github.com/JohananOppongAmoateng/speg-admin-gateway/pkg/logger"
)

type Server struct {
	config     *config.Config
	logger     logger.Logger
	router     *mux.Router
	httpServer *http.Server

	backend       *backend.Client
	products      *store.ProductStore
	engine        *workflow.Engine
	ratePoller    *rates.Poller
	pendingPoller *pending.Poller
	prefs         *prefs.Store
	notifications *notify.Recorder
}

// NewServer wires the gateway: backend client, product store, approval
// workflow engine, pollers and preference store behind one router.
func NewServer(cfg *config.Config, l logger.Logger) (*Server, error) {
	r := mux.NewRouter()

	client, err := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, l)

	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}

	prefStore, err := prefs.Open(cfg.Prefs.DBPath, l)

	if err != nil {
		return nil, fmt.Errorf("failed to open preference store: %w", err)
	}

	notifications := notify.NewRecorder(notify.NewLogNotifier(l), 100)

	server := &Server{
		config:        cfg,
		logger:        l,
		router:        r,
		backend:       client,
		products:      store.NewProductStore(client, notifications, l),
		engine:        workflow.NewEngine(client, notifications, l),
		ratePoller:    rates.NewPoller(cfg.Rates.URL, cfg.Rates.PollInterval, cfg.Rates.FallbackRate, l),
		pendingPoller: pending.NewPoller(client, cfg.PendingPollInterval, l),
		prefs:         prefStore,
		notifications: notifications,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      r,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	server.setupRoutes()

	server.ratePoller.Start()
	server.pendingPoller.Start()

	return server, nil
}

// Start starts the HTTP server
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server and cancels the background
// pollers so no work leaks past teardown
func (s *Server) Shutdown(ctx context.Context) error {
	s.ratePoller.Stop()
	s.pendingPoller.Stop()

	if err := s.prefs.Close(); err != nil {
		s.logger.Error("Error closing preference store", "error", err)
	}

	return s.httpServer.Shutdown(ctx)
}

// setupRoutes configures all the routes for the gateway
func (s *Server) setupRoutes() {
	s.router.Use(s.loggingMiddleware)

	api := s.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", s.healthCheckHandler).Methods(http.MethodGet)

	// Catalog and stock
	api.HandleFunc("/products", s.getProductsHandler).Methods(http.MethodGet)
	api.HandleFunc("/products", s.addProductHandler).Methods(http.MethodPost)
	api.HandleFunc("/products/{id}", s.getProductHandler).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", s.updateProductHandler).Methods(http.MethodPatch)
	api.HandleFunc("/products/{id}", s.deleteProductHandler).Methods(http.MethodDelete)
	api.HandleFunc("/products/{id}/issue", s.issueProductHandler).Methods(http.MethodPost)
	api.HandleFunc("/products/{id}/restock", s.restockProductHandler).Methods(http.MethodPost)

	// Orders and the approval workflow
	api.HandleFunc("/orders", s.getOrdersHandler).Methods(http.MethodGet)
	api.HandleFunc("/orders/pending-count", s.pendingCountHandler).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}", s.getOrderHandler).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}/lines", s.saveOrderLinesHandler).Methods(http.MethodPatch)
	api.HandleFunc("/orders/{id}/approve", s.approveOrderHandler).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id}/reject", s.rejectOrderHandler).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id}/payment", s.updatePaymentHandler).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id}/pickup", s.updatePickupHandler).Methods(http.MethodPost)
	api.HandleFunc("/approvals/{runId}", s.approvalProgressHandler).Methods(http.MethodGet)

	// Invoices
	api.HandleFunc("/invoices/{id}/pdf-url", s.invoicePDFHandler).Methods(http.MethodGet)

	// Accounts
	api.HandleFunc("/auth/login", s.loginHandler).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", s.logoutHandler).Methods(http.MethodPost)
	api.HandleFunc("/auth/signup", s.signupHandler).Methods(http.MethodPost)
	api.HandleFunc("/auth/reset-password", s.resetPasswordHandler).Methods(http.MethodPost)
	api.HandleFunc("/auth/session", s.sessionHandler).Methods(http.MethodGet)
	api.HandleFunc("/users", s.getUsersHandler).Methods(http.MethodGet)
	api.HandleFunc("/users/profile", s.profileHandler).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}/verify", s.verifyUserHandler).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}", s.deleteUserHandler).Methods(http.MethodDelete)

	// Session-local state
	api.HandleFunc("/dashboard", s.dashboardHandler).Methods(http.MethodGet)
	api.HandleFunc("/rates/eur-ghs", s.rateHandler).Methods(http.MethodGet)
	api.HandleFunc("/preferences", s.getPreferencesHandler).Methods(http.MethodGet)
	api.HandleFunc("/preferences", s.setPreferencesHandler).Methods(http.MethodPut)
	api.HandleFunc("/notifications", s.notificationsHandler).Methods(http.MethodGet)
}

// Middleware for logging requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		s.logger.Info("Request processed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
			"remoteAddr", r.RemoteAddr,
		)
	})
}
