package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gvnatural/internal/backend"
	"gvnatural/internal/config"
	"gvnatural/internal/database"
	custommiddleware "gvnatural/internal/middleware"
	"gvnatural/internal/repository"
	"gvnatural/internal/service"
	"gvnatural/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *database.Service
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *database.Service) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.Env == "development"))
	router.Use(custommiddleware.SessionMiddleware(cfg.Session, logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		custommiddleware.RespondWithJSON(w, http.StatusOK, db.Health(ctx))
	})

	rdb := db.Client()

	// Initialize repositories. Each realm gets its own credential store;
	// clearing one never touches the other.
	cartRepo := repository.NewCartRepository(rdb, cfg.Session.TTL)
	customerCreds := repository.NewCredentialRepository(rdb, repository.RealmCustomer, cfg.Session.TTL)
	adminCreds := repository.NewCredentialRepository(rdb, repository.RealmAdmin, cfg.Session.TTL)
	// An external identity provider for the back office would install its
	// token bridge here via adminCreds.SetFallbackTokenGetter; with the
	// built-in login flow, Redis is the only token source.
	prefRepo := repository.NewPreferenceRepository(rdb, cfg.Session.TTL)

	// Initialize backend clients, one per realm. Tokens are resolved per
	// request from the session in the context; a 401 clears that realm's
	// credentials so the session is treated as logged out from then on.
	customerClient := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.RequestTimeout,
		realmTokenSource(customerCreds), logger)
	customerClient.SetUnauthorizedHook(realmUnauthorizedHook(customerCreds, logger))

	adminClient := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.RequestTimeout,
		realmTokenSource(adminCreds), logger)
	adminClient.SetUnauthorizedHook(realmUnauthorizedHook(adminCreds, logger))

	productsAPI := backend.NewProductsAPI(customerClient)
	authAPI := backend.NewAuthAPI(customerClient)
	ordersAPI := backend.NewOrdersAPI(customerClient)
	shipmentsAPI := backend.NewShipmentsAPI(customerClient)
	adminAPI := backend.NewAdminAPI(adminClient)

	// Initialize services
	cartService := service.NewCartService(cartRepo, productsAPI, logger)
	catalogService := service.NewCatalogService(productsAPI)
	authService := service.NewAuthService(authAPI, customerCreds, logger)
	orderService := service.NewOrderService(ordersAPI, shipmentsAPI, cartService, logger)
	adminService := service.NewAdminService(adminAPI, adminCreds, logger)

	// Rate limiters. OTP resends are keyed by phone so the cooldown follows
	// the account; admin login is keyed by client address.
	otpLimiter := custommiddleware.RateLimitMiddleware(rdb, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 1,
		Window:            60 * time.Second,
		KeyPrefix:         "gvn:ratelimit:otp",
	}, custommiddleware.PhoneKey, logger)

	adminLoginLimiter := custommiddleware.RateLimitMiddleware(rdb, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 10,
		Window:            time.Minute,
		KeyPrefix:         "gvn:ratelimit:admin-login",
	}, nil, logger)

	// Realm gates
	requireCustomer := custommiddleware.RequireRealm(customerCreds, logger)
	requireAdmin := custommiddleware.RequireRealm(adminCreds, logger)

	// Initialize handlers
	cartHandler := transport.NewCartHandler(cartService, logger)
	productHandler := transport.NewProductHandler(catalogService, logger)
	authHandler := transport.NewAuthHandler(authService, otpLimiter, logger)
	orderHandler := transport.NewOrderHandler(orderService, logger)
	preferenceHandler := transport.NewPreferenceHandler(prefRepo, logger)
	adminHandler := transport.NewAdminHandler(adminService, logger)

	// Register routes
	cartHandler.RegisterRoutes(router)
	productHandler.RegisterRoutes(router)
	authHandler.RegisterRoutes(router)
	orderHandler.RegisterRoutes(router, requireCustomer)
	preferenceHandler.RegisterRoutes(router)
	adminHandler.RegisterRoutes(router, requireAdmin, adminLoginLimiter)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
	}

	return server
}

// realmTokenSource resolves the bearer token for the session carried in the
// request context.
func realmTokenSource(creds *repository.CredentialRepository) backend.TokenSource {
	return func(ctx context.Context) (string, bool) {
		sid, ok := custommiddleware.GetSessionID(ctx)
		if !ok {
			return "", false
		}
		return creds.Token(ctx, sid)
	}
}

// realmUnauthorizedHook drops the realm's credentials after a backend 401.
// The session stays alive; only the realm's login state is gone.
func realmUnauthorizedHook(creds *repository.CredentialRepository, logger *zap.Logger) backend.UnauthorizedHook {
	return func(ctx context.Context) {
		sid, ok := custommiddleware.GetSessionID(ctx)
		if !ok {
			return
		}
		if err := creds.ClearAuth(ctx, sid); err != nil {
			logger.Error("Failed to clear credentials after 401",
				zap.String("realm", string(creds.Realm())),
				zap.Error(err),
			)
			return
		}
		logger.Info("Cleared credentials after backend 401",
			zap.String("realm", string(creds.Realm())),
			zap.String("session_id", sid),
		)
	}
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	// Close Redis connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
