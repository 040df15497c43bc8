// Package app provides application initialization and lifecycle management.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fabyoh/storefront/internal/catalog"
	catalogpostgres "github.com/fabyoh/storefront/internal/catalog/postgres"
	"github.com/fabyoh/storefront/internal/config"
	"github.com/fabyoh/storefront/internal/domain"
	"github.com/fabyoh/storefront/internal/identity"
	"github.com/fabyoh/storefront/internal/identity/jwt"
	identitypostgres "github.com/fabyoh/storefront/internal/identity/postgres"
	"github.com/fabyoh/storefront/internal/orders"
	orderspostgres "github.com/fabyoh/storefront/internal/orders/postgres"
	"github.com/fabyoh/storefront/internal/payment"
	paypalgw "github.com/fabyoh/storefront/internal/payment/paypal"
	stripegw "github.com/fabyoh/storefront/internal/payment/stripe"
	"github.com/fabyoh/storefront/internal/pkg/ctxlog"
	"github.com/fabyoh/storefront/internal/pkg/httputil"
	"github.com/fabyoh/storefront/internal/pkg/metrics"
	"github.com/fabyoh/storefront/internal/pkg/postgres"
	"github.com/fabyoh/storefront/internal/shopping"
	shoppingpostgres "github.com/fabyoh/storefront/internal/shopping/postgres"
	"github.com/fabyoh/storefront/internal/version"
)

// App represents the application instance.
type App struct {
	config        *config.Config
	logger        *slog.Logger
	db            *pgxpool.Pool
	server        *http.Server
	metricsServer *http.Server
	metricsCancel context.CancelFunc

	cardGateway     payment.CardGateway
	redirectGateway payment.RedirectGateway
}

// Option overrides a wiring default. Tests use these to swap provider
// gateways for fakes.
type Option func(*App)

// WithCardGateway overrides the card payment gateway.
func WithCardGateway(g payment.CardGateway) Option {
	return func(a *App) { a.cardGateway = g }
}

// WithRedirectGateway overrides the redirect payment gateway.
func WithRedirectGateway(g payment.RedirectGateway) Option {
	return func(a *App) { a.redirectGateway = g }
}

// New creates a new application instance.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	logger := initLogger(cfg.Log)

	connectCtx, connectCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer connectCancel()

	db, err := postgres.Connect(connectCtx, postgres.Config{
		URL:             cfg.Database.DSN(),
		MaxOpenConns:    int(cfg.Database.MaxConns),
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Hour,
		ConnectAttempts: 5,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	metricsCtx, metricsCancel := context.WithCancel(context.Background())

	app := &App{
		config:        cfg,
		logger:        logger,
		db:            db,
		metricsCancel: metricsCancel,
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.cardGateway == nil {
		if cfg.Stripe.SecretKey != "" {
			app.cardGateway = stripegw.New(cfg.Stripe.SecretKey)
		} else {
			slog.Warn("stripe secret key not set: card payments are disabled")
			app.cardGateway = payment.DisabledCardGateway{}
		}
	}

	if app.redirectGateway == nil {
		if cfg.PayPal.ClientID != "" {
			gw, err := paypalgw.New(cfg.PayPal.ClientID, cfg.PayPal.Secret, cfg.PayPal.Live)
			if err != nil {
				db.Close()
				metricsCancel()
				return nil, fmt.Errorf("create paypal gateway: %w", err)
			}
			app.redirectGateway = gw
		} else {
			slog.Warn("paypal client id not set: paypal payments are disabled")
			app.redirectGateway = payment.DisabledRedirectGateway{}
		}
	}

	go app.collectDBMetrics(metricsCtx)

	app.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           app.setupRouter(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	// Metrics server on separate port
	metricsRouter := chi.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.Handler())

	app.metricsServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.MetricsPort),
		Handler:           metricsRouter,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return app, nil
}

// Run starts the HTTP servers.
func (a *App) Run() error {
	go func() {
		a.logger.Info("starting metrics server",
			"host", a.config.Server.Host,
			"port", a.config.Server.MetricsPort,
		)
		if err := a.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("metrics server error", "error", err)
		}
	}()

	a.logger.Info("starting server",
		"host", a.config.Server.Host,
		"port", a.config.Server.Port,
	)

	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down servers")

	a.metricsCancel()

	var wg sync.WaitGroup
	var errs []error
	var mu sync.Mutex

	wg.Add(2)

	go func() {
		defer wg.Done()
		if err := a.server.Shutdown(ctx); err != nil {
			mu.Lock()
			errs = append(errs, fmt.Errorf("shutdown server: %w", err))
			mu.Unlock()
		}
	}()

	go func() {
		defer wg.Done()
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			mu.Lock()
			errs = append(errs, fmt.Errorf("shutdown metrics server: %w", err))
			mu.Unlock()
		}
	}()

	wg.Wait()

	a.db.Close()

	return errors.Join(errs...)
}

func (a *App) collectDBMetrics(ctx context.Context) {
	metrics.RecordDBPoolMetrics(a.db)

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			metrics.RecordDBPoolMetrics(a.db)
		case <-ctx.Done():
			return
		}
	}
}

// Router returns the HTTP handler for testing.
func (a *App) Router() http.Handler {
	return a.server.Handler
}

func (a *App) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware must be first to measure full request time
	r.Use(httputil.MetricsMiddleware)

	// CORS must be early to handle preflight requests before other middleware
	r.Use(httputil.CORSMiddleware(a.config.CORS.AllowedOrigins))
	r.Use(middleware.RequestID)
	r.Use(httputil.RequestLoggerMiddleware(a.logger))
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", a.healthzHandler)
	r.Get("/readyz", a.readyzHandler)
	r.Get("/version", a.versionHandler)

	r.Get("/api/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-yaml")
		http.ServeFile(w, r, "api/openapi/openapi.yaml")
	})

	r.Get("/docs", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <title>Storefront API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
        SwaggerUIBundle({
            url: "/api/openapi.yaml",
            dom_id: '#swagger-ui',
            presets: [SwaggerUIBundle.presets.apis, SwaggerUIBundle.SwaggerUIStandalonePreset],
            layout: "BaseLayout"
        });
    </script>
</body>
</html>`))
	})

	tokenCodec := jwt.NewCodec(jwt.Config{
		Secret:        a.config.JWT.Secret,
		TokenDuration: a.config.JWT.TokenDuration,
	})

	identityRepo := identitypostgres.NewRepository(a.db)
	identityService := identity.NewService(identityRepo, tokenCodec)
	identityHandler := identity.NewHandler(identityService)

	catalogRepo := catalogpostgres.NewRepository(a.db)
	catalogService := catalog.NewService(catalogRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	shoppingRepo := shoppingpostgres.NewRepository(a.db)
	shoppingService := shopping.NewService(shoppingRepo)
	shoppingHandler := shopping.NewHandler(shoppingService)

	ordersRepo := orderspostgres.NewRepository(a.db)
	ordersService := orders.NewService(ordersRepo, shoppingService, a.cardGateway, a.redirectGateway)
	ordersHandler := orders.NewHandler(ordersService)

	// Credential endpoints get a per-IP rate limit on top of the public group.
	r.Group(func(r chi.Router) {
		r.Use(httputil.RateLimitMiddleware(
			a.config.RateLimit.RequestsPerSecond,
			a.config.RateLimit.Burst,
			a.config.RateLimit.TTL,
		))
		identityHandler.RegisterPublicRoutes(r)
	})

	catalogHandler.RegisterPublicRoutes(r)

	r.Group(func(r chi.Router) {
		r.Use(httputil.AuthMiddleware(tokenCodec))

		identityHandler.RegisterProtectedRoutes(r)
		shoppingHandler.RegisterProtectedRoutes(r)
		ordersHandler.RegisterProtectedRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(httputil.RequireRole(domain.RoleAdmin))
			identityHandler.RegisterAdminRoutes(r)
			catalogHandler.RegisterAdminRoutes(r)
			ordersHandler.RegisterAdminRoutes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(httputil.RequireRole(domain.RoleSuperAdmin))
			identityHandler.RegisterSuperAdminRoutes(r)
		})
	})

	return r
}

func (a *App) healthzHandler(w http.ResponseWriter, _ *http.Request) {
	httputil.Text(w, http.StatusOK, "OK")
}

func (a *App) readyzHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := a.db.Ping(ctx); err != nil {
		ctxlog.FromContext(r.Context()).Error("readiness check failed", "error", err)
		httputil.Text(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	httputil.Text(w, http.StatusOK, "OK")
}

func (a *App) versionHandler(w http.ResponseWriter, _ *http.Request) {
	httputil.JSON(w, http.StatusOK, map[string]string{
		"version":    version.Version,
		"commit":     version.GitCommit,
		"build_date": version.BuildDate,
	})
}

func initLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
