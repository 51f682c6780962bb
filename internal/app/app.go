package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/avetkin/scooter-rental/internal/config"
	"github.com/avetkin/scooter-rental/internal/handler"
	"github.com/avetkin/scooter-rental/internal/repository"
	"github.com/avetkin/scooter-rental/internal/seed"
	"github.com/avetkin/scooter-rental/internal/service"
	"github.com/avetkin/scooter-rental/internal/utils"
	"github.com/avetkin/scooter-rental/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	infra  Infrastructure
	config *config.Config
	router *gin.Engine
	server *http.Server
}

func NewApp(ctx context.Context, infra Infrastructure, cfg *config.Config) (*App, error) {
	var repos *repository.Repositories
	if cfg.Storage.Driver == config.DriverPostgres {
		repos = repository.NewPostgresRepositories(infra.Postgres())
	} else {
		repos = repository.NewMemoryRepositories()
		if err := seed.Scooters(ctx, repos.Scooter, cfg.Storage.SeedScooters, infra.Logger()); err != nil {
			return nil, fmt.Errorf("failed to seed scooters: %w", err)
		}
	}

	sessionManager := utils.NewSessionManager(cfg.Session.Secret, cfg.Session.TTL.Duration)

	blacklistService := service.NewSessionBlacklistService(infra.Redis())
	rateLimiter := service.NewRateLimiter(infra.Redis())
	healthChecker := NewHealthChecker(infra)

	authService := service.NewAuthService(
		repos.User,
		sessionManager,
		blacklistService,
		cfg.Security.BCryptCost,
	)
	verificationService := service.NewVerificationService(
		repos.User,
		service.NewLogCodeSender(infra.Logger()),
		sessionManager,
		cfg.Security.CodeTTL.Duration,
	)
	scooterService := service.NewScooterService(repos.Scooter)
	rideService := service.NewRideService(
		repos.Ride,
		repos.Scooter,
		repos.Payment,
		repos.User,
		cfg.Pricing,
		infra.Logger(),
	)
	paymentService := service.NewPaymentService(repos.Payment, repos.User, infra.Logger())

	authHandler := handler.NewAuthHandler(
		authService,
		verificationService,
		cfg.Session.CookieName,
		sessionManager.TTLSeconds(),
		cfg.Env == "production",
	)
	scooterHandler := handler.NewScooterHandler(scooterService)
	rideHandler := handler.NewRideHandler(rideService)
	paymentHandler := handler.NewPaymentHandler(paymentService)

	router := gin.Default()
	router.Use(otelgin.Middleware("scooter-rental"))
	router.Use(handler.LoggerMiddleware(infra.Logger()))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))

	setupRoutes(router, cfg, authHandler, scooterHandler, rideHandler, paymentHandler, authService, rateLimiter, healthChecker, infra.MetricsHandler())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:  infra,
		config: cfg,
		router: router,
		server: srv,
	}, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	scooterHandler *handler.ScooterHandler,
	rideHandler *handler.RideHandler,
	paymentHandler *handler.PaymentHandler,
	authService service.AuthService,
	rateLimiter *service.RateLimiter,
	healthChecker *HealthChecker,
	metricsHandler http.Handler,
) {
	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))
	router.GET("/health", healthChecker.Handler)

	rateLimit := handler.RateLimitMiddleware(rateLimiter, cfg.Security.RateLimitRequests, cfg.Security.RateLimitWindow.Duration, handler.IPBasedKey)
	authRequired := handler.AuthMiddleware(authService, cfg.Session.CookieName)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", rateLimit, authHandler.Register)
			auth.POST("/login", rateLimit, authHandler.Login)
			auth.POST("/logout", authRequired, authHandler.Logout)
			auth.GET("/me", authRequired, authHandler.Me)
			auth.PUT("/me", authRequired, authHandler.UpdateProfile)
			auth.POST("/change-password", authRequired, authHandler.ChangePassword)

			auth.POST("/phone/request-code", rateLimit, authHandler.RequestPhoneCode)
			auth.POST("/phone/verify", rateLimit, authHandler.VerifyPhone)
			auth.POST("/email/request-code", authRequired, authHandler.RequestEmailCode)
			auth.POST("/email/verify", authRequired, authHandler.VerifyEmail)
		}

		scooters := api.Group("/scooters")
		{
			scooters.GET("", scooterHandler.List)
			scooters.GET("/:id", scooterHandler.Get)
			scooters.POST("", authRequired, scooterHandler.Create)
		}

		rides := api.Group("/rides", authRequired)
		{
			rides.POST("/start", rideHandler.Start)
			rides.POST("/:id/end", rideHandler.End)
			rides.GET("", rideHandler.List)
			rides.GET("/active", rideHandler.Active)
		}

		payments := api.Group("/payments", authRequired)
		{
			payments.GET("", paymentHandler.List)
			payments.POST("/add-balance", paymentHandler.AddBalance)
		}
	}
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
			zap.String("storage", a.config.Storage.Driver),
		)

		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		a.infra.Logger().Error("Shutdown error", zap.Error(err))
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	errs := make(chan error, 2)

	go func() {
		errs <- a.server.Shutdown(ctx)
	}()

	go func() {
		errs <- a.infra.Shutdown(ctx)
	}()

	err := errors.Join(<-errs, <-errs)
	if err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
