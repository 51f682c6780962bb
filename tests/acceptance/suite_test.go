package acceptance

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/cookiejar"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"

	"github.com/avetkin/scooter-rental/internal/app"
	"github.com/avetkin/scooter-rental/internal/config"
	"github.com/avetkin/scooter-rental/pkg/database"
	"github.com/avetkin/scooter-rental/pkg/observability"
)

const redisDSN = "localhost:6379"

// seedScooters keeps suite startup fast; the production default is larger.
const seedScooters = 25

// Suite boots the application with the in-memory storage driver and a real
// Redis, and exercises it over HTTP. Memory state lives for the whole suite,
// so each test works with its own accounts and scooters.
type Suite struct {
	suite.Suite
	Redis   *database.Redis
	BaseURL string
	ctx     context.Context
	cancel  context.CancelFunc
}

func TestSuite(t *testing.T) {
	suite.Run(t, new(Suite))
}

func (s *Suite) SetupSuite() {
	redis, err := database.NewRedis(redisDSN, "", 0)
	if err != nil {
		s.T().Fatalf("Failed to connect to Redis: %v", err)
	}
	s.Redis = redis

	if err := redis.Client.FlushDB(context.Background()).Err(); err != nil {
		redis.Close()
		s.T().Fatalf("Failed to flush Redis: %v", err)
	}

	baseURL, ctx, cancel, err := s.startApp(redis)
	if err != nil {
		_ = redis.Close()
		s.T().Fatalf("Failed to start app: %v", err)
	}

	s.BaseURL = baseURL
	s.ctx = ctx
	s.cancel = cancel
}

func (s *Suite) TearDownSuite() {
	if s.cancel != nil {
		s.cancel()
		time.Sleep(100 * time.Millisecond)
	}
	if s.Redis != nil {
		_ = s.Redis.Close()
	}
}

func (s *Suite) startApp(redis *database.Redis) (string, context.Context, context.CancelFunc, error) {
	cfg := s.createTestConfig()

	gin.SetMode(gin.TestMode)

	infra, err := s.createTestInfrastructure(redis)
	if err != nil {
		return "", nil, nil, fmt.Errorf("failed to initialize test infrastructure: %w", err)
	}

	listener, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return "", nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	addr := listener.Addr().(*net.TCPAddr)
	baseURL := fmt.Sprintf("http://localhost:%d", addr.Port)

	cfg.Server.Port = fmt.Sprintf("%d", addr.Port)
	listener.Close()

	ctx, cancel := context.WithCancel(context.Background())

	application, err := app.NewApp(ctx, infra, cfg)
	if err != nil {
		cancel()
		return "", nil, nil, fmt.Errorf("failed to create app: %w", err)
	}

	go func() {
		if err := application.Run(ctx); err != nil {
			infra.Logger().Error("Application failed to run", zap.Error(err))
		}
	}()

	time.Sleep(100 * time.Millisecond)

	return baseURL, ctx, cancel, nil
}

func (s *Suite) createTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:         "localhost",
			Port:         "0",
			ReadTimeout:  config.Duration{Duration: 15 * time.Second},
			WriteTimeout: config.Duration{Duration: 15 * time.Second},
		},
		Storage: config.StorageConfig{
			Driver:       config.DriverMemory,
			SeedScooters: seedScooters,
		},
		Redis: config.RedisConfig{
			Host:     "localhost",
			Port:     "6379",
			Password: "",
			DB:       0,
		},
		Session: config.SessionConfig{
			Secret:     "test-secret-key-that-is-at-least-32-characters-long",
			TTL:        config.Duration{Duration: 7 * 24 * time.Hour},
			CookieName: "session",
		},
		Pricing: config.PricingConfig{
			BaseFee:           1.00,
			PerMinuteRate:     0.15,
			DistancePerMinute: 0.1,
		},
		Security: config.SecurityConfig{
			BCryptCost:        4,
			CodeTTL:           config.Duration{Duration: 10 * time.Minute},
			RateLimitRequests: 1000,
			RateLimitWindow:   config.Duration{Duration: 1 * time.Minute},
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
		},
		Env: "test",
	}
}

func (s *Suite) createTestInfrastructure(redis *database.Redis) (*testInfrastructure, error) {
	logger, err := observability.InitLogger("test")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	meterProvider, metricsHandler, err := observability.InitTelemetry("scooter-rental-test")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	return &testInfrastructure{
		redis:          redis,
		logger:         logger,
		metricsHandler: metricsHandler,
		meterProvider:  meterProvider,
	}, nil
}

// newClient returns an HTTP client with its own cookie jar, acting as one rider.
func (s *Suite) newClient() *http.Client {
	jar, err := cookiejar.New(nil)
	s.Require().NoError(err)
	return &http.Client{Jar: jar}
}

type testInfrastructure struct {
	redis          *database.Redis
	logger         *zap.Logger
	metricsHandler http.Handler
	meterProvider  *metric.MeterProvider
}

func (i *testInfrastructure) Postgres() *database.Postgres {
	return nil
}

func (i *testInfrastructure) Redis() *database.Redis {
	return i.redis
}

func (i *testInfrastructure) Logger() *zap.Logger {
	return i.logger
}

func (i *testInfrastructure) MetricsHandler() http.Handler {
	return i.metricsHandler
}

func (i *testInfrastructure) MeterProvider() *metric.MeterProvider {
	return i.meterProvider
}

func (i *testInfrastructure) Shutdown(ctx context.Context) error {
	if i.logger != nil {
		_ = i.logger.Sync()
	}
	if i.meterProvider != nil {
		_ = observability.Shutdown(ctx, i.meterProvider, i.logger)
	}
	return nil
}
