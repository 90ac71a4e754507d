package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"pricing-backend/internal/cache"
	"pricing-backend/internal/config"
	"pricing-backend/internal/database"
	"pricing-backend/internal/events"
	"pricing-backend/internal/handlers"
	"pricing-backend/internal/middlewares"
	"pricing-backend/internal/registry"
	"pricing-backend/internal/repositories"
	"pricing-backend/internal/routes"
	"pricing-backend/internal/services"
)

// Server bundles the HTTP server with the resources it owns so main can shut
// everything down in order.
type Server struct {
	HTTP *http.Server

	logger     *zap.Logger
	pool       *pgxpool.Pool
	rdb        *redis.Client
	publisher  events.Publisher
	subscriber events.Subscriber
	sharedBus  bool
	stopCache  func()
}

// New wires the whole service: config, database (with migrations), optional
// Redis cache and optional NATS bus, then the repository/service/handler
// stack behind a gin router.
func New(logger *zap.Logger) (*Server, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	dsn := cfg.DatabaseURL()
	if err := database.RunMigrations(dsn); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	pool, err := database.Connect(dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	logger.Info("database connection pool established")

	s := &Server{logger: logger, pool: pool}

	// Event bus: NATS when configured, in-process otherwise. The cache
	// subscribes to mutation events instead of being called by editors.
	if cfg.NATSURL != "" {
		publisher, err := events.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("connecting event publisher: %w", err)
		}
		subscriber, err := events.NewNATSSubscriber(cfg.NATSURL)
		if err != nil {
			publisher.Close()
			s.Close()
			return nil, fmt.Errorf("connecting event subscriber: %w", err)
		}
		s.publisher, s.subscriber = publisher, subscriber
		logger.Info("event bus connected", zap.String("url", cfg.NATSURL))
	} else {
		bus := events.NewBus()
		s.publisher, s.subscriber = bus, bus
		s.sharedBus = true
	}

	var rowCache services.RowCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(ctx).Err()
		cancel()
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("connecting to Redis at %s: %w", cfg.RedisAddr, err)
		}
		s.rdb = rdb

		pricingCache := cache.NewPricingCache(rdb, cfg.CacheTTL, logger)
		stop, err := pricingCache.ListenInvalidation(s.subscriber)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("subscribing cache invalidation: %w", err)
		}
		s.stopCache = stop
		rowCache = pricingCache
		logger.Info("pricing cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	// Dependency injection
	rowRepo := repositories.NewRowRepository(pool)
	pricingService := services.NewPricingService(registry.Default, rowRepo, rowCache, s.publisher, logger)
	customService := services.NewCustomService(registry.Default, rowRepo)
	pricingHandler := handlers.NewPricingHandler(pricingService, customService, logger)

	if cfg.GinRelease {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestLogger(logger))

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	routes.RegisterRoutes(router, pricingHandler)

	s.HTTP = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s, nil
}

// Close releases every resource the server owns. Safe to call on a partially
// constructed server.
func (s *Server) Close() {
	if s.stopCache != nil {
		s.stopCache()
	}
	if s.publisher != nil {
		_ = s.publisher.Close()
	}
	if s.subscriber != nil && !s.sharedBus {
		_ = s.subscriber.Close()
	}
	if s.rdb != nil {
		_ = s.rdb.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
}
