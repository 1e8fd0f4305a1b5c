package commands

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"civiclens/config"
	"civiclens/events"
	"civiclens/routes"
	"civiclens/services"
	"civiclens/store"
	"civiclens/utils"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := utils.NewLogger(cfg.LogLevel, cfg.IsDevelopment())
	defer func() { _ = logger.Sync() }()

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownTracing, err := utils.SetupTracing(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		return errors.Wrap(err, "setting up tracing")
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	var redisClient *redis.Client
	if cfg.RedisAddress != "" {
		redisClient, err = config.NewRedisClient(ctx, cfg.RedisAddress, cfg.RedisPassword)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		logger.Info("redis connection established", zap.String("address", cfg.RedisAddress))
	}

	issueStore, closeStore, err := openStore(ctx, cfg, redisClient, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	opts := []services.Option{services.WithLogger(logger)}
	if cfg.EventsEnabled {
		opts = append(opts, services.WithPublisher(events.NewRedisStreamPublisher(redisClient, cfg.EventStream, logger)))
	}
	service := services.NewIssueService(issueStore, opts...)

	router, err := routes.NewRouter(cfg, service, redisClient, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("store", cfg.StoreBackend),
			zap.Bool("events", cfg.EventsEnabled))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore picks the issue repository for the configured backend. The returned func
// releases whatever connection the store owns.
func openStore(ctx context.Context, cfg *config.Config, redisClient *redis.Client, logger *zap.Logger) (store.IssueStore, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreRedis:
		return store.NewRedisStore(redisClient, cfg.StorageKey), func() {}, nil

	case config.StoreMongo:
		db, err := config.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("MongoDB connection established", zap.String("database", cfg.MongoDatabase))

		mongoStore, err := store.NewMongoStore(db.Collection(cfg.StorageKey))
		if err != nil {
			_ = db.Client().Disconnect(context.Background())
			return nil, nil, err
		}
		return mongoStore, func() { _ = db.Client().Disconnect(context.Background()) }, nil

	default:
		return store.NewMemoryStore(), func() {}, nil
	}
}
