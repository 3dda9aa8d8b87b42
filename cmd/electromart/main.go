package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nithyashree19/electromart/internal/cart"
	"github.com/nithyashree19/electromart/internal/cart/record"
	"github.com/nithyashree19/electromart/internal/catalog"
	"github.com/nithyashree19/electromart/internal/domain"
	"github.com/nithyashree19/electromart/internal/events"
	"github.com/nithyashree19/electromart/internal/export"
	"github.com/nithyashree19/electromart/internal/httpapi"
	"github.com/nithyashree19/electromart/internal/invoice"
	"github.com/nithyashree19/electromart/internal/invoice/render"
	"github.com/nithyashree19/electromart/internal/selection"
	"github.com/nithyashree19/electromart/pkg/config"
)

// selectionSource binds the cart store and selection manager into the
// item source the invoice builder consumes.
type selectionSource struct {
	store *cart.Store
	sel   *selection.Manager
}

func (s selectionSource) SelectedItems() []domain.CartItem {
	return s.sel.SelectedItems(s.store.Snapshot())
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	ctx := context.Background()

	// Catalog: immutable product source, seeded by migration.
	cat, err := catalog.NewSQLiteRepository(cfg.CatalogDBPath)
	if err != nil {
		logger.Fatal("Failed to open catalog database", zap.Error(err))
	}
	defer cat.Close()
	if err := cat.RunMigrations(cfg.MigrationsPath); err != nil {
		logger.Fatal("Failed to run catalog migrations", zap.Error(err))
	}
	logger.Info("Catalog ready", zap.String("db", cfg.CatalogDBPath))

	// Durable cart record.
	rec, cleanup, err := buildRecordStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to set up cart record store", zap.Error(err))
	}
	defer cleanup()

	// Cart events: the selection manager follows every mutation, and an
	// optional Kafka publisher mirrors events for external observers.
	emitter := events.NewEmitter()

	var kafkaPublisher *events.KafkaPublisher
	if cfg.KafkaBrokers != "" {
		kafkaPublisher = events.NewKafkaPublisher(logger, cfg.KafkaBrokers)
		emitter.Subscribe(kafkaPublisher.Publish)
		defer kafkaPublisher.Close()
		logger.Info("Cart event publishing enabled", zap.String("brokers", cfg.KafkaBrokers))
	}

	store := cart.NewStore(ctx, rec, emitter, logger)

	sel := selection.NewManager()
	sel.ResetToAll(store.Snapshot())
	sel.Follow(emitter, store.Snapshot)

	// Invoice pipeline.
	sink, err := export.NewFileSink(cfg.ExportDir)
	if err != nil {
		logger.Fatal("Failed to create export sink", zap.Error(err))
	}

	builder := invoice.NewBuilder(
		selectionSource{store: store, sel: sel},
		invoice.TimeNumberGenerator{},
		render.NewPDFRenderer(),
		sink,
		logger,
	)

	handler := httpapi.NewHandler(cat, store, sel, builder, logger)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: handler.Routes(),
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}

func buildRecordStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (record.Store, func(), error) {
	switch cfg.CartStoreBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, err
		}
		logger.Info("Connected to Redis", zap.String("addr", cfg.RedisAddr))
		return record.NewRedisStore(client), func() { client.Close() }, nil

	case "mongo":
		db, err := record.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Connected to MongoDB", zap.String("uri", cfg.MongoURI))
		cleanup := func() {
			if err := db.Client().Disconnect(context.Background()); err != nil {
				logger.Warn("MongoDB disconnect failed", zap.Error(err))
			}
		}
		return record.NewMongoStore(db), cleanup, nil

	case "none":
		// In-memory cart only; nothing survives a restart.
		logger.Warn("Cart persistence disabled")
		return nil, func() {}, nil

	default:
		return nil, nil, errors.New("unknown CART_STORE_BACKEND: " + cfg.CartStoreBackend)
	}
}
