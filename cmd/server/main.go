package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sweetshop/backend/config"
	"github.com/sweetshop/backend/internal/pkg/broker"
	"github.com/sweetshop/backend/internal/pkg/cache"
	"github.com/sweetshop/backend/internal/pkg/database/postgres"
	"github.com/sweetshop/backend/internal/pkg/logger"
	"github.com/sweetshop/backend/internal/pkg/search"
	"github.com/sweetshop/backend/internal/server"

	catH "github.com/sweetshop/backend/internal/category/handler"
	catRepoPkg "github.com/sweetshop/backend/internal/category/repository"
	catUCPkg "github.com/sweetshop/backend/internal/category/usecase"

	invH "github.com/sweetshop/backend/internal/inventory/handler"
	invListenerPkg "github.com/sweetshop/backend/internal/inventory/listener"
	invRepoPkg "github.com/sweetshop/backend/internal/inventory/repository"
	invUCPkg "github.com/sweetshop/backend/internal/inventory/usecase"

	orderH "github.com/sweetshop/backend/internal/order/handler"
	orderRepoPkg "github.com/sweetshop/backend/internal/order/repository"
	orderUCPkg "github.com/sweetshop/backend/internal/order/usecase"

	prodH "github.com/sweetshop/backend/internal/product/handler"
	prodRepoPkg "github.com/sweetshop/backend/internal/product/repository"
	prodUCPkg "github.com/sweetshop/backend/internal/product/usecase"

	reportH "github.com/sweetshop/backend/internal/report/handler"
	reportRepoPkg "github.com/sweetshop/backend/internal/report/repository"
	reportUCPkg "github.com/sweetshop/backend/internal/report/usecase"

	"github.com/sweetshop/backend/internal/user"
	userH "github.com/sweetshop/backend/internal/user/handler"
	userRepoPkg "github.com/sweetshop/backend/internal/user/repository"
	userUCPkg "github.com/sweetshop/backend/internal/user/usecase"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     false,
		DisableStacktrace: false,
	}

	if cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Repositories
	catRepo := catRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db)
	userRepo := userRepoPkg.NewPGRepository(db)
	reportRepo := reportRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5.5 Initialize Kafka
	channelSalesConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.ChannelSalesTopic,
		GroupID: cfg.Kafka.ChannelSalesGroup,
	})
	defer channelSalesConsumer.Close()

	ordersProducer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.OrdersTopic)
	defer ordersProducer.Close()
	stockProducer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.StockTopic)
	defer stockProducer.Close()
	appLogger.Info("Connected to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers))

	// 5.8 Initialize Elasticsearch
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch (Search features might be limited)", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 6. Initialize UseCases
	catUC := catUCPkg.NewCategoryUseCase(catRepo, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, redisClient, stockProducer, cfg.Inventory.LowStockThreshold, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, redisClient, esClient, invUC, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, ordersProducer, appLogger)

	tokens := user.NewTokenIssuer(cfg.JWT.SecretKey, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	userUC := userUCPkg.NewUserUseCase(userRepo, tokens, appLogger)

	reportUC := reportUCPkg.NewReportUseCase(reportRepo, appLogger)

	// 6.5 Initialize Listeners
	salesListener := invListenerPkg.NewChannelSalesListener(channelSalesConsumer, invUC, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go salesListener.Start(ctx)

	// 7. Initialize Handlers and Router
	handlers := &server.Handlers{
		Product:   prodH.NewProductHandler(prodUC, appLogger),
		Category:  catH.NewCategoryHandler(catUC, appLogger),
		Inventory: invH.NewInventoryHandler(invUC, appLogger),
		Order:     orderH.NewOrderHandler(orderUC, appLogger),
		User:      userH.NewUserHandler(userUC, appLogger),
		Report:    reportH.NewReportHandler(reportUC, appLogger),
	}

	router := server.NewRouter(cfg, handlers)

	// 8. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
