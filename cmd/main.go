package main

import (
	"context"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	deliveryapp "github.com/muhammadheryan/warehouse-ops/application/delivery"
	orderapp "github.com/muhammadheryan/warehouse-ops/application/order"
	stockapp "github.com/muhammadheryan/warehouse-ops/application/stock"
	userapp "github.com/muhammadheryan/warehouse-ops/application/user"
	"github.com/muhammadheryan/warehouse-ops/cmd/config"
	redisclient "github.com/muhammadheryan/warehouse-ops/cmd/redis"
	_ "github.com/muhammadheryan/warehouse-ops/docs"
	deliveryRepo "github.com/muhammadheryan/warehouse-ops/repository/delivery"
	orderRepo "github.com/muhammadheryan/warehouse-ops/repository/order"
	redisRepo "github.com/muhammadheryan/warehouse-ops/repository/redis"
	txRepo "github.com/muhammadheryan/warehouse-ops/repository/tx"
	userRepo "github.com/muhammadheryan/warehouse-ops/repository/user"
	variantRepo "github.com/muhammadheryan/warehouse-ops/repository/variant"
	"github.com/muhammadheryan/warehouse-ops/thirdparty/rabbitmq"
	"github.com/muhammadheryan/warehouse-ops/transport"
	"github.com/muhammadheryan/warehouse-ops/utils/logger"
	"go.uber.org/zap"
)

// @title WAREHOUSE OPS API
// @version 1.0
// @description Warehouse back-office API Documentation
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// RabbitMQ event publisher + courier-updates consumer
	var publisher *rabbitmq.Publisher
	if cfg.RabbitMQ.Enabled {
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
		if err != nil {
			logger.Fatal("err connect rabbitmq publisher", zap.Error(err))
		}
		defer publisher.Close()

		consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.APIBaseURL, cfg.Auth.InternalAPIKey)
		if err != nil {
			logger.Fatal("err connect rabbitmq consumer", zap.Error(err))
		}
		defer consumer.Close()

		if err := consumer.Start(context.Background()); err != nil {
			logger.Fatal("err start courier consumer", zap.Error(err))
		}
	}

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db)
	OrderRepo := orderRepo.NewOrderRepository(db)
	VariantRepo := variantRepo.NewVariantRepository(db)
	DeliveryRepo := deliveryRepo.NewDeliveryRepository(db)
	UserRepo := userRepo.NewUserRepository(db)
	RedisRepo := redisRepo.NewRepository()

	// Initialize application layers
	UserApp := userapp.NewUserApp(cfg, UserRepo, RedisRepo)
	OrderApp := orderapp.NewOrderApp(cfg, TxRepo, OrderRepo, VariantRepo, DeliveryRepo, publisher)
	StockApp := stockapp.NewStockApp(TxRepo, VariantRepo, publisher)
	DeliveryApp := deliveryapp.NewDeliveryApp(TxRepo, DeliveryRepo, OrderRepo)

	httpTransport := transport.NewTransport(UserApp, OrderApp, StockApp, DeliveryApp, cfg.Auth.InternalAPIKey)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
