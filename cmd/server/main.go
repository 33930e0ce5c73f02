package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"shop-backend/internal/httpserver"
	"shop-backend/internal/mykafka"
	"shop-backend/internal/payment"
	"shop-backend/internal/repo"
	"shop-backend/internal/service"
	"shop-backend/pkg/config"
	"shop-backend/pkg/db"
	"shop-backend/pkg/logging"
	loggingmw "shop-backend/pkg/middleware/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustNonEmpty(cfg.StripeSecretKey, "STRIPE_SECRET_KEY")
	config.MustNonEmpty(cfg.StripeWebhookSecret, "STRIPE_WEBHOOK_SECRET")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	e := echo.New()
	e.HideBanner = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	database, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	gormRepo := &repo.GormRepo{DB: database}
	if err := gormRepo.Migrate(); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	var producer *mykafka.Producer
	var publisher service.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer = mykafka.NewProducer(cfg.KafkaBrokers)
		publisher = producer
	}

	gateway := payment.NewStripeGateway(payment.Config{
		SecretKey:     cfg.StripeSecretKey,
		WebhookSecret: cfg.StripeWebhookSecret,
		SuccessURL:    cfg.CheckoutSuccessURL,
		CancelURL:     cfg.CheckoutCancelURL,
	})

	inventoryService := &service.InventoryService{
		Repo:              gormRepo,
		Producer:          publisher,
		LowStockThreshold: cfg.LowStockThreshold,
	}
	cartService := &service.CartService{Repo: gormRepo, Producer: publisher}
	orderService := &service.OrderService{Repo: gormRepo, Inventory: inventoryService, Producer: publisher}
	checkoutService := &service.CheckoutService{Repo: gormRepo, Gateway: gateway, Producer: publisher}

	httpserver.Register(e, &httpserver.Deps{
		CartHandler:     &httpserver.CartHTTP{Svc: cartService},
		OrderHandler:    &httpserver.OrderHTTP{Svc: orderService},
		CheckoutHandler: &httpserver.CheckoutHTTP{Svc: checkoutService},
		JWTSecret:       cfg.JWTSecret,
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		logger.Info("starting server", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close", "error", err)
		}
	}

	if sqlDB, err := database.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Info("server stopped")
}
