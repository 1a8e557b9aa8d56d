package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus-commerce/internal/client"
	"campus-commerce/internal/config"
	"campus-commerce/internal/logging"
	"campus-commerce/internal/repository"
	"campus-commerce/internal/server"
	"campus-commerce/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format)

	dailyRate, err := decimal.NewFromString(cfg.Checkout.LateFeeDailyRate)
	if err != nil {
		fmt.Printf("Invalid late fee daily rate: %v\n", err)
		os.Exit(1)
	}

	db := client.InitSqliteClient(cfg.DatabaseURL)

	catalogRepo := repository.NewCatalogRepository(db)
	productRepo := repository.NewProductRepository(db)
	providerRepo := repository.NewProviderRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	if cfg.Environment.Name == "development" {
		if err := productRepo.Seed(context.Background()); err != nil {
			log.Fatal("seed products:", err)
		}
	}

	notifier := service.NewLogAlertNotifier(logger)
	pinSessions := service.NewPinSessionManager(cfg.Checkout.PinMaxAttempts, cfg.Checkout.PinSessionTTL, notifier)

	checkoutService := service.NewCheckoutService(
		db,
		catalogRepo,
		productRepo,
		providerRepo,
		accountRepo,
		orderRepo,
		pinSessions,
	)
	catalogService := service.NewCatalogService(catalogRepo)
	billingService := service.NewBillingService(transactionRepo, dailyRate)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(checkoutService, catalogService, billingService, cfg.Auth.JWTSecret)

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
