package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PrecisionBh/melo-escrow-service/internal/app/background"
	"github.com/PrecisionBh/melo-escrow-service/internal/config"
	"github.com/PrecisionBh/melo-escrow-service/internal/delivery/httpapi"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/inventory"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/kafka"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/metrics"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/migrate"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/notifier"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/postgres"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/postgres/repository"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/provider"
	disputeusecase "github.com/PrecisionBh/melo-escrow-service/internal/usecase/dispute"
	orderusecase "github.com/PrecisionBh/melo-escrow-service/internal/usecase/order"
	payoutusecase "github.com/PrecisionBh/melo-escrow-service/internal/usecase/payout"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	setupLogger(cfg)
	// Init database
	db := postgres.MustInitDB(cfg)
	if cfg.EscrowDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.EscrowDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	pub := kafka.NewKafkaPublisher(brokers)

	escrowMetrics := metrics.NewEscrowMetrics()

	// Init repositories
	orderRepo := repository.NewDefaultOrderRepository(db)
	walletRepo := repository.NewDefaultWalletRepository(db)
	disputeRepo := repository.NewDefaultDisputeRepository(db)
	payoutRepo := repository.NewDefaultPayoutRepository(db)
	reconRepo := repository.NewDefaultReconciliationRepository(db)

	// Init collaborator clients
	providerClient := provider.NewClient(cfg.PaymentProvider.BaseURL, cfg.PaymentProvider.APIKey)
	pushNotifier := notifier.NewHTTPNotifier(cfg.Collaborators.NotifierURL)
	inventoryClient := inventory.NewClient(cfg.Collaborators.InventoryURL)

	// Init usecases
	orderUC := orderusecase.NewDefaultOrderUsecase(
		orderRepo,
		walletRepo,
		reconRepo,
		providerClient,
		inventoryClient,
		pushNotifier,
		pub,
		escrowMetrics,
		cfg.Fees.SellerFeeBps,
		cfg.Windows.ReturnDeadline,
	)
	disputeUC := disputeusecase.NewDefaultDisputeUsecase(
		disputeRepo,
		orderRepo,
		walletRepo,
		reconRepo,
		providerClient,
		pushNotifier,
		pub,
		escrowMetrics,
		cfg.Windows.DisputeResponseTTL,
	)
	payoutUC := payoutusecase.NewDefaultPayoutUsecase(
		payoutRepo,
		walletRepo,
		reconRepo,
		providerClient,
		pushNotifier,
		pub,
		escrowMetrics,
		cfg.Fees.InstantPayoutFeeBps,
		cfg.Fees.InstantPayoutFeeCap,
		"usd",
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background sweeps: expired returns, expired disputes, reconciliation
	tasks := background.NewTasks(orderUC, disputeUC, cfg.Windows.SweepInterval)
	tasks.StartAll(ctx)

	apiServer := httpapi.NewServer(orderUC, disputeUC, payoutUC, cfg.Auth.JWTSecret, cfg.PaymentProvider.WebhookSecret)
	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler: apiServer.Handler(),
	}

	go func() {
		slog.Info("starting escrow service", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown failed", "error", err.Error())
	}
}

func setupLogger(cfg *config.EscrowConfig) {
	level := slog.LevelInfo
	switch cfg.LogConfig.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if cfg.LogConfig.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}
