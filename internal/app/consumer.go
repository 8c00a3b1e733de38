package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/roshaanmaqsood02/btms-api/internal/config"
	"github.com/roshaanmaqsood02/btms-api/internal/contract"
	"github.com/roshaanmaqsood02/btms-api/internal/messaging/kafka/consumer"
	"github.com/roshaanmaqsood02/btms-api/internal/shared/connection"
	"github.com/roshaanmaqsood02/btms-api/internal/user"
)

const consumerGroupID = "btms-contract-provisioning"

// RunConsumer provisions default contracts off the user lifecycle topic.
// Blocks until SIGINT/SIGTERM.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	userRepo := user.NewRepository(gormDB)
	contractService := contract.NewService(contract.NewRepository(gormDB), userRepo)

	lifecycle := consumer.NewUserLifecycleConsumer(
		cfg.KafkaBroker,
		consumerGroupID,
		contractService,
		logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- lifecycle.Run(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("consumer shutting down", zap.String("signal", sig.String()))
		cancel()
		return <-errCh
	case err := <-errCh:
		return err
	}
}
