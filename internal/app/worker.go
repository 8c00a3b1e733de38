package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/roshaanmaqsood02/btms-api/internal/config"
	"github.com/roshaanmaqsood02/btms-api/internal/contract"
	"github.com/roshaanmaqsood02/btms-api/internal/credential"
	"github.com/roshaanmaqsood02/btms-api/internal/messaging/kafka"
	"github.com/roshaanmaqsood02/btms-api/internal/messaging/kafka/producer"
	"github.com/roshaanmaqsood02/btms-api/internal/shared/connection"
	"github.com/roshaanmaqsood02/btms-api/internal/shared/secrets"
	"github.com/roshaanmaqsood02/btms-api/internal/user"
	"github.com/roshaanmaqsood02/btms-api/internal/worker"
)

// RunWorker drives the outbox relay and the asynq expiry scans in one
// process. Blocks until SIGINT/SIGTERM.
func RunWorker(cfg *config.Config) error {
	logger := zap.L().Named("app.worker")

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

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	cipher, err := secrets.NewCipher(cfg.CredentialEncKey)
	if err != nil {
		return err
	}

	outboxRepo := kafka.NewOutboxRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	contractService := contract.NewService(contract.NewRepository(gormDB), userRepo)
	credentialService := credential.NewService(credential.NewRepository(gormDB), userRepo, cipher)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	relay := producer.NewOutboxRelay(outboxRepo, producer.NewKafkaPublisher(kafkaWriter), logger.Named("outbox"))
	go relay.Run(ctx)

	handlers := worker.NewHandlers(contractService, credentialService, logger.Named("expiry"))
	srv, mux := worker.NewServer(cfg.RedisAddr, handlers, logger)
	if err := srv.Start(mux); err != nil {
		return err
	}

	stopScheduler, err := worker.StartScheduler(cfg.RedisAddr, logger)
	if err != nil {
		srv.Shutdown()
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	stopScheduler()
	srv.Shutdown()
	cancel()

	return nil
}
