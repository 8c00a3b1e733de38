package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/roshaanmaqsood02/btms-api/internal/app"
	"github.com/roshaanmaqsood02/btms-api/internal/config"
	"github.com/roshaanmaqsood02/btms-api/internal/shared/apperror"
)

func newLogger(appEnv string) (*zap.Logger, error) {
	if appEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	if err := app.RunWorker(cfg); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}
