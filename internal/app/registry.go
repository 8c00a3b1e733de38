package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/roshaanmaqsood02/btms-api/internal/asset"
	"github.com/roshaanmaqsood02/btms-api/internal/auth"
	"github.com/roshaanmaqsood02/btms-api/internal/config"
	"github.com/roshaanmaqsood02/btms-api/internal/contract"
	"github.com/roshaanmaqsood02/btms-api/internal/credential"
	"github.com/roshaanmaqsood02/btms-api/internal/education"
	"github.com/roshaanmaqsood02/btms-api/internal/messaging/kafka"
	"github.com/roshaanmaqsood02/btms-api/internal/middleware"
	"github.com/roshaanmaqsood02/btms-api/internal/shared/counter"
	"github.com/roshaanmaqsood02/btms-api/internal/shared/secrets"
	"github.com/roshaanmaqsood02/btms-api/internal/upload"
	"github.com/roshaanmaqsood02/btms-api/internal/user"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	cipher, err := secrets.NewCipher(cfg.CredentialEncKey)
	if err != nil {
		return err
	}

	storage, err := upload.NewDiskStorage(cfg.UploadDir, cfg.BaseURL)
	if err != nil {
		return err
	}

	// --- Repositories ---
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	assetRepo := asset.NewRepository(gormDB)
	contractRepo := contract.NewRepository(gormDB)
	credentialRepo := credential.NewRepository(gormDB)
	educationRepo := education.NewRepository(gormDB)

	// --- Services ---
	userService := user.NewService(sqlDB, userRepo, counterRepo, outboxRepo, rdb, storage)
	authService := auth.NewService(userRepo, userService, storage, cfg.JWTSecret)
	assetService := asset.NewService(assetRepo, userRepo)
	contractService := contract.NewService(contractRepo, userRepo)
	credentialService := credential.NewService(credentialRepo, userRepo, cipher)
	educationService := education.NewService(educationRepo, userRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	assetHandler := asset.NewHandler(assetService)
	contractHandler := contract.NewHandler(contractService)
	credentialHandler := credential.NewHandler(credentialService)
	educationHandler := education.NewHandler(educationService)

	// Login and register share one bucket per client IP.
	loginLimiter := middleware.NewIPRateLimiter(rate.Every(time.Minute/10), 5)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, authService, loginLimiter)
		user.RegisterRoutes(api, userHandler, authService)
		asset.RegisterRoutes(api, assetHandler, authService)
		contract.RegisterRoutes(api, contractHandler, authService)
		credential.RegisterRoutes(api, credentialHandler, authService)
		education.RegisterRoutes(api, educationHandler, authService)
	}

	return nil
}
