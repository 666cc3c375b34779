package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/config"
	"fleetflow/internal/handlers"
	"fleetflow/internal/middleware"
	"fleetflow/internal/repositories/mongodb"
	"fleetflow/internal/services"
	"fleetflow/internal/utils"
	"fleetflow/pkg/cache"
	"fleetflow/pkg/database"
	"fleetflow/pkg/logger"
	"fleetflow/pkg/sms"
	"fleetflow/pkg/storage"
	"fleetflow/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
		Output: "stdout",
		Colors: config.IsDevelopment(),
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	// MongoDB
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer db.Close()

	if err := database.NewMigrator(db.Database).Up(); err != nil {
		log.WithError(err).Fatal("Failed to run database migrations")
	}

	// Redis is optional; the app degrades to uncached reads without it.
	var cacheBackend services.CacheBackend
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, continuing without cache")
		} else {
			cacheBackend = redisCache
			defer redisCache.Close()
		}
	}
	cacheService := services.NewCacheService(cacheBackend, log, "fleetflow", 30*time.Minute)

	smsProvider := buildSMSProvider(cfg, log)

	storageProvider, err := buildStorageProvider(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize document storage")
	}

	// Repositories
	bolRepo := mongodb.NewBOLRepository(db.Database, cacheService)
	accessorialRepo := mongodb.NewAccessorialRepository(db.Database, cacheService)
	invoiceRepo := mongodb.NewInvoiceRepository(db.Database, cacheService)
	notificationRepo := mongodb.NewNotificationRepository(db.Database)

	// Services
	feeService := services.NewFeeService(cfg.Fees, log)
	accessorialService := services.NewAccessorialService(accessorialRepo, cacheService, cfg.Fees, log)
	invoiceService := services.NewInvoiceService(invoiceRepo, cfg.Billing, log)
	notificationService := services.NewNotificationService(notificationRepo, smsProvider, log)
	documentService := services.NewDocumentService(storageProvider, log)
	bolService := services.NewBOLService(bolRepo, accessorialService, invoiceService, notificationService, log)

	// Handlers
	bolHandler := handlers.NewBOLHandler(bolService)
	accessorialHandler := handlers.NewAccessorialHandler(accessorialService)
	feeHandler := handlers.NewFeeHandler(feeService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	documentHandler := handlers.NewDocumentHandler(documentService)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(log))

	v1 := router.Group("/api/v1")
	{
		routes.SetupBOLRoutes(v1, bolHandler, documentHandler)
		routes.SetupAccessorialRoutes(v1, accessorialHandler)
		routes.SetupBillingRoutes(v1, feeHandler, invoiceHandler, notificationHandler)
	}

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		health := "healthy"
		mongoOK := db.Ping() == nil
		if !mongoOK {
			status = http.StatusServiceUnavailable
			health = "degraded"
		}
		cacheOK := cacheService.Ping(ctx) == nil

		c.JSON(status, gin.H{
			"status":  health,
			"version": utils.AppVersion,
			"mongodb": mongoOK,
			"redis":   cacheOK,
		})
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.WithField("addr", addr).Info("Starting FleetFlow server")
	if err := router.Run(addr); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}

func buildStorageProvider(cfg *config.Config) (storage.StorageProvider, error) {
	switch cfg.Storage.Provider {
	case "s3":
		return storage.NewAWSS3Storage(cfg.Storage.S3Region, cfg.Storage.S3Bucket)
	default:
		return storage.NewLocalStorage(cfg.Storage.LocalPath, cfg.Storage.LocalURL)
	}
}

func buildSMSProvider(cfg *config.Config, log *logger.Logger) sms.SMSProvider {
	switch cfg.SMS.Provider {
	case "twilio":
		return sms.NewTwilioProvider(cfg.SMS.Twilio.AccountSID, cfg.SMS.Twilio.AuthToken, cfg.SMS.Twilio.FromNumber)
	case "sns":
		provider, err := sms.NewAWSSNSProvider(cfg.SMS.AWS.Region)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize SNS provider, notifications will not be delivered")
			return sms.NewNoopProvider()
		}
		return provider
	default:
		return sms.NewNoopProvider()
	}
}
