package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/classbrand/brandnet/internal/domain/contract"
	handlerHttp "github.com/classbrand/brandnet/internal/handler/http"
	redisclient "github.com/classbrand/brandnet/internal/infrastructure/cache"
	"github.com/classbrand/brandnet/internal/infrastructure/config"
	database "github.com/classbrand/brandnet/internal/infrastructure/database"
	"github.com/classbrand/brandnet/internal/infrastructure/eventbroker"
	"github.com/classbrand/brandnet/internal/infrastructure/jwt"
	"github.com/classbrand/brandnet/internal/infrastructure/logger"
	passwordservice "github.com/classbrand/brandnet/internal/infrastructure/password_service"
	randomgenerator "github.com/classbrand/brandnet/internal/infrastructure/random_generator"
	"github.com/classbrand/brandnet/internal/infrastructure/repository/memory"
	"github.com/classbrand/brandnet/internal/infrastructure/repository/mongodb"
	"github.com/classbrand/brandnet/internal/infrastructure/store"
	"github.com/classbrand/brandnet/internal/infrastructure/uuidgen"
	"github.com/classbrand/brandnet/internal/infrastructure/validator"
	"github.com/classbrand/brandnet/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// brandStore is what the brand use cases and the toggle need from a backend.
type brandStore interface {
	contract.IBrandRepository
	contract.IMembershipStore
}

func main() {
	// Load environment variables from .env file
	envErr := godotenv.Load()

	appConfig, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Config{Level: "info", ServiceName: "brandnet-api"})
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	zl := logger.New(logger.Config{
		Level:       appConfig.GetLogLevel(),
		Pretty:      appConfig.GetLogPretty(),
		ServiceName: "brandnet-api",
	})
	appLogger := logger.NewZeroLogger(zl)
	if envErr != nil {
		appLogger.Infof("No .env file found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Dependency Injection: Repositories
	var (
		brands brandStore
		users  contract.IUserRepository
	)
	switch appConfig.GetStoreBackend() {
	case config.BackendMemory:
		appLogger.Warnf("using in-memory store, data is lost on restart")
		brands = memory.NewBrandStore()
		users = memory.NewUserStore()
	default:
		mongoClient, err := database.NewMongoDBClient(appConfig.GetMongoURI())
		if err != nil {
			appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer mongoClient.Disconnect()

		db := mongoClient.Database(appConfig.GetMongoDBName())
		brandRepo := mongodb.NewBrandRepository(mongoClient.Client, db, appConfig.GetStoreTxTimeout())
		userRepo := mongodb.NewMongoUserRepository(db.Collection("users"))
		if err := brandRepo.EnsureIndexes(ctx); err != nil {
			appLogger.Warnf("failed to ensure brand indexes: %v", err)
		}
		if err := userRepo.EnsureIndexes(ctx); err != nil {
			appLogger.Warnf("failed to ensure user indexes: %v", err)
		}
		brands, users = brandRepo, userRepo
	}

	// Register custom validators
	validator.RegisterCustomValidators()

	// Dependency Injection: Services
	hasher := passwordservice.NewHasher(bcrypt.DefaultCost)
	jwtManager := jwt.NewJWTManager(appConfig.GetJWTSecret(), appConfig.GetAccessTokenExpiry(), appConfig.GetRefreshTokenExpiry())
	jwtService := jwt.NewJWTService(jwtManager)
	randomGenerator := randomgenerator.NewRandomGenerator()
	appValidator := validator.NewValidator()
	uuidGenerator := uuidgen.NewGenerator()

	// Dependency Injection: Usecases
	userUsecase := usecase.NewUserUsecase(users, hasher, jwtService, appLogger, appValidator, uuidGenerator)
	brandUsecase := usecase.NewBrandUseCase(brands, uuidGenerator, appValidator, appLogger)
	adminUsecase := usecase.NewAdminUseCase(users, brands, appLogger)
	toggleUsecase := usecase.NewMembershipToggleService(brands, appLogger, usecase.ToggleOptions{
		MaxAttempts: appConfig.GetToggleMaxAttempts(),
		BaseBackoff: appConfig.GetToggleBaseBackoff(),
		MaxBackoff:  appConfig.GetToggleMaxBackoff(),
	})

	// Optional Dependency Injection: Redis cache
	if redisURL := appConfig.GetRedisURL(); redisURL != "" {
		if rdb := redisclient.NewRedisFromURL(ctx, redisURL); rdb != nil {
			defer redisclient.Close(rdb)
			brandCache := store.NewBrandCacheStore(rdb)
			brandUsecase.SetBrandCache(brandCache)
			adminUsecase.SetBrandCache(brandCache)
			toggleUsecase.SetBrandCache(brandCache)
		} else {
			appLogger.Warnf("redis unavailable, brand cache disabled")
		}
	}

	// Optional Dependency Injection: NATS events
	if natsURL := appConfig.GetNatsURL(); natsURL != "" {
		nc, err := eventbroker.Connect(natsURL)
		if err != nil {
			appLogger.Warnf("nats unavailable, membership events disabled: %v", err)
		} else {
			defer nc.Drain()
			toggleUsecase.SetEventPublisher(eventbroker.NewNatsPublisher(nc))
		}
	}

	if appConfig.GetLogLevel() != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	// Setup API routes
	appRouter := handlerHttp.NewRouter(handlerHttp.RouterDeps{
		UserUsecase:   userUsecase,
		BrandUsecase:  brandUsecase,
		ToggleUsecase: toggleUsecase,
		AdminUsecase:  adminUsecase,
		Config:        appConfig,
		RandomGen:     randomGenerator,
		Logger:        zl,
	})
	appRouter.SetupRoutes(router)

	srv := &http.Server{
		Addr:              ":" + appConfig.GetPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Infof("Server running on port %s", appConfig.GetPort())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	appLogger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorf("graceful shutdown failed: %v", err)
	}
}
