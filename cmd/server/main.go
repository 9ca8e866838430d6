package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"policy-vault.backend/internal/config"
	"policy-vault.backend/internal/domain/repositories"
	"policy-vault.backend/internal/infrastructure/jobs"
	infrarepos "policy-vault.backend/internal/infrastructure/repositories"
	"policy-vault.backend/internal/infrastructure/retrieval"
	"policy-vault.backend/internal/infrastructure/storage"
	"policy-vault.backend/internal/interfaces/http/handlers"
	"policy-vault.backend/internal/interfaces/http/middleware"
	"policy-vault.backend/internal/usecases"
	"policy-vault.backend/pkg/jwt"
	"policy-vault.backend/pkg/logger"
	"policy-vault.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("Connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Initialize repositories
	userRepo := infrarepos.NewUserRepository(db)
	policyRepo := infrarepos.NewPolicyRepository(db)

	// Initialize document storage
	fileStore, localDir, err := buildFileStore(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize document storage: %w", err)
	}

	// Initialize retrieval client and ingestion queue
	retrievalClient := retrieval.NewClient(cfg.Retrieval.BaseURL, cfg.Retrieval.Timeout)
	ingestQueue := redis.NewQueue(cfg.Redis.QueueKey)

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService)
	policyUsecase := usecases.NewPolicyUsecase(policyRepo, fileStore, ingestQueue)
	dashboardUsecase := usecases.NewDashboardUsecase(policyRepo)
	chatbotUsecase := usecases.NewChatbotUsecase(retrievalClient, cfg.Retrieval.DefaultTopK)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	policyHandler := handlers.NewPolicyHandler(policyUsecase, cfg.Storage.MaxUploads)
	dashboardHandler := handlers.NewDashboardHandler(dashboardUsecase)
	chatbotHandler := handlers.NewChatbotHandler(chatbotUsecase)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var worker *jobs.IngestionWorker
	if cfg.Retrieval.WorkerEnabled {
		worker = jobs.NewIngestionWorker(ingestQueue, retrievalClient)
		go worker.Start(ctx)
	}

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIRoutes(r, routeDeps{
		authHandler:      authHandler,
		policyHandler:    policyHandler,
		dashboardHandler: dashboardHandler,
		chatbotHandler:   chatbotHandler,
		authMiddleware:   middleware.AuthMiddleware(jwtService),
	})

	// Serve uploaded documents from disk when using local storage
	if localDir != "" {
		r.Static(cfg.Storage.URLPrefix, localDir)
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		if worker != nil {
			worker.Stop()
		}
		cancel()
	}()

	log.Printf("Policy Vault backend starting on port %s", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// buildFileStore selects the storage driver. The returned dir is non-empty
// only for local storage, where the router must serve the files itself.
func buildFileStore(cfg config.StorageConfig) (repositories.FileStore, string, error) {
	switch cfg.Driver {
	case "minio":
		client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
			Secure: cfg.MinioUseSSL,
		})
		if err != nil {
			return nil, "", err
		}
		store, err := storage.NewMinioStore(context.Background(), client, cfg.MinioBucket, cfg.URLPrefix)
		if err != nil {
			return nil, "", err
		}
		return store, "", nil
	default:
		store, err := storage.NewLocalStore(cfg.UploadDir, cfg.URLPrefix)
		if err != nil {
			return nil, "", err
		}
		return store, store.Dir(), nil
	}
}
