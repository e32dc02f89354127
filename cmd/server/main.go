package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ykri.backend/internal/config"
	"ykri.backend/internal/infrastructure/repositories"
	"ykri.backend/internal/interfaces/http/handlers"
	"ykri.backend/internal/interfaces/http/middleware"
	"ykri.backend/internal/usecases"
	"ykri.backend/pkg/jwt"
	"ykri.backend/pkg/logger"
	"ykri.backend/pkg/redis"
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
	newSessionStore = redis.NewSessionStore
	runServer       = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
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
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	demandRepo := repositories.NewDemandRepository(db)
	offerRepo := repositories.NewOfferRepository(db)
	proposalRepo := repositories.NewProposalRepository(db)
	reservationRepo := repositories.NewReservationRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	templateRepo := repositories.NewMachineTemplateRepository(db)
	vipRequestRepo := repositories.NewVIPRequestRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize Session Store
	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	// Initialize usecases
	notifier := usecases.NewNotificationUsecase(messageRepo)
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService, sessionStore, cfg.JWT.RefreshExpiry)
	userUsecase := usecases.NewUserUsecase(userRepo)
	demandUsecase := usecases.NewDemandUsecase(demandRepo, userRepo, notifier, cfg.Matching.NearbyRadiusKm)
	offerUsecase := usecases.NewOfferUsecase(offerRepo, userRepo, templateRepo, reservationRepo, notifier, cfg.Matching.NearbyRadiusKm)
	proposalUsecase := usecases.NewProposalUsecase(proposalRepo, demandRepo, userRepo, uow, notifier)
	reservationUsecase := usecases.NewReservationUsecase(reservationRepo, offerRepo, userRepo, uow, notifier)
	messageUsecase := usecases.NewMessageUsecase(messageRepo, userRepo)
	templateUsecase := usecases.NewMachineTemplateUsecase(templateRepo)
	vipRequestUsecase := usecases.NewVIPRequestUsecase(vipRequestRepo, userRepo, uow, notifier)
	contractUsecase := usecases.NewContractUsecase(demandRepo, offerRepo, proposalRepo, reservationRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase, userRepo)
	userHandler := handlers.NewUserHandler(userUsecase)
	demandHandler := handlers.NewDemandHandler(demandUsecase, contractUsecase)
	offerHandler := handlers.NewOfferHandler(offerUsecase, contractUsecase)
	proposalHandler := handlers.NewProposalHandler(proposalUsecase)
	reservationHandler := handlers.NewReservationHandler(reservationUsecase, contractUsecase)
	messageHandler := handlers.NewMessageHandler(messageUsecase)
	templateHandler := handlers.NewMachineTemplateHandler(templateUsecase)
	vipRequestHandler := handlers.NewVIPRequestHandler(vipRequestUsecase)

	// Create auth middleware; session ids are exchanged for access tokens
	authMiddleware := middleware.AuthMiddleware(jwtService, func(c *gin.Context, sessionID string) (string, error) {
		return authUsecase.ResolveSession(c.Request.Context(), sessionID)
	})

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:            authHandler,
		userHandler:            userHandler,
		demandHandler:          demandHandler,
		offerHandler:           offerHandler,
		proposalHandler:        proposalHandler,
		reservationHandler:     reservationHandler,
		messageHandler:         messageHandler,
		machineTemplateHandler: templateHandler,
		vipRequestHandler:      vipRequestHandler,
		authMiddleware:         authMiddleware,
	})

	log.Printf("YKRI backend starting on port %s", cfg.Server.Port)
	log.Printf("API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
