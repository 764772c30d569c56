package main

import (
	"os"

	"commission-backend/internal/database"
	"commission-backend/internal/handler"
	"commission-backend/internal/mailer"
	"commission-backend/internal/middleware"
	"commission-backend/internal/repository"
	"commission-backend/internal/service"
	"commission-backend/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load("configs/.env"); err != nil {
		log.Info("no configs/.env file found")
	}

	dsn := "postgres://" + envOr("DB_USER", "postgres") +
		":" + envOr("DB_PASSWORD", "postgres") +
		"@" + envOr("DB_HOST", "localhost") +
		":" + envOr("DB_PORT", "5432") +
		"/" + envOr("DB_NAME", "commissions") +
		"?sslmode=" + envOr("DB_SSLMODE", "disable")

	db, err := database.NewConnection(dsn, log)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	log.Info("connected to PostgreSQL")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub(log)
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	commissionRepo := repository.NewCommissionRepository(db)
	contractRepo := repository.NewContractRepository(db)
	lotRepo := repository.NewLotRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	ruleRepo := repository.NewTriggerRuleRepository(db)
	emailConfigRepo := repository.NewEmailConfigRepository(db)
	txManager := repository.NewTransactionManager(db)

	smtpMailer := mailer.NewSMTPMailerFromEnv()
	recipients := mailer.NewRecipientResolver(emailConfigRepo, log)
	baseURL := envOr("PORTAL_BASE_URL", "http://localhost:3000")

	approvalService := service.NewApprovalService(
		commissionRepo, lotRepo, historyRepo, recipients, smtpMailer, wsHub, baseURL, log)
	triggerService := service.NewTriggerService(commissionRepo, contractRepo, log)
	ruleService := service.NewRuleService(ruleRepo)
	maintenanceService := service.NewMaintenanceService(commissionRepo, historyRepo, txManager, log)
	emailConfigService := service.NewEmailConfigService(emailConfigRepo)

	// Initialize Handlers
	commissionHandler := handler.NewCommissionHandler(approvalService, triggerService, maintenanceService)
	contractHandler := handler.NewContractHandler(triggerService, contractRepo)
	ruleHandler := handler.NewRuleHandler(ruleService)
	emailConfigHandler := handler.NewEmailConfigHandler(emailConfigService)
	historyHandler := handler.NewHistoryHandler(historyRepo, lotRepo)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{envOr("FRONTEND_URL", "http://localhost:3000")}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept", middleware.ActorHeader}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))
	router.Use(middleware.Actor())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c)
	})

	// Register API Routes
	commissionHandler.RegisterRoutes(router.Group(""))
	contractHandler.RegisterRoutes(router.Group(""))
	ruleHandler.RegisterRoutes(router.Group(""))
	emailConfigHandler.RegisterRoutes(router.Group(""))
	historyHandler.RegisterRoutes(router.Group(""))

	port := envOr("PORT", "8080")
	log.WithField("port", port).Info("starting server")
	if err := router.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
