package app

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"aiowedding/internal/config"
	"aiowedding/internal/handlers"
	"aiowedding/internal/middleware"
	"aiowedding/internal/pdf"
	"aiowedding/internal/repositories"
	"aiowedding/internal/routes"
	"aiowedding/internal/services"
)

func Run() {
	cfg := config.LoadConfig()

	middleware.SetJWTKey(cfg.Auth.JWTSecret)

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	// === Repos ===
	credentialRepo := repositories.NewCredentialRepository(db)
	resetRepo := repositories.NewPasswordResetRepository(db)
	adRepo := repositories.NewAdvertisementRepository(db)
	planningRepo := repositories.NewPlanningRepository(db)

	// === Services ===
	authService := services.NewAuthService()
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	telegramService := services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.OpsChatID)

	userService := services.NewUserService(credentialRepo, emailService, authService, telegramService)
	codeTTL, tokenTTL := cfg.Reset.TTLs()
	resetService := services.NewPasswordResetService(
		credentialRepo, resetRepo, emailService, authService,
		codeTTL, tokenTTL,
	)
	adService := services.NewAdvertisementService(adRepo)
	planningService := services.NewPlanningService(planningRepo)

	pdfGen := pdf.NewReportGenerator(cfg.Files.RootDir)
	reportService := services.NewReportService(credentialRepo, adRepo, pdfGen)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	resetHandler := handlers.NewPasswordResetHandler(resetService)
	adHandler := handlers.NewAdvertisementHandler(adService)
	planningHandler := handlers.NewPlanningHandler(planningService, userService)
	reportHandler := handlers.NewReportHandler(reportService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authHandler,
		userHandler,
		resetHandler,
		adHandler,
		planningHandler,
		reportHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server failed: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
