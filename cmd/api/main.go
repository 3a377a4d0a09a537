package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"nivesh/internal/batch"
	"nivesh/internal/config"
	"nivesh/internal/database"
	"nivesh/internal/handlers"
	"nivesh/internal/logger"
	"nivesh/internal/middleware"
	"nivesh/internal/quotes"
	"nivesh/internal/services"
	"nivesh/internal/validator"

	_ "nivesh/internal/docs" // Import swagger docs
)

// @title           Nivesh API
// @version         1.0
// @description     Nivesh is a personal investment tracker covering fixed deposits, gold, real estate and stocks, with daily revaluation of every holding.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Quote provider, with a Redis read-through cache when configured
	httpClient := &http.Client{Timeout: appConfig.QuoteTimeout}
	var quoteProvider quotes.Provider = quotes.NewHTTPProvider(httpClient, appConfig.QuoteAPIURL)
	if appConfig.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: appConfig.RedisAddr})
		quoteProvider = quotes.NewCachedProvider(quoteProvider, rdb, appConfig.QuoteCacheTTL)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	masterService := services.NewMasterService(db)
	fdService := services.NewFixedDepositService(db, masterService)
	goldService := services.NewGoldService(db, masterService)
	realEstateService := services.NewRealEstateService(db, masterService)
	stockService := services.NewStockService(db)
	portfolioService := services.NewPortfolioService(db)
	revaluationService := services.NewRevaluationService(db, quoteProvider)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	masterHandler := handlers.NewMasterHandler(masterService)
	fdHandler := handlers.NewFixedDepositHandler(fdService, auditService)
	goldHandler := handlers.NewGoldHandler(goldService, auditService)
	realEstateHandler := handlers.NewRealEstateHandler(realEstateService, auditService)
	stockHandler := handlers.NewStockHandler(stockService, auditService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)

	// Daily revaluation batch
	scheduler := batch.NewScheduler()
	if err := scheduler.AddJob(appConfig.RevalueSchedule, batch.NewRevaluationJob(revaluationService)); err != nil {
		return fmt.Errorf("failed to register revaluation job: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Scraper ingest routes, authenticated by API key
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(appConfig.PipelineAPIKey))
	pipeline.POST("/gold-rates", masterHandler.RecordGoldRate)
	pipeline.POST("/area-prices", masterHandler.CreateAreaPrice)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Master data routes
	master := protected.Group("/master")
	master.POST("/banks", masterHandler.CreateBank)
	master.GET("/banks", masterHandler.ListBanks)
	master.POST("/states", masterHandler.CreateState)
	master.GET("/states", masterHandler.ListStates)
	master.POST("/cities", masterHandler.CreateCity)
	master.GET("/cities", masterHandler.ListCities)
	master.POST("/property-types", masterHandler.CreatePropertyType)
	master.GET("/property-types", masterHandler.ListPropertyTypes)
	master.POST("/sub-property-types", masterHandler.CreateSubPropertyType)
	master.GET("/sub-property-types", masterHandler.ListSubPropertyTypes)
	master.POST("/area-prices", masterHandler.CreateAreaPrice)
	master.GET("/area-prices", masterHandler.ListAreaPrices)
	master.GET("/gold-rates/latest", masterHandler.LatestGoldRate)

	// Fixed deposit routes
	deposits := protected.Group("/fixed-deposits")
	deposits.POST("", fdHandler.Create)
	deposits.GET("", fdHandler.List)
	deposits.GET("/:id", fdHandler.Get)
	deposits.PUT("/:id", fdHandler.Update)
	deposits.DELETE("/:id", fdHandler.Delete)

	// Gold routes
	gold := protected.Group("/gold")
	gold.POST("", goldHandler.Create)
	gold.GET("", goldHandler.List)
	gold.GET("/:id", goldHandler.Get)
	gold.PUT("/:id", goldHandler.Update)
	gold.DELETE("/:id", goldHandler.Delete)

	// Real estate routes
	realEstate := protected.Group("/real-estate")
	realEstate.POST("", realEstateHandler.Create)
	realEstate.GET("", realEstateHandler.List)
	realEstate.GET("/:id", realEstateHandler.Get)
	realEstate.PUT("/:id", realEstateHandler.Update)
	realEstate.DELETE("/:id", realEstateHandler.Delete)

	// Stock routes
	stocks := protected.Group("/stocks")
	stocks.POST("/buy", stockHandler.Buy)
	stocks.POST("/sell", stockHandler.Sell)
	stocks.GET("/positions", stockHandler.ListPositions)
	stocks.GET("/transactions", stockHandler.ListTransactions)

	// Portfolio dashboard routes
	portfolio := protected.Group("/portfolio")
	portfolio.GET("/summary", portfolioHandler.Summary)
	portfolio.GET("/top-gainers", portfolioHandler.TopGainers)
	portfolio.GET("/highest-growth/:sector", portfolioHandler.HighestGrowth)

	log.Infof("Starting Nivesh backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
