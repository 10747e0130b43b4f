package main

import (
	"fmt"
	"net/http"
	"os"

	"splitnest/internal/cache"
	"splitnest/internal/config"
	"splitnest/internal/database"
	"splitnest/internal/handlers"
	"splitnest/internal/logger"
	"splitnest/internal/middleware"
	"splitnest/internal/services"
	"splitnest/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "splitnest/internal/docs" // Import swagger docs
)

// @title           SplitNest API
// @version         1.0
// @description     SplitNest is a household budgeting application that tracks shared and personal expenses, resolves payment plans into monthly amounts, and settles who owes whom.
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
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom validators
	validator.Register()

	// Initialize services. All mutating services share the overview cache
	// as their invalidator.
	db := dbManager.DB()
	overviewCache := cache.NewHouseholdCache[*services.Overview](512, appConfig.OverviewCacheTTL)

	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	householdService := services.NewHouseholdService(db)
	salaryService := services.NewSalaryService(db, householdService, overviewCache)
	expenseService := services.NewExpenseService(db, householdService, overviewCache)
	overrideService := services.NewOverrideService(db, expenseService, overviewCache)
	paymentService := services.NewPaymentService(db, expenseService, overrideService, householdService, overviewCache)
	savingService := services.NewSavingService(db, householdService, overviewCache)
	dashboardService := services.NewDashboardService(db, householdService, salaryService, overviewCache)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	householdHandler := handlers.NewHouseholdHandler(householdService, auditService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, overrideService, auditService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, auditService)
	salaryHandler := handlers.NewSalaryHandler(salaryService)
	savingHandler := handlers.NewSavingHandler(savingService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, auditService)

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

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Household routes
	households := protected.Group("/households")
	households.POST("", householdHandler.CreateHousehold)
	households.POST("/join", householdHandler.JoinHousehold)
	households.GET("/me", householdHandler.GetHousehold)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)
	expenses.GET("/:id/timeline", expenseHandler.GetTimeline)
	expenses.PUT("/:id/override", expenseHandler.UpsertOverride)
	expenses.DELETE("/:id/override", expenseHandler.DeleteOverride)
	expenses.POST("/:id/paid", paymentHandler.MarkPaid)
	expenses.DELETE("/:id/paid", paymentHandler.UndoPaid)
	expenses.POST("/:id/skip", paymentHandler.Skip)
	expenses.DELETE("/:id/skip", paymentHandler.Unskip)

	// Payment status routes
	payments := protected.Group("/payments")
	payments.GET("/statuses", paymentHandler.GetBatchStatuses)

	// Salary routes
	salaries := protected.Group("/salaries")
	salaries.PUT("", salaryHandler.SetSalary)
	salaries.GET("", salaryHandler.GetSalaries)

	// Saving routes
	savings := protected.Group("/savings")
	savings.POST("", savingHandler.CreateSaving)
	savings.GET("", savingHandler.GetSavings)
	savings.DELETE("/:id", savingHandler.DeleteSaving)

	// Dashboard routes
	dashboard := protected.Group("/dashboard")
	dashboard.GET("/overview", dashboardHandler.GetOverview)
	dashboard.POST("/settlement", dashboardHandler.MarkSettlementPaid)

	log.Infof("Starting SplitNest backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
