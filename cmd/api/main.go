package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"cashtrackr/internal/config"
	"cashtrackr/internal/database"
	"cashtrackr/internal/email"
	"cashtrackr/internal/handlers"
	"cashtrackr/internal/logger"
	"cashtrackr/internal/middleware"
	"cashtrackr/internal/services"
)

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

	// Initialize services
	db := dbManager.DB()
	mailer := email.NewSMTPSender(appConfig)
	userService := services.NewUserService(db, mailer)
	budgetService := services.NewBudgetService(db)
	expenseService := services.NewExpenseService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.POST("/create-account", authHandler.CreateAccount)
	auth.POST("/confirm-account", authHandler.ConfirmAccount)
	auth.POST("/login", authHandler.Login)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/validate-token", authHandler.ValidateToken)
	auth.POST("/reset-password/:token", authHandler.ResetPassword)
	auth.GET("/user", middleware.AuthMiddleware(), authHandler.GetUser)
	auth.POST("/update-password", middleware.AuthMiddleware(), authHandler.UpdatePassword)
	auth.POST("/check-password", middleware.AuthMiddleware(), authHandler.CheckPassword)

	// Budget routes; every id-addressed route runs the ownership guard
	budgets := api.Group("/budgets")
	budgets.Use(middleware.AuthMiddleware())
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.POST("", budgetHandler.CreateBudget)

	guarded := budgets.Group("/:budgetId")
	guarded.Use(middleware.ResolveBudget(budgetService), middleware.AuthorizeBudgetOwner())
	guarded.GET("", budgetHandler.GetBudget)
	guarded.PUT("", budgetHandler.UpdateBudget)
	guarded.DELETE("", budgetHandler.DeleteBudget)

	// Expense routes, nested under an already-authorized budget
	guarded.POST("/expenses", expenseHandler.CreateExpense)

	expenses := guarded.Group("/expenses/:expenseId")
	expenses.Use(middleware.ResolveExpense(expenseService))
	expenses.GET("", expenseHandler.GetExpense)
	expenses.PUT("", expenseHandler.UpdateExpense)
	expenses.DELETE("", expenseHandler.DeleteExpense)

	log.Infof("Starting CashTrackr backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
