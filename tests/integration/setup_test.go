package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cashtrackr/internal/handlers"
	"cashtrackr/internal/logger"
	"cashtrackr/internal/middleware"
	"cashtrackr/internal/models"
	"cashtrackr/internal/services"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Mailer *captureMailer
	Router *gin.Engine
}

// captureMailer records outgoing mail so tests can read the one-time codes
// a real user would receive.
type captureMailer struct {
	confirmTokens map[string]string
	resetTokens   map[string]string
}

func newCaptureMailer() *captureMailer {
	return &captureMailer{
		confirmTokens: make(map[string]string),
		resetTokens:   make(map[string]string),
	}
}

func (m *captureMailer) SendConfirmationEmail(_, email, token string) error {
	m.confirmTokens[email] = token
	return nil
}

func (m *captureMailer) SendPasswordResetToken(_, email, token string) error {
	m.resetTokens[email] = token
	return nil
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:itestdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Budget{},
		&models.Expense{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	mailer := newCaptureMailer()

	// Services
	userService := services.NewUserService(db, mailer)
	budgetService := services.NewBudgetService(db)
	expenseService := services.NewExpenseService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")

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

	budgets := api.Group("/budgets")
	budgets.Use(middleware.AuthMiddleware())
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.POST("", budgetHandler.CreateBudget)

	guarded := budgets.Group("/:budgetId")
	guarded.Use(middleware.ResolveBudget(budgetService), middleware.AuthorizeBudgetOwner())
	guarded.GET("", budgetHandler.GetBudget)
	guarded.PUT("", budgetHandler.UpdateBudget)
	guarded.DELETE("", budgetHandler.DeleteBudget)
	guarded.POST("/expenses", expenseHandler.CreateExpense)

	expenses := guarded.Group("/expenses/:expenseId")
	expenses.Use(middleware.ResolveExpense(expenseService))
	expenses.GET("", expenseHandler.GetExpense)
	expenses.PUT("", expenseHandler.UpdateExpense)
	expenses.DELETE("", expenseHandler.DeleteExpense)

	return &testApp{DB: db, Mailer: mailer, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// parseString parses the bare string payloads the API uses for confirmations.
func parseString(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var result string
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("expected bare string payload: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser walks a user through registration and confirmation.
func (app *testApp) registerUser(t *testing.T, email, password string) {
	t.Helper()
	body := fmt.Sprintf(`{"name":"Test User","email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/auth/create-account", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("registration failed: %d %s", rec.Code, rec.Body.String())
	}

	code, ok := app.Mailer.confirmTokens[email]
	if !ok {
		t.Fatalf("no confirmation email captured for %s", email)
	}
	rec = app.request("POST", "/api/auth/confirm-account", fmt.Sprintf(`{"token":%q}`, code), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("confirmation failed: %d %s", rec.Code, rec.Body.String())
	}
}

// createBudget creates a budget and looks up its ID through the list endpoint.
func (app *testApp) createBudget(t *testing.T, token, name string, amount float64) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"amount":%v}`, name, amount)
	rec := app.request("POST", "/api/budgets", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("budget creation failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/budgets", "", token)
	var budgets []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &budgets); err != nil {
		t.Fatalf("failed to parse budget list: %v", err)
	}
	for _, b := range budgets {
		if b["name"] == name {
			return b["id"].(float64)
		}
	}
	t.Fatalf("created budget %q missing from list", name)
	return 0
}

func budgetPath(budgetID float64) string {
	return fmt.Sprintf("/api/budgets/%d", int(budgetID))
}

func expensePathOf(budgetID, expenseID float64) string {
	return fmt.Sprintf("/api/budgets/%d/expenses/%d", int(budgetID), int(expenseID))
}

// loginUser logs in and returns the session token.
func (app *testApp) loginUser(t *testing.T, email, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseString(t, rec)
}
