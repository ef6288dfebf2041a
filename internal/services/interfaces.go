package services

import "cashtrackr/internal/models"

// UserServicer defines the contract for the account lifecycle:
// registration, confirmation, login, and the password reset/change flows.
type UserServicer interface {
	CreateAccount(name, email, password string) (*models.User, error)
	ConfirmAccount(token string) error
	Login(email, password string) (*models.User, error)
	ForgotPassword(email string) error
	ValidateToken(token string) error
	ResetPassword(token, newPassword string) error
	UpdatePassword(userID uint, currentPassword, newPassword string) error
	CheckPassword(userID uint, password string) error
	GetUserByID(id uint) (*models.User, error)
}

// BudgetServicer defines the contract for budget business logic. Lookups by
// ID are unscoped on purpose: the ownership check belongs to the middleware
// guard so a missing budget reads as 404 before 403.
type BudgetServicer interface {
	CreateBudget(userID uint, name string, amount float64) (*models.Budget, error)
	GetUserBudgets(userID uint) ([]models.Budget, error)
	GetBudgetByID(budgetID uint) (*models.Budget, error)
	GetBudgetWithExpenses(budgetID uint) (*models.Budget, error)
	UpdateBudget(budget *models.Budget, name string, amount float64) (*models.Budget, error)
	DeleteBudget(budget *models.Budget) error
}

// ExpenseServicer defines the contract for expense business logic. Every
// operation is scoped to a parent budget that the guard has already
// resolved and authorized.
type ExpenseServicer interface {
	CreateExpense(budgetID uint, name string, amount float64) (*models.Expense, error)
	GetExpenseByID(budgetID, expenseID uint) (*models.Expense, error)
	UpdateExpense(expense *models.Expense, name string, amount float64) (*models.Expense, error)
	DeleteExpense(expense *models.Expense) error
}
