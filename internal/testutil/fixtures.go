package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"cashtrackr/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a confirmed user with a hashed password and unique email.
// The password is always "password123".
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a confirmed user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:      fmt.Sprintf("Test User %d", nextID()),
		Email:     email,
		Password:  string(hash),
		Confirmed: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateUnconfirmedUser creates a user still holding a confirmation token.
func CreateUnconfirmedUser(t *testing.T, db *gorm.DB, email, token string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:     fmt.Sprintf("Test User %d", nextID()),
		Email:    email,
		Password: string(hash),
		Token:    &token,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create unconfirmed test user: %v", err)
	}
	return user
}

// CreateTestBudget creates a budget owned by the given user.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID uint) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID: userID,
		Name:   fmt.Sprintf("Test Budget %d", nextID()),
		Amount: 30000,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestExpense creates an expense under the given budget.
func CreateTestExpense(t *testing.T, db *gorm.DB, budgetID uint) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		BudgetID: budgetID,
		Name:     fmt.Sprintf("Test Expense %d", nextID()),
		Amount:   500,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}
