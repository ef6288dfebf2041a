package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "cashtrackr/internal/errors"
	"cashtrackr/internal/models"
)

// expenseService handles expense-related business logic. Every operation
// runs under a budget the guard has already resolved and authorized.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// CreateExpense creates a new expense under the given budget.
func (s *expenseService) CreateExpense(budgetID uint, name string, amount float64) (*models.Expense, error) {
	expense := &models.Expense{
		BudgetID: budgetID,
		Name:     name,
		Amount:   amount,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return expense, nil
}

// GetExpenseByID returns an expense by ID scoped to its parent budget.
// An expense that exists under a different budget is reported as missing.
func (s *expenseService) GetExpenseByID(budgetID, expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ? AND budget_id = ?", expenseID, budgetID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense updates an already-resolved expense's name and amount.
func (s *expenseService) UpdateExpense(expense *models.Expense, name string, amount float64) (*models.Expense, error) {
	updates := map[string]interface{}{"name": name, "amount": amount}
	if err := s.db.Model(expense).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// DeleteExpense deletes an expense.
func (s *expenseService) DeleteExpense(expense *models.Expense) error {
	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
