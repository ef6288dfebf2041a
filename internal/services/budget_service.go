package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "cashtrackr/internal/errors"
	"cashtrackr/internal/models"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// CreateBudget creates a new budget owned by the authenticated user. The
// owner always comes from the session, never from the request body.
func (s *budgetService) CreateBudget(userID uint, name string, amount float64) (*models.Budget, error) {
	budget := &models.Budget{
		UserID: userID,
		Name:   name,
		Amount: amount,
	}

	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return budget, nil
}

// GetUserBudgets returns the user's budgets, newest first.
func (s *budgetService) GetUserBudgets(userID uint) ([]models.Budget, error) {
	budgets := []models.Budget{}
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// GetBudgetByID returns a budget by ID without an ownership filter; the
// middleware guard decides whether the caller may see it.
func (s *budgetService) GetBudgetByID(budgetID uint) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.First(&budget, budgetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// GetBudgetWithExpenses returns a budget with its expenses preloaded.
func (s *budgetService) GetBudgetWithExpenses(budgetID uint) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Preload("Expenses").First(&budget, budgetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget updates an already-authorized budget's name and amount.
func (s *budgetService) UpdateBudget(budget *models.Budget, name string, amount float64) (*models.Budget, error) {
	updates := map[string]interface{}{"name": name, "amount": amount}
	if err := s.db.Model(budget).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// DeleteBudget deletes a budget and all of its expenses in one transaction.
func (s *budgetService) DeleteBudget(budget *models.Budget) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("budget_id = ?", budget.ID).Delete(&models.Expense{}).Error; err != nil {
			return err
		}
		return tx.Delete(budget).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
