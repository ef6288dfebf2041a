package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cashtrackr/internal/errors"
	"cashtrackr/internal/middleware"
	"cashtrackr/internal/services"
)

// ExpenseHandler handles expense-related requests. Expenses are only
// reachable through their parent budget's path, so the budget guard has
// always run first and id-addressed routes also carry a resolved expense.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpenseRequest represents the payload for creating or updating an expense.
type ExpenseRequest struct {
	Name   string  `json:"name" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

var expenseMessages = map[string]string{
	"Name":           "El nombre del gasto no puede ir vacio",
	"Amount":         "El gasto debe ser mayor a cero",
	"amount.numeric": "Cantidad no valida",
}

// CreateExpense adds an expense to the resolved budget.
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	budget, ok := middleware.BudgetFromContext(c)
	if !ok {
		respondWithError(c, apperrors.ErrInternalServer)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithValidationErrors(c, &req, err, expenseMessages)
		return
	}

	if _, err := h.expenseService.CreateExpense(budget.ID, req.Name, req.Amount); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, "Gasto agregado correctamente")
}

// GetExpense returns the resolved expense.
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	expense, ok := middleware.ExpenseFromContext(c)
	if !ok {
		respondWithError(c, apperrors.ErrInternalServer)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// UpdateExpense updates the resolved expense's name and amount.
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	expense, ok := middleware.ExpenseFromContext(c)
	if !ok {
		respondWithError(c, apperrors.ErrInternalServer)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithValidationErrors(c, &req, err, expenseMessages)
		return
	}

	if _, err := h.expenseService.UpdateExpense(expense, req.Name, req.Amount); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, "Gasto actualizado correctamente")
}

// DeleteExpense deletes the resolved expense.
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	expense, ok := middleware.ExpenseFromContext(c)
	if !ok {
		respondWithError(c, apperrors.ErrInternalServer)
		return
	}

	if err := h.expenseService.DeleteExpense(expense); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, "Gasto eliminado correctamente")
}
