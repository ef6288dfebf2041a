package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cashtrackr/internal/errors"
	"cashtrackr/internal/middleware"
	"cashtrackr/internal/services"
)

// BudgetHandler handles budget-related requests. Every id-addressed route
// runs behind ResolveBudget + AuthorizeBudgetOwner, so handlers read the
// budget from the context instead of re-fetching or re-checking ownership.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// BudgetRequest represents the payload for creating or updating a budget.
type BudgetRequest struct {
	Name   string  `json:"name" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

var budgetMessages = map[string]string{
	"Name":           "El nombre del presupuesto no puede ir vacio",
	"Amount":         "Presupuesto debe ser mayor a cero",
	"amount.numeric": "El monto debe ser un numero",
}

// GetBudgets lists the authenticated user's budgets, newest first. The
// owner filter always comes from the session, never from the query.
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgets, err := h.budgetService.GetUserBudgets(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, budgets)
}

// CreateBudget creates a budget owned by the authenticated user. Any owner
// supplied in the body is ignored.
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithValidationErrors(c, &req, err, budgetMessages)
		return
	}

	if _, err := h.budgetService.CreateBudget(userID, req.Name, req.Amount); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, "Presupuesto creado")
}

// GetBudget returns the resolved budget with its expenses.
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	budget, ok := middleware.BudgetFromContext(c)
	if !ok {
		respondWithError(c, apperrors.ErrInternalServer)
		return
	}

	withExpenses, err := h.budgetService.GetBudgetWithExpenses(budget.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, withExpenses)
}

// UpdateBudget updates the resolved budget's name and amount.
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	budget, ok := middleware.BudgetFromContext(c)
	if !ok {
		respondWithError(c, apperrors.ErrInternalServer)
		return
	}

	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithValidationErrors(c, &req, err, budgetMessages)
		return
	}

	if _, err := h.budgetService.UpdateBudget(budget, req.Name, req.Amount); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, "Presupuesto actualizado correctamente")
}

// DeleteBudget deletes the resolved budget and its expenses.
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	budget, ok := middleware.BudgetFromContext(c)
	if !ok {
		respondWithError(c, apperrors.ErrInternalServer)
		return
	}

	if err := h.budgetService.DeleteBudget(budget); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, "Presupuesto eliminado correctamente")
}
