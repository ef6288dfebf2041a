package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "cashtrackr/internal/errors"
	"cashtrackr/internal/models"
)

const expenseKey = "expense"

// ExpenseResolver fetches an expense scoped to its parent budget. Scoping by
// budget ID makes a cross-budget probe indistinguishable from a missing
// expense (404).
type ExpenseResolver interface {
	GetExpenseByID(budgetID, expenseID uint) (*models.Expense, error)
}

// ResolveExpense parses the :expenseId path parameter and fetches the
// expense under the budget already resolved by ResolveBudget. Must run
// after ResolveBudget and AuthorizeBudgetOwner.
func ResolveExpense(expenses ExpenseResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("expenseId"), 10, 32)
		if err != nil || id == 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": []string{"ID no valido"}})
			return
		}

		budget, ok := BudgetFromContext(c)
		if !ok {
			abortWithError(c, apperrors.ErrInternalServer)
			return
		}

		expense, err := expenses.GetExpenseByID(budget.ID, uint(id))
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(expenseKey, expense)
		c.Next()
	}
}

// ExpenseFromContext returns the expense attached by ResolveExpense.
func ExpenseFromContext(c *gin.Context) (*models.Expense, bool) {
	v, exists := c.Get(expenseKey)
	if !exists {
		return nil, false
	}
	expense, ok := v.(*models.Expense)
	return expense, ok
}
