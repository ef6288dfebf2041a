package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "cashtrackr/internal/errors"
	"cashtrackr/internal/logger"
	"cashtrackr/internal/models"
)

const budgetKey = "budget"

// BudgetResolver fetches a budget by its ID regardless of owner. The guard
// needs the unscoped lookup so a missing budget is a 404 before ownership is
// ever evaluated.
type BudgetResolver interface {
	GetBudgetByID(budgetID uint) (*models.Budget, error)
}

// ResolveBudget parses the :budgetId path parameter, fetches the budget, and
// attaches it to the request context for downstream handlers. Responds 400
// on a malformed ID and 404 when the budget does not exist.
func ResolveBudget(budgets BudgetResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("budgetId"), 10, 32)
		if err != nil || id == 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": []string{"ID no valido"}})
			return
		}

		budget, err := budgets.GetBudgetByID(uint(id))
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(budgetKey, budget)
		c.Next()
	}
}

// AuthorizeBudgetOwner compares the resolved budget's owner against the
// authenticated identity and rejects mismatches with 403. It must run after
// AuthMiddleware and ResolveBudget; it never mutates the budget.
func AuthorizeBudgetOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrUnauthorized.Message})
			return
		}

		budget, ok := BudgetFromContext(c)
		if !ok {
			abortWithError(c, apperrors.ErrInternalServer)
			return
		}

		if budget.UserID != userID {
			abortWithError(c, apperrors.ErrNotOwner)
			return
		}
		c.Next()
	}
}

// BudgetFromContext returns the budget attached by ResolveBudget.
func BudgetFromContext(c *gin.Context) (*models.Budget, bool) {
	v, exists := c.Get(budgetKey)
	if !exists {
		return nil, false
	}
	budget, ok := v.(*models.Budget)
	return budget, ok
}

// abortWithError writes an AppError as the flat {"error": message} payload
// the API uses everywhere, logging unexpected errors without leaking them.
func abortWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.AbortWithStatusJSON(appErr.StatusCode, gin.H{"error": appErr.Message})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.AbortWithStatusJSON(apperrors.ErrInternalServer.StatusCode, gin.H{"error": apperrors.ErrInternalServer.Message})
}
