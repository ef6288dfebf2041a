package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	apperrors "cashtrackr/internal/errors"
	"cashtrackr/internal/logger"
	"cashtrackr/internal/middleware"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (uint, error) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return 0, apperrors.ErrUnauthorized
	}
	return userID, nil
}

// respondWithError writes the API's flat JSON error payload
// {"error": message}. If the error is an *AppError it uses the error's
// status code and message. Otherwise it logs the unexpected error and
// returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{"error": appErr.Message})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{"error": apperrors.ErrInternalServer.Message})
}

// respondWithValidationErrors translates a binding failure into the
// {"errors": [...]} payload with the product's per-field messages.
//
// An empty request body binds to the zero value of req, so it is
// re-validated to surface every per-field message instead of a bare EOF.
// messages is keyed by struct field name, with an optional
// "<Field>.numeric" entry for JSON type mismatches.
func respondWithValidationErrors(c *gin.Context, req interface{}, err error, messages map[string]string) {
	if errors.Is(err, io.EOF) {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			err = v.Struct(req)
		}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			if msg, ok := messages[fe.Field()]; ok {
				out = append(out, msg)
			} else {
				out = append(out, apperrors.ErrInvalidInput.Message)
			}
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": out})
		return
	}

	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		if msg, ok := messages[ute.Field+".numeric"]; ok {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{msg}})
			return
		}
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.ErrInvalidInput.Message})
}
