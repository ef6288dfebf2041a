package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"cashtrackr/internal/config"
	"cashtrackr/internal/errors"
	"cashtrackr/internal/models"
)

const userIDKey = "userID"

// getJWTKey returns the JWT key from configuration
func getJWTKey() []byte {
	return []byte(config.Get().JWTSecret)
}

// JWTClaims represents the claims in the session token
type JWTClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// GenerateToken signs a session token for a user. Possession of a validly
// signed, unexpired token is the only proof of identity; nothing is stored
// server-side.
func GenerateToken(user *models.User) (string, error) {
	now := jwt.NewNumericDate(time.Now())
	claims := &JWTClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(config.Get().JWTExpirationDur)),
			IssuedAt:  now,
			NotBefore: now,
			Issuer:    "cashtrackr-api",
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getJWTKey())
}

// VerifyToken parses and validates a session token, returning the user ID
// it was issued for. Fails on bad signature, wrong method, or expiry.
func VerifyToken(tokenString string) (uint, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return getJWTKey(), nil
	})
	if err != nil || !token.Valid {
		return 0, errors.ErrInvalidToken
	}
	return claims.UserID, nil
}

// AuthMiddleware verifies the bearer token and sets the user ID in the
// context. Any missing or invalid credential yields the fixed payload
// {"error": "No Autorizado"} with status 401.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errors.ErrUnauthorized.Message})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errors.ErrUnauthorized.Message})
			return
		}

		userID, err := VerifyToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errors.ErrUnauthorized.Message})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserIDFromContext returns the authenticated user ID set by AuthMiddleware.
func UserIDFromContext(c *gin.Context) (uint, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
