package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cashtrackr/internal/errors"
	"cashtrackr/internal/middleware"
	"cashtrackr/internal/services"
	"cashtrackr/internal/token"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	userService services.UserServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService services.UserServicer) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// CreateAccountRequest represents the registration request payload
type CreateAccountRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

var createAccountMessages = map[string]string{
	"Name":     "El nombre no puede ir vacio",
	"Password": "El password es muy corto mínimo 8 caracteres",
	"Email":    "E-mail no valido",
}

// ConfirmAccountRequest carries the 6-digit confirmation code
type ConfirmAccountRequest struct {
	Token string `json:"token" binding:"required,len=6,numeric"`
}

var tokenMessages = map[string]string{
	"Token": "Token no válido",
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

var loginMessages = map[string]string{
	"Email":    "Debe ser un formato de email valido",
	"Password": "El password es obligatorio",
}

// ForgotPasswordRequest carries the account email for a reset code
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

var forgotPasswordMessages = map[string]string{
	"Email": "Debe ser un formato de email valido",
}

// ResetPasswordRequest carries the replacement password
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

var resetPasswordMessages = map[string]string{
	"Password": "El password es muy corto mínimo 8 caracteres",
}

// UpdatePasswordRequest carries the current and replacement passwords
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	Password        string `json:"password" binding:"required,min=8"`
}

var updatePasswordMessages = map[string]string{
	"CurrentPassword": "El password actual no puede ir vacio",
	"Password":        "El password nuevo es muy corto mínimo 8 caracteres",
}

// CheckPasswordRequest carries the password to verify
type CheckPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

var checkPasswordMessages = map[string]string{
	"Password": "El password actual no puede ir vacio",
}

// CreateAccount handles user registration. The account starts unconfirmed
// and the confirmation code goes out by email; no account details are
// returned to the caller.
func (h *AuthHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithValidationErrors(c, &req, err, createAccountMessages)
		return
	}

	if _, err := h.userService.CreateAccount(req.Name, req.Email, req.Password); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, "Cuenta Creada Correctamente")
}

// ConfirmAccount consumes a confirmation code and activates the account.
func (h *AuthHandler) ConfirmAccount(c *gin.Context) {
	var req ConfirmAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithValidationErrors(c, &req, err, tokenMessages)
		return
	}

	if err := h.userService.ConfirmAccount(req.Token); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, "Cuenta confirmada correctamente")
}

// Login authenticates a user and returns a signed session token as the
// sole payload.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithValidationErrors(c, &req, err, loginMessages)
		return
	}

	user, err := h.userService.Login(req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	sessionToken, err := middleware.GenerateToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, sessionToken)
}

// ForgotPassword issues a password reset code by email.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithValidationErrors(c, &req, err, forgotPasswordMessages)
		return
	}

	if err := h.userService.ForgotPassword(req.Email); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, "Revisa tu email para instrucciones")
}

// ValidateToken checks that a reset code is outstanding without consuming
// it, so clients can vet the code before showing the reset form.
func (h *AuthHandler) ValidateToken(c *gin.Context) {
	var req ConfirmAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithValidationErrors(c, &req, err, tokenMessages)
		return
	}

	if err := h.userService.ValidateToken(req.Token); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, "Token valido")
}

// ResetPassword consumes the reset code in the path and stores the new
// password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	resetToken := c.Param("token")
	if len(resetToken) != token.Length {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{tokenMessages["Token"]}})
		return
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithValidationErrors(c, &req, err, resetPasswordMessages)
		return
	}

	if err := h.userService.ResetPassword(resetToken, req.Password); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, "El password se modifico correctamente")
}

// GetUser returns the authenticated user's identity.
func (h *AuthHandler) GetUser(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdatePassword changes the authenticated user's password after
// verifying the current one. The identity comes from the session, never
// the request body.
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithValidationErrors(c, &req, err, updatePasswordMessages)
		return
	}

	if err := h.userService.UpdatePassword(userID, req.CurrentPassword, req.Password); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, "El password se modifico correctamente")
}

// CheckPassword verifies the authenticated user's password.
func (h *AuthHandler) CheckPassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CheckPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithValidationErrors(c, &req, err, checkPasswordMessages)
		return
	}

	if err := h.userService.CheckPassword(userID, req.Password); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, "Password Correcto")
}
