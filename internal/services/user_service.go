package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"cashtrackr/internal/email"
	apperrors "cashtrackr/internal/errors"
	"cashtrackr/internal/logger"
	"cashtrackr/internal/models"
	"cashtrackr/internal/token"
)

// userService handles the account lifecycle business logic.
type userService struct {
	db     *gorm.DB
	mailer email.Sender
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB, mailer email.Sender) UserServicer {
	return &userService{db: db, mailer: mailer}
}

// CreateAccount registers a new user in pending-confirmation state and
// mails the confirmation code. Email delivery is best-effort: a failed send
// is logged but never fails the registration.
//
// The duplicate check compares emails byte-for-byte, so "A@x.com" and
// "a@x.com" register as distinct accounts. Known product behavior; do not
// change without a product decision.
func (s *userService) CreateAccount(name, email, password string) (*models.User, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	confirmationToken := token.Generate()
	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Token:    &confirmationToken,
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.mailer.SendConfirmationEmail(user.Name, user.Email, confirmationToken); err != nil {
		logger.Get().Errorw("failed to send confirmation email",
			"email", user.Email,
			"error", err.Error(),
		)
	}

	return user, nil
}

// ConfirmAccount flips the user holding the token to confirmed and clears
// the token. The transition is a compare-and-clear UPDATE so two racing
// confirms of the same code cannot both succeed.
func (s *userService) ConfirmAccount(confirmationToken string) error {
	result := s.db.Model(&models.User{}).
		Where("token = ?", confirmationToken).
		Updates(map[string]interface{}{"confirmed": true, "token": nil})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrInvalidToken
	}
	return nil
}

// Login authenticates a user by email and password. The checks are ordered
// and each short-circuits with a distinct status: unknown email (404),
// unconfirmed account (403), wrong password (401).
func (s *userService) Login(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if !user.Confirmed {
		return nil, apperrors.ErrAccountNotConfirmed
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperrors.ErrWrongPassword
	}

	return &user, nil
}

// ForgotPassword issues a fresh reset code for the user, overwriting any
// outstanding confirmation or reset code, and mails it best-effort.
func (s *userService) ForgotPassword(userEmail string) error {
	var user models.User
	if err := s.db.Where("email = ?", userEmail).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resetToken := token.Generate()
	if err := s.db.Model(&user).Update("token", resetToken).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.mailer.SendPasswordResetToken(user.Name, user.Email, resetToken); err != nil {
		logger.Get().Errorw("failed to send password reset email",
			"email", user.Email,
			"error", err.Error(),
		)
	}

	return nil
}

// ValidateToken checks whether any user holds the token. It is a pure
// probe: the token is not consumed.
func (s *userService) ValidateToken(resetToken string) error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("token = ?", resetToken).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrTokenNotFound
	}
	return nil
}

// ResetPassword replaces the password of the user holding the token and
// clears the token, as a single compare-and-clear UPDATE.
func (s *userService) ResetPassword(resetToken, newPassword string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := s.db.Model(&models.User{}).
		Where("token = ?", resetToken).
		Updates(map[string]interface{}{"password": string(hashedPassword), "token": nil})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTokenNotFound
	}
	return nil
}

// UpdatePassword replaces the password of an already-authenticated user
// after verifying the current one.
func (s *userService) UpdatePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)) != nil {
		return apperrors.ErrCurrentPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Model(user).Update("password", string(hashedPassword)).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// CheckPassword verifies the authenticated user's password without
// changing anything.
func (s *userService) CheckPassword(userID uint, password string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return apperrors.ErrPasswordCheck
	}
	return nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}
