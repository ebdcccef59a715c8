package services

import (
	"errors"
	"strings"

	"github.com/consultly-app/consultly/internal/config"
	"github.com/consultly-app/consultly/internal/models"
	"github.com/consultly-app/consultly/internal/utils"
	"github.com/consultly-app/consultly/pkg/response"
	"gorm.io/gorm"
)

type AuthService struct {
	db    *gorm.DB
	email *EmailService
	jwt   config.JWTConfig
}

func NewAuthService(db *gorm.DB, email *EmailService, jwt config.JWTConfig) *AuthService {
	return &AuthService{db: db, email: email, jwt: jwt}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

func (s *AuthService) userByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", normalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// Login authenticates by email + password and issues a bearer token. An
// unknown email and a wrong password are distinct outcomes: not-found
// versus unauthorized.
func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	user, err := s.userByEmail(req.Email)
	if err != nil {
		return nil, err
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, response.NewUnauthorized("invalid credentials")
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Name, user.Role, s.jwt.ExpireHour)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Token: token, User: user}, nil
}

// ForgotPassword issues a short-lived reset token, persists it as the
// expected token on the user, and emails the reset link. The email is the
// whole point of this operation, so a send failure fails the request.
func (s *AuthService) ForgotPassword(req *ForgotPasswordRequest) error {
	user, err := s.userByEmail(req.Email)
	if err != nil {
		return err
	}

	token, err := utils.GenerateResetToken(user.Email, s.jwt.ResetExpireSecs)
	if err != nil {
		return err
	}

	if err := s.db.Model(user).Update("pw_reset_token", token).Error; err != nil {
		return err
	}

	if err := s.email.SendPasswordReset(user.Email, user.Name, token); err != nil {
		return response.NewServerError("failed to send password reset email")
	}
	return nil
}

// ResetPassword validates a reset token against both its signature and the
// expected token persisted on the user, then replaces the password and
// invalidates the token.
func (s *AuthService) ResetPassword(req *ResetPasswordRequest) error {
	claims, err := utils.ParseResetToken(req.Token)
	if err != nil {
		if errors.Is(err, utils.ErrTokenExpired) {
			return response.NewUnauthorized("reset token expired")
		}
		return response.NewUnauthorized("invalid reset token")
	}

	user, err := s.userByEmail(claims.Email)
	if err != nil {
		return err
	}
	if user.PwResetToken == "" || user.PwResetToken != req.Token {
		return response.NewUnauthorized("reset token no longer valid")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return err
	}

	return s.db.Model(user).Updates(map[string]interface{}{
		"password":       hash,
		"pw_reset_token": "",
	}).Error
}

// GetUserByID loads the authenticated user's profile.
func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
