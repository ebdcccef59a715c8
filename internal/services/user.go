package services

import (
	"errors"
	"strings"
	"time"

	"github.com/consultly-app/consultly/internal/config"
	"github.com/consultly-app/consultly/internal/models"
	"github.com/consultly-app/consultly/internal/utils"
	"github.com/consultly-app/consultly/pkg/logger"
	"github.com/consultly-app/consultly/pkg/response"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	db    *gorm.DB
	email *EmailService
	jwt   config.JWTConfig
}

func NewUserService(db *gorm.DB, email *EmailService, jwt config.JWTConfig) *UserService {
	return &UserService{db: db, email: email, jwt: jwt}
}

type CreateUserRequest struct {
	Name          string     `json:"name" binding:"required"`
	Email         string     `json:"email" binding:"required,email"`
	Role          string     `json:"role" binding:"omitempty,oneof=Admin User"`
	Status        string     `json:"status"`
	Position      string     `json:"position"`
	ContactNumber string     `json:"contact_number"`
	WorkLocation  string     `json:"work_location"`
	StartDate     *time.Time `json:"start_date"`
}

type UpdateUserRequest struct {
	Name          *string    `json:"name"`
	Email         *string    `json:"email" binding:"omitempty,email"`
	Role          *string    `json:"role" binding:"omitempty,oneof=Admin User"`
	Status        *string    `json:"status"`
	Position      *string    `json:"position"`
	ContactNumber *string    `json:"contact_number"`
	WorkLocation  *string    `json:"work_location"`
	StartDate     *time.Time `json:"start_date"`
}

// Create registers a user with a random temporary password and emails them
// a password-setup link. The welcome email is best-effort: a send failure
// is logged but does not fail the creation.
func (s *UserService) Create(req *CreateUserRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)

	var count int64
	if err := s.db.Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, response.NewConflict("a user with this email already exists")
	}

	// The temporary password is never disclosed; the user sets their own
	// through the reset-token flow.
	hash, err := utils.HashPassword(uuid.NewString())
	if err != nil {
		return nil, err
	}

	resetToken, err := utils.GenerateResetToken(email, s.jwt.ResetExpireSecs)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	user := models.User{
		Name:          req.Name,
		Email:         email,
		Password:      hash,
		Role:          role,
		Status:        req.Status,
		Position:      req.Position,
		ContactNumber: req.ContactNumber,
		WorkLocation:  req.WorkLocation,
		StartDate:     req.StartDate,
		PwResetToken:  resetToken,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	if err := s.email.SendWelcome(user.Email, user.Name, resetToken); err != nil {
		logger.Warnf("welcome email to %s failed: %v", user.Email, err)
	}

	return &user, nil
}

// List returns all users.
func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Search matches name or email by case-insensitive substring.
func (s *UserService) Search(query string) ([]models.User, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var users []models.User
	err := s.db.
		Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern).
		Order("name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// Update merges the provided fields into the user. An email change must
// not collide with another account.
func (s *UserService) Update(id uint, req *UpdateUserRequest) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != user.Email {
			var count int64
			if err := s.db.Model(&models.User{}).
				Where("email = ? AND id <> ?", email, user.ID).
				Count(&count).Error; err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, response.NewConflict("a user with this email already exists")
			}
			user.Email = email
		}
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	if req.Position != nil {
		user.Position = *req.Position
	}
	if req.ContactNumber != nil {
		user.ContactNumber = *req.ContactNumber
	}
	if req.WorkLocation != nil {
		user.WorkLocation = *req.WorkLocation
	}
	if req.StartDate != nil {
		user.StartDate = req.StartDate
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user. A user still staffed on projects cannot be
// deleted; the project-side assignments must be removed first so both
// sides of the denormalized link are unwound.
func (s *UserService) Delete(id uint) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}

	var assignments int64
	if err := s.db.Model(&models.ProjectAssignment{}).
		Where("user_id = ?", user.ID).
		Count(&assignments).Error; err != nil {
		return err
	}
	if assignments > 0 {
		return response.NewConflict("user is assigned to projects and cannot be deleted")
	}

	return s.db.Delete(user).Error
}

// PaymentHistory returns the denormalized payment records on a user,
// newest first.
func (s *UserService) PaymentHistory(id uint) ([]models.PaymentRecord, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}

	var records []models.PaymentRecord
	err := s.db.Where("user_id = ?", id).
		Order("date DESC, id DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// AssignedProjects resolves the user's assignment set to full project rows.
func (s *UserService) AssignedProjects(id uint) ([]models.Project, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}

	var projects []models.Project
	err := s.db.
		Joins("JOIN project_assignments pa ON pa.project_id = projects.id").
		Where("pa.user_id = ?", id).
		Order("projects.created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}
