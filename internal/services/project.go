package services

import (
	"errors"
	"time"

	"github.com/consultly-app/consultly/internal/models"
	"github.com/consultly-app/consultly/pkg/response"
	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type CreateProjectRequest struct {
	Name                string     `json:"name" binding:"required"`
	StartDate           time.Time  `json:"start_date" binding:"required"`
	EndDate             *time.Time `json:"end_date"`
	Category            string     `json:"category" binding:"required"`
	Status              string     `json:"status" binding:"required,oneof=Completed InProgress OnHold"`
	AgreedAmount        float64    `json:"agreed_amount" binding:"omitempty,gte=0"`
	ClientContactNumber string     `json:"client_contact_number"`
	ClientEmail         string     `json:"client_email" binding:"omitempty,email"`
}

type UpdateProjectRequest struct {
	Name                *string    `json:"name"`
	StartDate           *time.Time `json:"start_date"`
	EndDate             *time.Time `json:"end_date"`
	Category            *string    `json:"category"`
	Status              *string    `json:"status" binding:"omitempty,oneof=Completed InProgress OnHold"`
	AgreedAmount        *float64   `json:"agreed_amount" binding:"omitempty,gte=0"`
	ClientContactNumber *string    `json:"client_contact_number"`
	ClientEmail         *string    `json:"client_email" binding:"omitempty,email"`
}

// ProjectStatusCount aggregates project counts per status.
type ProjectStatusCount struct {
	Total      int64 `json:"total"`
	Completed  int64 `json:"completed"`
	InProgress int64 `json:"in_progress"`
	OnHold     int64 `json:"on_hold"`
}

// ProjectName is the id+name projection used by pickers.
type ProjectName struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Create creates a new project owned by the calling user.
func (s *ProjectService) Create(req *CreateProjectRequest, userID uint) (*models.Project, error) {
	project := models.Project{
		Name:                req.Name,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		Category:            req.Category,
		Status:              req.Status,
		AgreedAmount:        req.AgreedAmount,
		ClientContactNumber: req.ClientContactNumber,
		ClientEmail:         req.ClientEmail,
		CreatedBy:           userID,
	}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List returns the projects visible to the caller: admins see everything,
// users see only projects they are staffed on. Any other role is rejected
// outright instead of silently falling through.
func (s *ProjectService) List(role string, userID uint) ([]models.Project, error) {
	if role == models.RoleAdmin {
		var projects []models.Project
		if err := s.db.Order("created_at DESC").Find(&projects).Error; err != nil {
			return nil, err
		}
		return projects, nil
	}
	if role == models.RoleUser {
		return s.listForEmployee(userID)
	}
	return nil, response.NewForbidden("unrecognized role")
}

// AllocatedForUser returns the projects a user is staffed on.
func (s *ProjectService) AllocatedForUser(userID uint) ([]models.Project, error) {
	return s.listForEmployee(userID)
}

func (s *ProjectService) listForEmployee(userID uint) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.
		Joins("JOIN employee_assignments ea ON ea.project_id = projects.id").
		Where("ea.employee_id = ?", userID).
		Order("projects.created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// StatusCount returns project counts grouped by status plus the total.
func (s *ProjectService) StatusCount() (*ProjectStatusCount, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := s.db.Model(&models.Project{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := &ProjectStatusCount{}
	for _, row := range rows {
		counts.Total += row.Count
		switch row.Status {
		case models.StatusCompleted:
			counts.Completed = row.Count
		case models.StatusInProgress:
			counts.InProgress = row.Count
		case models.StatusOnHold:
			counts.OnHold = row.Count
		}
	}
	return counts, nil
}

// Names returns the id+name projection of all projects.
func (s *ProjectService) Names() ([]ProjectName, error) {
	var names []ProjectName
	if err := s.db.Model(&models.Project{}).
		Select("id, name").
		Order("name ASC").
		Scan(&names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

// GetByID returns a project with its employee roster. Income and expense
// entries are served by their own list operations, not embedded here.
func (s *ProjectService) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.Preload("Employees").First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}
	return &project, nil
}

// Update merges the provided top-level fields into the project. Nested
// collections are mutated through their own operations only.
func (s *ProjectService) Update(id uint, req *UpdateProjectRequest) (*models.Project, error) {
	project, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.StartDate != nil {
		project.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}
	if req.Category != nil {
		project.Category = *req.Category
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if req.AgreedAmount != nil {
		project.AgreedAmount = *req.AgreedAmount
	}
	if req.ClientContactNumber != nil {
		project.ClientContactNumber = *req.ClientContactNumber
	}
	if req.ClientEmail != nil {
		project.ClientEmail = *req.ClientEmail
	}

	if err := s.db.Save(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes a project and its income/expense entries. A project with
// assigned employees cannot be deleted; the roster must be emptied first so
// the user-side assignment sets are unwound through the normal removal path.
func (s *ProjectService) Delete(id uint) error {
	project, err := s.GetByID(id)
	if err != nil {
		return err
	}

	var employees int64
	if err := s.db.Model(&models.EmployeeAssignment{}).
		Where("project_id = ?", project.ID).
		Count(&employees).Error; err != nil {
		return err
	}
	if employees > 0 {
		return response.NewConflict("project has assigned employees and cannot be deleted")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).
			Delete(&models.IncomeEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).
			Delete(&models.ExpenseEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(project).Error
	})
}
