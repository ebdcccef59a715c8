package services

import (
	"errors"

	"github.com/consultly-app/consultly/internal/models"
	"github.com/consultly-app/consultly/pkg/response"
	"gorm.io/gorm"
)

// LookupService manages the flat category and position label lists.
type LookupService struct {
	db *gorm.DB
}

func NewLookupService(db *gorm.DB) *LookupService {
	return &LookupService{db: db}
}

type CreateCategoryRequest struct {
	Category string `json:"category" binding:"required"`
}

type CreatePositionRequest struct {
	Position string `json:"position" binding:"required"`
}

func (s *LookupService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("category ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *LookupService) CreateCategory(req *CreateCategoryRequest) (*models.Category, error) {
	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("category = ?", req.Category).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, response.NewConflict("category already exists")
	}

	category := models.Category{Category: req.Category}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *LookupService) UpdateCategory(id uint, req *CreateCategoryRequest) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("category not found")
		}
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("category = ? AND id <> ?", req.Category, id).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, response.NewConflict("category already exists")
	}

	category.Category = req.Category
	if err := s.db.Save(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *LookupService) DeleteCategory(id uint) error {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("category not found")
		}
		return err
	}
	return s.db.Delete(&category).Error
}

func (s *LookupService) ListPositions() ([]models.Position, error) {
	var positions []models.Position
	if err := s.db.Order("position ASC").Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

func (s *LookupService) CreatePosition(req *CreatePositionRequest) (*models.Position, error) {
	var count int64
	if err := s.db.Model(&models.Position{}).
		Where("position = ?", req.Position).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, response.NewConflict("position already exists")
	}

	position := models.Position{Position: req.Position}
	if err := s.db.Create(&position).Error; err != nil {
		return nil, err
	}
	return &position, nil
}

func (s *LookupService) UpdatePosition(id uint, req *CreatePositionRequest) (*models.Position, error) {
	var position models.Position
	if err := s.db.First(&position, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("position not found")
		}
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Position{}).
		Where("position = ? AND id <> ?", req.Position, id).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, response.NewConflict("position already exists")
	}

	position.Position = req.Position
	if err := s.db.Save(&position).Error; err != nil {
		return nil, err
	}
	return &position, nil
}

func (s *LookupService) DeletePosition(id uint) error {
	var position models.Position
	if err := s.db.First(&position, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("position not found")
		}
		return err
	}
	return s.db.Delete(&position).Error
}
