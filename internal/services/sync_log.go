package services

import (
	"github.com/consultly-app/consultly/internal/models"
	"gorm.io/gorm"
)

// SyncLogService exposes the reconciliation journal to administrators.
type SyncLogService struct {
	db *gorm.DB
}

func NewSyncLogService(db *gorm.DB) *SyncLogService {
	return &SyncLogService{db: db}
}

type SyncLogListRequest struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Action    string `form:"action"`
	Outcome   string `form:"outcome"`
	ProjectID uint   `form:"project_id"`
	UserID    uint   `form:"user_id"`
}

type SyncLogListResponse struct {
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Items    []models.SyncLog `json:"items"`
}

// List returns paginated journal entries, newest first.
func (s *SyncLogService) List(req *SyncLogListRequest) (*SyncLogListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	query := s.db.Model(&models.SyncLog{})

	if req.Action != "" {
		query = query.Where("action = ?", req.Action)
	}
	if req.Outcome != "" {
		query = query.Where("outcome = ?", req.Outcome)
	}
	if req.ProjectID != 0 {
		query = query.Where("project_id = ?", req.ProjectID)
	}
	if req.UserID != 0 {
		query = query.Where("user_id = ?", req.UserID)
	}

	var total int64
	query.Count(&total)

	var items []models.SyncLog
	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).
		Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}

	return &SyncLogListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    items,
	}, nil
}
