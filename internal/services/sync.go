package services

import (
	"github.com/consultly-app/consultly/internal/models"
	"github.com/consultly-app/consultly/pkg/logger"
	"github.com/consultly-app/consultly/pkg/response"
	"gorm.io/gorm"
)

// SyncService maintains the denormalized links between projects and users:
// payment-history rows mirroring employee expenses, and the user-side
// assigned-projects set mirroring a project's employee roster.
//
// The project write and the user write are separate store operations with
// no transaction spanning both. Every second write is journaled to
// sync_logs so that failed rows mark state needing manual reconciliation.
type SyncService struct {
	db *gorm.DB
}

func NewSyncService(db *gorm.DB) *SyncService {
	return &SyncService{db: db}
}

// PushPayment writes (or replaces) the payment-history row on the expense's
// employee. The expense entry id is the correlation key, so re-pushing after
// an update replaces the previous row instead of duplicating it.
func (s *SyncService) PushPayment(expense *models.ExpenseEntry) error {
	if expense.EmployeeID == nil {
		return nil
	}
	userID := *expense.EmployeeID

	err := s.db.Where("expense_entry_id = ?", expense.ID).
		Delete(&models.PaymentRecord{}).Error
	if err == nil {
		record := models.PaymentRecord{
			UserID:         userID,
			ProjectID:      expense.ProjectID,
			ExpenseEntryID: expense.ID,
			Category:       expense.Category,
			Amount:         expense.Amount,
			Description:    expense.Description,
			Vendor:         expense.Vendor,
			InvoiceNumber:  expense.InvoiceNumber,
			Date:           expense.Date,
		}
		err = s.db.Create(&record).Error
	}

	s.journal(models.SyncActionPushPayment, userID, expense.ProjectID, expense.ID, err)
	if err != nil {
		return reconciliationError("record payment on employee history")
	}
	return nil
}

// PullPayment removes the payment-history row correlated with the expense
// entry from the given employee's history.
func (s *SyncService) PullPayment(userID uint, expense *models.ExpenseEntry) error {
	err := s.db.Where("user_id = ? AND expense_entry_id = ?", userID, expense.ID).
		Delete(&models.PaymentRecord{}).Error

	s.journal(models.SyncActionPullPayment, userID, expense.ProjectID, expense.ID, err)
	if err != nil {
		return reconciliationError("remove payment from employee history")
	}
	return nil
}

// AddAssignment ensures the project appears in the user's assigned-projects
// set. Set-union semantics: re-adding an existing pair is a no-op.
func (s *SyncService) AddAssignment(userID, projectID uint) error {
	assignment := models.ProjectAssignment{UserID: userID, ProjectID: projectID}
	err := s.db.Where("user_id = ? AND project_id = ?", userID, projectID).
		FirstOrCreate(&assignment).Error

	s.journal(models.SyncActionAddAssignment, userID, projectID, 0, err)
	if err != nil {
		return reconciliationError("add project to employee assignments")
	}
	return nil
}

// RemoveAssignment pulls the project from the user's assigned-projects set.
func (s *SyncService) RemoveAssignment(userID, projectID uint) error {
	err := s.db.Where("user_id = ? AND project_id = ?", userID, projectID).
		Delete(&models.ProjectAssignment{}).Error

	s.journal(models.SyncActionRemoveAssignment, userID, projectID, 0, err)
	if err != nil {
		return reconciliationError("remove project from employee assignments")
	}
	return nil
}

// journal records the outcome of a cross-entity write. A journal failure is
// logged but never fails the caller.
func (s *SyncService) journal(action string, userID, projectID, entryID uint, opErr error) {
	entry := models.SyncLog{
		Action:    action,
		UserID:    userID,
		ProjectID: projectID,
		EntryID:   entryID,
		Outcome:   models.SyncOutcomeApplied,
	}
	if opErr != nil {
		entry.Outcome = models.SyncOutcomeFailed
		entry.Detail = opErr.Error()
	}
	if err := s.db.Create(&entry).Error; err != nil {
		logger.Errorf("sync journal write failed (action=%s user=%d project=%d): %v",
			action, userID, projectID, err)
	}
}

func reconciliationError(what string) *response.AppError {
	return response.NewServerError("synchronization failed: " + what + "; manual reconciliation required")
}
