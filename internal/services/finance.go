package services

import (
	"errors"
	"time"

	"github.com/consultly-app/consultly/internal/models"
	"github.com/consultly-app/consultly/pkg/response"
	"gorm.io/gorm"
)

// FinanceService owns the nested collections of a project: income entries,
// expense entries and employee assignments. Every mutation recomputes the
// project's stored totals in a separate read-modify-write pass, then runs
// the cross-entity synchronization the mutation implies.
type FinanceService struct {
	db       *gorm.DB
	invoices *InvoiceService
	sync     *SyncService
}

func NewFinanceService(db *gorm.DB, invoices *InvoiceService, sync *SyncService) *FinanceService {
	return &FinanceService{db: db, invoices: invoices, sync: sync}
}

type AddIncomeRequest struct {
	Date          *time.Time `json:"date"`
	Amount        float64    `json:"amount" binding:"required,gt=0"`
	InvoiceNumber string     `json:"invoice_number"`
	ReceivedBy    string     `json:"received_by"`
	Description   string     `json:"description"`
}

type UpdateIncomeRequest struct {
	Date          *time.Time `json:"date"`
	Amount        *float64   `json:"amount" binding:"omitempty,gt=0"`
	InvoiceNumber *string    `json:"invoice_number"`
	ReceivedBy    *string    `json:"received_by"`
	Description   *string    `json:"description"`
}

type AddExpenseRequest struct {
	Date          *time.Time `json:"date"`
	Amount        float64    `json:"amount" binding:"required,gt=0"`
	Description   string     `json:"description"`
	Vendor        string     `json:"vendor"`
	Category      string     `json:"category" binding:"required"`
	InvoiceNumber string     `json:"invoice_number"`
	EmployeeID    *uint      `json:"employee_id"`
}

// UpdateExpenseRequest merges the provided fields into an expense entry.
// EmployeeID reassigns the expense to another employee; the literal value 0
// clears the employee reference.
type UpdateExpenseRequest struct {
	Date          *time.Time `json:"date"`
	Amount        *float64   `json:"amount" binding:"omitempty,gt=0"`
	Description   *string    `json:"description"`
	Vendor        *string    `json:"vendor"`
	Category      *string    `json:"category"`
	InvoiceNumber *string    `json:"invoice_number"`
	EmployeeID    *uint      `json:"employee_id"`
}

type AddEmployeeRequest struct {
	EmployeeID       uint       `json:"employee_id" binding:"required"`
	Position         string     `json:"position"`
	ProjectStartDate *time.Time `json:"project_start_date"`
}

type UpdateEmployeeRequest struct {
	Position         *string    `json:"position"`
	ProjectStartDate *time.Time `json:"project_start_date"`
}

func (s *FinanceService) project(id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}
	return &project, nil
}

func (s *FinanceService) user(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("employee not found")
		}
		return nil, err
	}
	return &user, nil
}

// resolveInvoiceNumber generates a number when none was supplied, and
// rejects an explicit one that is already in use.
func (s *FinanceService) resolveInvoiceNumber(requested string) (string, error) {
	if requested == "" {
		return s.invoices.Generate()
	}
	taken, err := s.invoices.InUse(requested)
	if err != nil {
		return "", err
	}
	if taken {
		return "", response.NewConflict("invoice number already in use")
	}
	return requested, nil
}

// checkInvoiceChange validates a new invoice number on an update, ignoring
// the entry's own current number.
func (s *FinanceService) checkInvoiceChange(current, next string) error {
	if next == current {
		return nil
	}
	if next == "" {
		return response.NewBadRequest("invoice number cannot be empty")
	}
	taken, err := s.invoices.InUse(next)
	if err != nil {
		return err
	}
	if taken {
		return response.NewConflict("invoice number already in use")
	}
	return nil
}

// RecomputeTotals re-derives the project's stored income and expense totals
// from its entries. Deliberately a separate read-modify-write pass: a
// concurrent mutation between the sums and the update is last-writer-wins.
func (s *FinanceService) RecomputeTotals(projectID uint) error {
	var income, expenses float64

	if err := s.db.Model(&models.IncomeEntry{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&income).Error; err != nil {
		return err
	}
	if err := s.db.Model(&models.ExpenseEntry{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&expenses).Error; err != nil {
		return err
	}

	return s.db.Model(&models.Project{}).
		Where("id = ?", projectID).
		Updates(map[string]interface{}{
			"total_income":   income,
			"total_expenses": expenses,
		}).Error
}

// --- Income entries ---

func (s *FinanceService) ListIncome(projectID uint) ([]models.IncomeEntry, error) {
	if _, err := s.project(projectID); err != nil {
		return nil, err
	}
	var entries []models.IncomeEntry
	if err := s.db.Where("project_id = ?", projectID).
		Order("date DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *FinanceService) AddIncome(projectID uint, req *AddIncomeRequest) (*models.IncomeEntry, error) {
	project, err := s.project(projectID)
	if err != nil {
		return nil, err
	}

	number, err := s.resolveInvoiceNumber(req.InvoiceNumber)
	if err != nil {
		return nil, err
	}

	entry := models.IncomeEntry{
		ProjectID:     project.ID,
		Date:          dateOrNow(req.Date),
		Amount:        req.Amount,
		InvoiceNumber: number,
		ReceivedBy:    req.ReceivedBy,
		Description:   req.Description,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}

	if err := s.RecomputeTotals(project.ID); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *FinanceService) incomeEntry(projectID, entryID uint) (*models.IncomeEntry, error) {
	var entry models.IncomeEntry
	err := s.db.Where("id = ? AND project_id = ?", entryID, projectID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("income entry not found")
		}
		return nil, err
	}
	return &entry, nil
}

func (s *FinanceService) UpdateIncome(projectID, entryID uint, req *UpdateIncomeRequest) (*models.IncomeEntry, error) {
	entry, err := s.incomeEntry(projectID, entryID)
	if err != nil {
		return nil, err
	}

	if req.InvoiceNumber != nil {
		if err := s.checkInvoiceChange(entry.InvoiceNumber, *req.InvoiceNumber); err != nil {
			return nil, err
		}
		entry.InvoiceNumber = *req.InvoiceNumber
	}
	if req.Date != nil {
		entry.Date = *req.Date
	}
	if req.Amount != nil {
		entry.Amount = *req.Amount
	}
	if req.ReceivedBy != nil {
		entry.ReceivedBy = *req.ReceivedBy
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}

	if err := s.db.Save(entry).Error; err != nil {
		return nil, err
	}
	if err := s.RecomputeTotals(projectID); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *FinanceService) RemoveIncome(projectID, entryID uint) error {
	entry, err := s.incomeEntry(projectID, entryID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(entry).Error; err != nil {
		return err
	}
	return s.RecomputeTotals(projectID)
}

// --- Expense entries ---

func (s *FinanceService) ListExpenses(projectID uint) ([]models.ExpenseEntry, error) {
	if _, err := s.project(projectID); err != nil {
		return nil, err
	}
	var entries []models.ExpenseEntry
	if err := s.db.Where("project_id = ?", projectID).
		Order("date DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *FinanceService) AddExpense(projectID uint, req *AddExpenseRequest) (*models.ExpenseEntry, error) {
	project, err := s.project(projectID)
	if err != nil {
		return nil, err
	}

	number, err := s.resolveInvoiceNumber(req.InvoiceNumber)
	if err != nil {
		return nil, err
	}

	entry := models.ExpenseEntry{
		ProjectID:     project.ID,
		Date:          dateOrNow(req.Date),
		Amount:        req.Amount,
		Description:   req.Description,
		Vendor:        req.Vendor,
		Category:      req.Category,
		InvoiceNumber: number,
	}

	if req.EmployeeID != nil {
		employee, err := s.user(*req.EmployeeID)
		if err != nil {
			return nil, err
		}
		entry.EmployeeID = &employee.ID
		entry.EmployeeName = employee.Name
		entry.EmployeeEmail = employee.Email
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	if err := s.RecomputeTotals(project.ID); err != nil {
		return nil, err
	}

	if err := s.sync.PushPayment(&entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *FinanceService) expenseEntry(projectID, entryID uint) (*models.ExpenseEntry, error) {
	var entry models.ExpenseEntry
	err := s.db.Where("id = ? AND project_id = ?", entryID, projectID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("expense entry not found")
		}
		return nil, err
	}
	return &entry, nil
}

func (s *FinanceService) UpdateExpense(projectID, entryID uint, req *UpdateExpenseRequest) (*models.ExpenseEntry, error) {
	entry, err := s.expenseEntry(projectID, entryID)
	if err != nil {
		return nil, err
	}
	previousEmployee := entry.EmployeeID

	if req.InvoiceNumber != nil {
		if err := s.checkInvoiceChange(entry.InvoiceNumber, *req.InvoiceNumber); err != nil {
			return nil, err
		}
		entry.InvoiceNumber = *req.InvoiceNumber
	}
	if req.Date != nil {
		entry.Date = *req.Date
	}
	if req.Amount != nil {
		entry.Amount = *req.Amount
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Vendor != nil {
		entry.Vendor = *req.Vendor
	}
	if req.Category != nil {
		entry.Category = *req.Category
	}
	if req.EmployeeID != nil {
		if *req.EmployeeID == 0 {
			entry.EmployeeID = nil
			entry.EmployeeName = ""
			entry.EmployeeEmail = ""
		} else {
			employee, err := s.user(*req.EmployeeID)
			if err != nil {
				return nil, err
			}
			entry.EmployeeID = &employee.ID
			entry.EmployeeName = employee.Name
			entry.EmployeeEmail = employee.Email
		}
	}

	if err := s.db.Save(entry).Error; err != nil {
		return nil, err
	}
	if err := s.RecomputeTotals(projectID); err != nil {
		return nil, err
	}

	// Pull the payment from the old employee on reassignment or clearing,
	// then re-push so the payment row mirrors the updated entry.
	if previousEmployee != nil &&
		(entry.EmployeeID == nil || *entry.EmployeeID != *previousEmployee) {
		if err := s.sync.PullPayment(*previousEmployee, entry); err != nil {
			return nil, err
		}
	}
	if err := s.sync.PushPayment(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *FinanceService) RemoveExpense(projectID, entryID uint) error {
	entry, err := s.expenseEntry(projectID, entryID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(entry).Error; err != nil {
		return err
	}
	if err := s.RecomputeTotals(projectID); err != nil {
		return err
	}

	if entry.EmployeeID != nil {
		if err := s.sync.PullPayment(*entry.EmployeeID, entry); err != nil {
			return err
		}
	}
	return nil
}

// --- Employee assignments ---

func (s *FinanceService) ListEmployees(projectID uint) ([]models.EmployeeAssignment, error) {
	if _, err := s.project(projectID); err != nil {
		return nil, err
	}
	var assignments []models.EmployeeAssignment
	if err := s.db.Where("project_id = ?", projectID).
		Order("id ASC").Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (s *FinanceService) AddEmployee(projectID uint, req *AddEmployeeRequest) (*models.EmployeeAssignment, error) {
	project, err := s.project(projectID)
	if err != nil {
		return nil, err
	}
	employee, err := s.user(req.EmployeeID)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.EmployeeAssignment{}).
		Where("project_id = ? AND employee_id = ?", project.ID, employee.ID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, response.NewConflict("employee already assigned to this project")
	}

	position := req.Position
	if position == "" {
		position = employee.Position
	}
	startDate := project.StartDate
	if req.ProjectStartDate != nil {
		startDate = *req.ProjectStartDate
	}

	assignment := models.EmployeeAssignment{
		ProjectID:        project.ID,
		EmployeeID:       employee.ID,
		EmployeeName:     employee.Name,
		Email:            employee.Email,
		Position:         position,
		ProjectStartDate: startDate,
	}
	if err := s.db.Create(&assignment).Error; err != nil {
		return nil, err
	}
	// Staffing changes no money, but every roster mutation goes through the
	// same recompute pass as the financial ones.
	if err := s.RecomputeTotals(project.ID); err != nil {
		return nil, err
	}

	if err := s.sync.AddAssignment(employee.ID, project.ID); err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (s *FinanceService) employeeAssignment(projectID, assignmentID uint) (*models.EmployeeAssignment, error) {
	var assignment models.EmployeeAssignment
	err := s.db.Where("id = ? AND project_id = ?", assignmentID, projectID).First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("employee assignment not found")
		}
		return nil, err
	}
	return &assignment, nil
}

func (s *FinanceService) UpdateEmployee(projectID, assignmentID uint, req *UpdateEmployeeRequest) (*models.EmployeeAssignment, error) {
	assignment, err := s.employeeAssignment(projectID, assignmentID)
	if err != nil {
		return nil, err
	}

	if req.Position != nil {
		assignment.Position = *req.Position
	}
	if req.ProjectStartDate != nil {
		assignment.ProjectStartDate = *req.ProjectStartDate
	}

	if err := s.db.Save(assignment).Error; err != nil {
		return nil, err
	}
	if err := s.RecomputeTotals(projectID); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *FinanceService) RemoveEmployee(projectID, assignmentID uint) error {
	assignment, err := s.employeeAssignment(projectID, assignmentID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(assignment).Error; err != nil {
		return err
	}
	if err := s.RecomputeTotals(projectID); err != nil {
		return err
	}
	return s.sync.RemoveAssignment(assignment.EmployeeID, assignment.ProjectID)
}

func dateOrNow(t *time.Time) time.Time {
	if t != nil {
		return *t
	}
	return time.Now()
}
