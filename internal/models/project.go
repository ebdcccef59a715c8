package models

import (
	"time"

	"gorm.io/gorm"
)

// Project statuses
const (
	StatusCompleted  = "Completed"
	StatusInProgress = "InProgress"
	StatusOnHold     = "OnHold"
)

// Project is the owning aggregate for income, expense and employee entries.
// TotalIncome and TotalExpenses are derived sums recomputed after every
// mutation to the owned collections.
type Project struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	Name                string         `gorm:"size:200;not null" json:"name"`
	StartDate           time.Time      `gorm:"not null" json:"start_date"`
	EndDate             *time.Time     `json:"end_date"`
	Category            string         `gorm:"size:100;not null" json:"category"`
	Status              string         `gorm:"size:50;not null" json:"status"` // Completed, InProgress, OnHold
	AgreedAmount        float64        `gorm:"default:0" json:"agreed_amount"`
	ClientContactNumber string         `gorm:"size:50" json:"client_contact_number"`
	ClientEmail         string         `gorm:"size:255" json:"client_email"`
	TotalIncome         float64        `gorm:"default:0" json:"total_income"`
	TotalExpenses       float64        `gorm:"default:0" json:"total_expenses"`
	CreatedBy           uint           `gorm:"not null" json:"created_by"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`

	IncomeDetails  []IncomeEntry        `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"income_details,omitempty"`
	ExpenseDetails []ExpenseEntry       `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"expense_details,omitempty"`
	Employees      []EmployeeAssignment `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"employees,omitempty"`
}

// IncomeEntry is a payment received on a project. The invoice number is
// unique across all projects' income and expense entries.
type IncomeEntry struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ProjectID     uint      `gorm:"index;not null" json:"project_id"`
	Date          time.Time `json:"date"`
	Amount        float64   `gorm:"not null" json:"amount"`
	InvoiceNumber string    `gorm:"uniqueIndex;size:50;not null" json:"invoice_number"`
	ReceivedBy    string    `gorm:"size:200" json:"received_by"`
	Description   string    `gorm:"size:500" json:"description"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ExpenseEntry is a payment made on a project. When EmployeeID is set the
// expense is a payment to that employee and a correlated PaymentRecord
// exists on the user.
type ExpenseEntry struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ProjectID     uint      `gorm:"index;not null" json:"project_id"`
	Date          time.Time `json:"date"`
	Amount        float64   `gorm:"not null" json:"amount"`
	Description   string    `gorm:"size:500" json:"description"`
	Vendor        string    `gorm:"size:200" json:"vendor"`
	Category      string    `gorm:"size:100;not null" json:"category"`
	InvoiceNumber string    `gorm:"uniqueIndex;size:50;not null" json:"invoice_number"`
	EmployeeID    *uint     `gorm:"index" json:"employee_id"`
	EmployeeName  string    `gorm:"size:200" json:"employee_name"`  // snapshot
	EmployeeEmail string    `gorm:"size:255" json:"employee_email"` // snapshot
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// EmployeeAssignment staffs a user on a project. At most one assignment per
// employee per project; name/email/position are denormalized snapshots.
type EmployeeAssignment struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ProjectID        uint      `gorm:"uniqueIndex:idx_project_employee;not null" json:"project_id"`
	EmployeeID       uint      `gorm:"uniqueIndex:idx_project_employee;not null" json:"employee_id"`
	EmployeeName     string    `gorm:"size:200" json:"employee_name"`
	Email            string    `gorm:"size:255" json:"email"`
	Position         string    `gorm:"size:100" json:"position"`
	ProjectStartDate time.Time `json:"project_start_date"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Project) TableName() string            { return "projects" }
func (IncomeEntry) TableName() string        { return "income_entries" }
func (ExpenseEntry) TableName() string       { return "expense_entries" }
func (EmployeeAssignment) TableName() string { return "employee_assignments" }
