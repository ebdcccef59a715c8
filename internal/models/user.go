package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// User represents an employee of the consultancy
type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"size:200;not null" json:"name"`
	Email         string         `gorm:"uniqueIndex;size:255;not null" json:"email"` // stored lowercase
	Password      string         `gorm:"size:255" json:"-"`                          // bcrypt hash
	Role          string         `gorm:"size:50;default:User" json:"role"`           // Admin, User
	Status        string         `gorm:"size:50" json:"status"`
	Position      string         `gorm:"size:100" json:"position"`
	ContactNumber string         `gorm:"size:50" json:"contact_number"`
	WorkLocation  string         `gorm:"size:200" json:"work_location"`
	StartDate     *time.Time     `json:"start_date"`
	PwResetToken  string         `gorm:"size:500" json:"-"` // expected password-reset token
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	PaymentHistory   []PaymentRecord     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"payment_history,omitempty"`
	AssignedProjects []ProjectAssignment `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"assigned_projects,omitempty"`
}

// PaymentRecord is a denormalized copy of a project expense paid to this
// user. ExpenseEntryID is the correlation key back to the project's expense
// entry; removal/reassignment of the expense uses it to locate this row.
type PaymentRecord struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"index;not null" json:"user_id"`
	ProjectID      uint      `gorm:"index;not null" json:"project_id"`
	ExpenseEntryID uint      `gorm:"index;not null" json:"expense_entry_id"`
	Category       string    `gorm:"size:100;not null" json:"category"`
	Amount         float64   `gorm:"not null" json:"amount"`
	Description    string    `gorm:"size:500" json:"description"`
	Vendor         string    `gorm:"size:200" json:"vendor"`
	InvoiceNumber  string    `gorm:"size:50" json:"invoice_number"`
	Date           time.Time `json:"date"`
	CreatedAt      time.Time `json:"created_at"`
}

// ProjectAssignment is the user-side denormalized reference to a project
// the user is staffed on. It mirrors the project's employees collection and
// is kept in sync by the sync service, not by the store.
type ProjectAssignment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_project;not null" json:"user_id"`
	ProjectID uint      `gorm:"uniqueIndex:idx_user_project;not null" json:"project_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string              { return "users" }
func (PaymentRecord) TableName() string     { return "payment_records" }
func (ProjectAssignment) TableName() string { return "project_assignments" }
