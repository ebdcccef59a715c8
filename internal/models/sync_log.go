package models

import "time"

// Sync actions
const (
	SyncActionPushPayment      = "push_payment"
	SyncActionPullPayment      = "pull_payment"
	SyncActionAddAssignment    = "add_assignment"
	SyncActionRemoveAssignment = "remove_assignment"
)

// Sync outcome values
const (
	SyncOutcomeApplied = "applied"
	SyncOutcomeFailed  = "failed"
)

// SyncLog journals every cross-entity second write (project doc and user doc
// are updated in separate store operations with no transaction spanning
// both). The intent is recorded before the write and the outcome after, so
// failed rows mark state needing manual reconciliation.
type SyncLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Action    string    `gorm:"size:100;index;not null" json:"action"` // push_payment, pull_payment, add_assignment, remove_assignment
	UserID    uint      `gorm:"index" json:"user_id"`
	ProjectID uint      `gorm:"index" json:"project_id"`
	EntryID   uint      `json:"entry_id"` // correlated expense/assignment entry, 0 when n/a
	Outcome   string    `gorm:"size:20;index" json:"outcome"`
	Detail    string    `gorm:"type:text" json:"detail"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (SyncLog) TableName() string { return "sync_logs" }
