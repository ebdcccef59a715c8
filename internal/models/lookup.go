package models

import "time"

// Category is a flat lookup label for project and expense categories.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Category  string    `gorm:"uniqueIndex;size:100;not null" json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Position is a flat lookup label for employee positions.
type Position struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Position  string    `gorm:"uniqueIndex;size:100;not null" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Category) TableName() string { return "categories" }
func (Position) TableName() string { return "positions" }
