package models

import (
	"fmt"

	"github.com/consultly-app/consultly/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return nil
}

func AutoMigrate() error {
	return DB.AutoMigrate(
		&User{},
		&PaymentRecord{},
		&ProjectAssignment{},
		&Project{},
		&IncomeEntry{},
		&ExpenseEntry{},
		&EmployeeAssignment{},
		&Category{},
		&Position{},
		&SyncLog{},
	)
}

func GetDB() *gorm.DB {
	return DB
}

// SeedDefaultData creates lookup rows used by a fresh install.
func SeedDefaultData() error {
	defaultCategories := []string{"Consulting", "Development", "Maintenance"}
	for _, label := range defaultCategories {
		var count int64
		DB.Model(&Category{}).Where("category = ?", label).Count(&count)
		if count == 0 {
			if err := DB.Create(&Category{Category: label}).Error; err != nil {
				return err
			}
		}
	}

	defaultPositions := []string{"Consultant", "Engineer", "Project Manager"}
	for _, label := range defaultPositions {
		var count int64
		DB.Model(&Position{}).Where("position = ?", label).Count(&count)
		if count == 0 {
			if err := DB.Create(&Position{Position: label}).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
