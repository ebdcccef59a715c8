package main

import (
	"errors"

	"github.com/consultly-app/consultly/internal/config"
	"github.com/consultly-app/consultly/internal/handlers"
	"github.com/consultly-app/consultly/internal/models"
	"github.com/consultly-app/consultly/internal/services"
	"github.com/consultly-app/consultly/internal/utils"
	"github.com/consultly-app/consultly/pkg/logger"
	"gorm.io/gorm"
)

// appServices holds the initialized services and handlers the router needs.
type appServices struct {
	authHandler    *handlers.AuthHandler
	userHandler    *handlers.UserHandler
	projectHandler *handlers.ProjectHandler
	financeHandler *handlers.FinanceHandler
	lookupHandler  *handlers.LookupHandler
	syncLogHandler *handlers.SyncLogHandler
	healthHandler  *handlers.HealthHandler
}

// bootstrap initializes the database and wires up all services.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	if err := models.SeedDefaultData(); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed default data")
	}

	db := models.GetDB()

	if err := createAdminIfNotExists(db, cfg); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	emailService := services.NewEmailService(cfg.Email, cfg.App.FrontendURL)
	invoiceService := services.NewInvoiceService(db)
	syncService := services.NewSyncService(db)

	authService := services.NewAuthService(db, emailService, cfg.JWT)
	userService := services.NewUserService(db, emailService, cfg.JWT)
	projectService := services.NewProjectService(db)
	financeService := services.NewFinanceService(db, invoiceService, syncService)
	summaryService := services.NewSummaryService(db)
	lookupService := services.NewLookupService(db)
	syncLogService := services.NewSyncLogService(db)

	return &appServices{
		authHandler:    handlers.NewAuthHandler(authService),
		userHandler:    handlers.NewUserHandler(userService),
		projectHandler: handlers.NewProjectHandler(projectService),
		financeHandler: handlers.NewFinanceHandler(financeService, summaryService),
		lookupHandler:  handlers.NewLookupHandler(lookupService),
		syncLogHandler: handlers.NewSyncLogHandler(syncLogService),
		healthHandler:  handlers.NewHealthHandler(),
	}
}

// createAdminIfNotExists seeds the initial admin account on first start.
// The password comes from ADMIN_PASSWORD; without it no account is created,
// since a well-known default password is worse than a manual setup step.
func createAdminIfNotExists(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := cfg.App.AdminPassword
	if password == "" {
		return errors.New("no admin user exists and ADMIN_PASSWORD is not set")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     "Administrator",
		Email:    cfg.App.AdminEmail,
		Password: hash,
		Role:     models.RoleAdmin,
		Status:   "Active",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	logger.Infof("Created default admin user %s", admin.Email)
	return nil
}
