package main

import (
	"github.com/consultly-app/consultly/internal/middleware"
	"github.com/consultly-app/consultly/pkg/logger"
	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics())

	r.GET("/health", svc.healthHandler.Check)
	r.GET("/metrics", middleware.MetricsHandler())

	// Rate limiter for credential-guessing surfaces
	authLimiter := middleware.NewRateLimiter(5, 10)

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth", authLimiter.Middleware())
		{
			auth.POST("/login", svc.authHandler.Login)
			auth.POST("/forgot-password", svc.authHandler.ForgotPassword)
			auth.POST("/reset-password", svc.authHandler.ResetPassword)
		}

		// Protected routes (any authenticated user)
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			protected.GET("/auth/me", svc.authHandler.Me)

			// Projects (reads; list is role-scoped inside the service)
			protected.GET("/projects", svc.projectHandler.List)
			protected.GET("/projects/status-count", svc.projectHandler.StatusCount)
			protected.GET("/projects/names", svc.projectHandler.Names)
			protected.GET("/projects/allocated/:userId", svc.projectHandler.Allocated)
			protected.GET("/projects/:id", svc.projectHandler.Get)
			protected.GET("/projects/:id/summary", svc.financeHandler.Summary)

			// Nested collections (reads)
			protected.GET("/projects/:id/income", svc.financeHandler.ListIncome)
			protected.GET("/projects/:id/expenses", svc.financeHandler.ListExpenses)
			protected.GET("/projects/:id/employees", svc.financeHandler.ListEmployees)

			// Lookups
			protected.GET("/categories", svc.lookupHandler.ListCategories)
			protected.GET("/positions", svc.lookupHandler.ListPositions)

			// Users (reads)
			protected.GET("/users", svc.userHandler.List)
			protected.GET("/users/search", svc.userHandler.Search)
			protected.GET("/users/:id", svc.userHandler.Get)
			protected.GET("/users/:id/payment-history", svc.userHandler.PaymentHistory)
			protected.GET("/users/:id/assigned-projects", svc.userHandler.AssignedProjects)
		}

		// Admin only routes (writes)
		admin := api.Group("")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.POST("/projects", svc.projectHandler.Create)
			admin.PUT("/projects/:id", svc.projectHandler.Update)
			admin.DELETE("/projects/:id", svc.projectHandler.Delete)

			admin.POST("/projects/:id/income", svc.financeHandler.AddIncome)
			admin.PUT("/projects/:id/income/:entryId", svc.financeHandler.UpdateIncome)
			admin.DELETE("/projects/:id/income/:entryId", svc.financeHandler.RemoveIncome)

			admin.POST("/projects/:id/expenses", svc.financeHandler.AddExpense)
			admin.PUT("/projects/:id/expenses/:entryId", svc.financeHandler.UpdateExpense)
			admin.DELETE("/projects/:id/expenses/:entryId", svc.financeHandler.RemoveExpense)

			admin.POST("/projects/:id/employees", svc.financeHandler.AddEmployee)
			admin.PUT("/projects/:id/employees/:entryId", svc.financeHandler.UpdateEmployee)
			admin.DELETE("/projects/:id/employees/:entryId", svc.financeHandler.RemoveEmployee)

			admin.POST("/users", svc.userHandler.Create)
			admin.PUT("/users/:id", svc.userHandler.Update)
			admin.DELETE("/users/:id", svc.userHandler.Delete)

			admin.POST("/categories", svc.lookupHandler.CreateCategory)
			admin.PUT("/categories/:id", svc.lookupHandler.UpdateCategory)
			admin.DELETE("/categories/:id", svc.lookupHandler.DeleteCategory)
			admin.POST("/positions", svc.lookupHandler.CreatePosition)
			admin.PUT("/positions/:id", svc.lookupHandler.UpdatePosition)
			admin.DELETE("/positions/:id", svc.lookupHandler.DeletePosition)

			admin.GET("/sync-logs", svc.syncLogHandler.List)
		}
	}
}
