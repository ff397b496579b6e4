package routes

import (
	"github.com/gin-gonic/gin"

	"aiowedding/internal/handlers"
	"aiowedding/internal/middleware"
	"aiowedding/internal/models"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	resetHandler *handlers.PasswordResetHandler,
	adHandler *handlers.AdvertisementHandler,
	planningHandler *handlers.PlanningHandler,
	reportHandler *handlers.ReportHandler,
) *gin.Engine {

	// ---- public
	r.POST("/login", authHandler.Login)
	r.POST("/refresh", authHandler.RefreshToken)
	r.POST("/register", userHandler.Register)
	r.GET("/verify-email", userHandler.VerifyEmail)

	reset := r.Group("/password-reset")
	{
		reset.POST("/send-code", resetHandler.SendCode)
		reset.POST("/verify-code", resetHandler.VerifyCode)
		reset.POST("/reset", resetHandler.ResetPassword)
	}

	// ---- protected
	r.Use(middleware.AuthMiddleware())

	r.POST("/logout", authHandler.Logout)
	r.GET("/me", userHandler.Me)

	// VENDOR: advertisements
	ads := r.Group("/ads", middleware.RequireRoles(models.RoleVendor))
	{
		ads.POST("/", adHandler.Create)
		ads.GET("/", adHandler.List)
		ads.PUT("/:id", adHandler.Update)
		ads.DELETE("/:id", adHandler.Delete)
	}

	// COUPLE: planning dashboard
	planning := r.Group("/planning", middleware.RequireRoles(models.RoleCouple))
	{
		planning.GET("/summary", planningHandler.Summary)

		planning.POST("/budget", planningHandler.AddBudgetItem)
		planning.GET("/budget", planningHandler.ListBudgetItems)
		planning.DELETE("/budget/:id", planningHandler.DeleteBudgetItem)

		planning.POST("/guests", planningHandler.AddGuest)
		planning.GET("/guests", planningHandler.ListGuests)
		planning.POST("/guests/:id/status", planningHandler.SetGuestStatus)
		planning.DELETE("/guests/:id", planningHandler.DeleteGuest)

		planning.POST("/checklist", planningHandler.AddChecklistItem)
		planning.GET("/checklist", planningHandler.ListChecklistItems)
		planning.POST("/checklist/:id/completed", planningHandler.SetChecklistCompleted)
		planning.DELETE("/checklist/:id", planningHandler.DeleteChecklistItem)
	}

	// ADMIN: reports
	reports := r.Group("/reports", middleware.RequireRoles(models.RoleAdmin))
	{
		reports.GET("/summary", reportHandler.GetSummary)
		reports.GET("/summary/pdf", reportHandler.ExportSummaryPDF)
	}

	return r
}
