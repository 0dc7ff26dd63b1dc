package routes

import (
	"os"
	"strings"

	"tax-badge-api/controllers"
	"tax-badge-api/middleware"
	"tax-badge-api/services"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires the HTTP surface. The admin allow-list and the service
// collaborators are injected here rather than read from globals so tests can
// run against their own instances.
func SetupRoutes(router *gin.Engine, engine *services.Issuance, store *services.BadgeStore, admins *services.AdminList) {
	controllers.Init(engine, store)

	authRequired := middleware.AuthMiddleware(admins)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Nation Builder Badge API is running",
		})
	})

	// Authentication
	auth := router.Group("/auth")
	{
		auth.POST("/signup", controllers.Signup)
		auth.POST("/login", controllers.Login)
		auth.GET("/profile", authRequired, controllers.GetProfile)
	}

	// Badge verification is public by default; the QR code on a badge links
	// straight here. Deployments can put it behind auth instead.
	verify := router.Group("/verify")
	if strings.EqualFold(os.Getenv("VERIFY_REQUIRES_AUTH"), "true") {
		verify.Use(authRequired)
	}
	verify.GET("/:badge_id", controllers.VerifyBadge)

	// Tax submissions (authenticated users)
	submission := router.Group("/submission")
	submission.Use(authRequired)
	{
		submission.POST("", controllers.SubmitTax)
		submission.GET("/me", controllers.GetMySubmissions)
		submission.GET("/my-badges", controllers.GetMyBadges)
	}

	// Badge artifacts (owner or admin)
	badge := router.Group("/badge")
	badge.Use(authRequired)
	{
		badge.GET("/:badge_id/png", controllers.DownloadBadgePNG)
		badge.GET("/:badge_id/pdf", controllers.DownloadBadgePDF)
	}

	// Admin review workflow
	admin := router.Group("/admin")
	admin.Use(authRequired, middleware.RequireAdmin())
	{
		admin.GET("/submissions", controllers.ListAllSubmissions)
		admin.POST("/submit-for-user", controllers.SubmitForUser)
		admin.POST("/approve/:id", controllers.ApproveSubmission)
		admin.POST("/reject/:id", controllers.RejectSubmission)
		admin.DELETE("/invalidate/:id", controllers.InvalidateBadge)
	}
}
