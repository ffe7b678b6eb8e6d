package routes

import (
	"conference-review-api/controllers"
	"conference-review-api/middleware"
	"conference-review-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)
			public.POST("/register", controllers.Register)

			// Public conference content
			public.GET("/keynotes", controllers.GetKeynotes)
			public.GET("/registration/fees", controllers.GetRegistrationFees)
			public.POST("/registrations", controllers.CreateRegistration)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Conference Review API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Auth management
			protected.POST("/refresh", controllers.RefreshToken)
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Dashboard & notifications (all authenticated users)
			protected.GET("/dashboard/stats", controllers.GetDashboardStats)
			protected.GET("/notifications", controllers.GetMyNotifications)
			protected.PUT("/notifications/:id/read", controllers.MarkNotificationRead)
			protected.PUT("/notifications/read-all", controllers.MarkAllNotificationsRead)

			// Messaging
			protected.POST("/messages", controllers.SendMessage)
			protected.GET("/messages", controllers.GetMyMessages)
			protected.PUT("/messages/:id/read", controllers.MarkMessageRead)

			// Papers (author side)
			papers := protected.Group("/papers")
			{
				papers.GET("", controllers.GetPapers)
				papers.GET("/:id", controllers.GetPaper)
				papers.GET("/files/:file_id", controllers.DownloadPaperFile)

				papers.POST("", middleware.RequireRole(models.RoleAuthor), controllers.CreatePaper)
				papers.POST("/:id/revisions", middleware.RequireRole(models.RoleAuthor), controllers.SubmitRevision)
			}

			// Payments
			payments := protected.Group("/payments")
			{
				payments.POST("", controllers.UploadPaymentProof)
				payments.GET("", controllers.GetMyPayments)
			}

			// Reviewer dashboard
			reviewer := protected.Group("/reviewer")
			reviewer.Use(middleware.RequireRole(models.RoleReviewer))
			{
				reviewer.GET("/assignments", controllers.GetMyAssignments)
				reviewer.POST("/papers/:id/accept", controllers.AcceptAssignment)
				reviewer.POST("/papers/:id/decline", controllers.DeclineAssignment)
				reviewer.GET("/papers/:id/draft", controllers.GetReviewDraft)
				reviewer.GET("/papers/:id/file", controllers.GetReviewFile)
				reviewer.POST("/papers/:id/reviews", controllers.SubmitReview)
			}

			// Editor dashboard
			editor := protected.Group("/editor")
			editor.Use(middleware.RequireRole(models.RoleEditor, models.RoleAdmin))
			{
				editor.GET("/papers", controllers.GetEditorPapers)
				editor.POST("/papers/:id/claim", controllers.ClaimPaper)
				editor.GET("/papers/:id/reviews", controllers.GetPaperReviews)
				editor.GET("/reviewers", controllers.ListReviewers)

				editor.POST("/papers/:id/reviewers", controllers.AssignReviewers)
				editor.DELETE("/papers/:id/reviewers/:reviewer_id", controllers.RemoveReviewer)

				editor.POST("/papers/:id/request-revision", controllers.RequestRevision)
				editor.POST("/papers/:id/accept", controllers.AcceptPaper)
				editor.POST("/papers/:id/reject", controllers.RejectPaper)
			}

			// Admin
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/users", controllers.ListUsers)
				admin.POST("/users", controllers.CreateUser)
				admin.PUT("/users/:id/role", controllers.UpdateUserRole)
				admin.PUT("/users/:id/active", controllers.SetUserActive)

				admin.GET("/payments", controllers.ListPayments)
				admin.PUT("/payments/:id/verify", controllers.VerifyPayment)

				admin.GET("/registrations", controllers.ListRegistrations)
				admin.GET("/messages/office", controllers.ListOfficeMessages)

				admin.POST("/keynotes", controllers.CreateKeynote)
				admin.PUT("/keynotes/:id", controllers.UpdateKeynote)
				admin.POST("/keynotes/:id/photo", controllers.UploadKeynotePhoto)
				admin.DELETE("/keynotes/:id", controllers.DeleteKeynote)
			}
		}
	}
}
