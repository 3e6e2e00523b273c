package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekaplan/prepsphere/internal/app/controllers"
	"github.com/ekaplan/prepsphere/internal/app/models"
	"github.com/ekaplan/prepsphere/internal/middleware"
)

// Controllers bundles every controller the router needs
type Controllers struct {
	Auth     *controllers.AuthController
	User     *controllers.UserController
	Notebook *controllers.NotebookController
	Test     *controllers.TestController
	Question *controllers.QuestionController
	Practice *controllers.PracticeController
	Referral *controllers.ReferralController
	Settings *controllers.SettingsController
	AI       *controllers.AIController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
		auth.POST("/refresh", c.Auth.RefreshToken)
		auth.POST("/logout", c.Auth.Logout)
		auth.POST("/forgot-password", c.Auth.ForgotPassword)
		auth.POST("/reset-password", c.Auth.ResetPassword)
	}

	// Tests are fetched by share code without a login, so a shared link works
	// for anyone
	v1.GET("/tests/:code", c.Test.GetTest)

	v1.GET("/settings", c.Settings.GetSettings)

	// --- Authenticated routes ---
	// ActiveUserRequired re-checks the account on every request, so a
	// deactivated user is cut off before their access token expires
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth(), authMiddleware.ActiveUserRequired())
	{
		users := authenticated.Group("/users")
		{
			users.GET("/me", c.User.GetProfile)
			users.PUT("/me", c.User.UpdateProfile)
			users.PUT("/me/password", c.User.ChangePassword)
		}

		follows := authenticated.Group("/follows")
		{
			follows.GET("", c.User.GetFollowGraph)
			follows.POST("", c.User.Follow)
			follows.DELETE("/:userId", c.User.Unfollow)
		}

		notebooks := authenticated.Group("/notebooks")
		{
			notebooks.GET("", c.Notebook.ListNotebooks)
			notebooks.POST("", c.Notebook.CreateNotebook)
			notebooks.GET("/:notebookId", c.Notebook.GetNotebook)
			notebooks.PUT("/:notebookId", c.Notebook.RenameNotebook)
			notebooks.DELETE("/:notebookId", c.Notebook.DeleteNotebook)
			notebooks.POST("/:notebookId/bookmarks", c.Notebook.AddBookmark)
			notebooks.DELETE("/:notebookId/bookmarks/:questionId", c.Notebook.RemoveBookmark)
		}

		questions := authenticated.Group("/questions")
		{
			questions.GET("/:subject/:lesson", c.Question.ListQuestions)
			questions.GET("/:subject/:lesson/:questionId", c.Question.GetQuestion)
		}

		authenticated.GET("/practice/daily", c.Practice.DailyPractice)

		authenticated.GET("/referral-offers", c.Referral.ListOffers)
		authenticated.POST("/referral/apply", c.Referral.ApplyCode)

		ai := authenticated.Group("/ai")
		{
			ai.POST("/study-tips", c.AI.StudyTips)
			ai.POST("/doubt", c.AI.SolveDoubt)
		}

		// --- Admin routes ---
		admin := authenticated.Group("")
		admin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			admin.GET("/admin/users", c.User.ListUsers)
			admin.PUT("/admin/users/:userId/status", c.User.SetUserStatus)

			admin.POST("/tests", c.Test.CreateTest)
			admin.GET("/tests", c.Test.ListTests)
			admin.PUT("/tests/:code", c.Test.UpdateTestQuestions)
			admin.DELETE("/tests/:code", c.Test.DeleteTest)

			admin.POST("/questions", c.Question.CreateQuestion)
			admin.PUT("/questions/:subject/:lesson/:questionId", c.Question.UpdateQuestion)
			admin.DELETE("/questions/:subject/:lesson/:questionId", c.Question.DeleteQuestion)

			admin.POST("/referral-offers", c.Referral.CreateOffer)
			admin.PUT("/referral-offers/:offerId", c.Referral.UpdateOffer)
			admin.DELETE("/referral-offers/:offerId", c.Referral.DeleteOffer)

			admin.PUT("/settings", c.Settings.UpdateSettings)
		}
	}
}
