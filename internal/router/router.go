package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/learnly/internal/handler"
	"github.com/user/learnly/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler, rl *middleware.RateLimiter) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ==================== 公开目录 ====================
	catalog := r.Group("/api")
	catalog.Use(middleware.OptionalAuth(h.Config.AppSecret))
	{
		catalog.GET("/home", h.Home)
		catalog.GET("/courses", h.ListCourses)
		catalog.GET("/search", h.SearchCourses)
		catalog.GET("/courses/:id", h.GetCourse)
		catalog.GET("/courses/:id/similar", h.SimilarCourses)
		catalog.GET("/courses/:id/questions", h.ListQuestions)
		catalog.GET("/courses/:id/reviews", h.ListReviews)
		catalog.GET("/categories", h.Categories)
		catalog.GET("/teachers", h.ListInstructors)
		catalog.GET("/teachers/:id", h.GetInstructor)
	}

	// ==================== 认证 ====================
	auth := r.Group("/auth")
	auth.Use(rl.Limit("auth", 20, time.Minute))
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
	}

	// ==================== 用户中心（需要登录）====================
	api := r.Group("/api")
	api.Use(middleware.RequireAuth(h.Config.AppSecret))
	api.Use(rl.Limit("api", 300, time.Minute))
	{
		api.GET("/me", h.Me)
		api.PUT("/me", h.UpdateProfile)
		api.PUT("/me/password", h.UpdatePassword)

		api.GET("/cart", h.GetCart)
		api.POST("/cart/:id", h.AddToCart)
		api.DELETE("/cart/:id", h.RemoveFromCart)
		api.POST("/courses/:id/purchase", h.Purchase)

		api.POST("/saved/:id", h.ToggleSaved)
		api.GET("/saved", h.ListSaved)

		api.GET("/my-courses", h.MyCourses)
		api.POST("/courses/:id/progress", h.ReportProgress)

		api.POST("/courses/:id/questions", h.PostQuestion)
		api.POST("/questions/:questionId/like", h.LikeQuestion)
		api.POST("/courses/:id/reviews", h.PostReview)
		api.POST("/courses/:id/project", h.SubmitProject)
		api.GET("/courses/:id/project", h.ListProjectSubmissions)
	}

	// ==================== 管理 ====================
	admin := r.Group("/api/admin")
	admin.Use(middleware.RequireAuth(h.Config.AppSecret))
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/stats", h.Stats)
		admin.POST("/sync", h.SyncCatalog)
		admin.POST("/cleanup", h.RunCleanup)
	}
}
