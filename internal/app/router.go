package app

import (
	"souschef_backend/docs"
	"souschef_backend/internal/config"
	"souschef_backend/internal/middleware"
	"souschef_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus 指标
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		// 课程增删改查
		courses := api.Group("/courses")
		{
			courses.GET("", c.course.ListCourses)
			courses.POST("", c.course.CreateCourse)
			courses.GET("/:id", c.course.GetCourse)
			courses.PUT("/:id", c.course.ReplaceCourse)
			courses.PATCH("/:id", c.course.UpdateCourse)
			courses.DELETE("/:id", c.course.DeleteCourse)

			// 树结构编辑
			courses.POST("/:id/modules", c.editor.AddModule)
			courses.PATCH("/:id/modules/:moduleId", c.editor.RenameModule)
			courses.POST("/:id/modules/:moduleId/lessons", c.editor.AddLesson)
			courses.PATCH("/:id/lessons/:lessonId", c.editor.UpdateLesson)
			courses.POST("/:id/lessons/:lessonId/blocks", c.editor.AddBlock)
			courses.DELETE("/:id/lessons/:lessonId/blocks/:blockId", c.editor.RemoveBlock)

			// AI 生成
			courses.POST("/:id/lessons/:lessonId/generate/content", c.generator.GenerateContent)
			courses.POST("/:id/lessons/:lessonId/generate/quiz", c.generator.GenerateQuiz)
		}

		api.POST("/generate/outline", c.generator.GenerateOutline)

		// 文件上传
		uploads := api.Group("/uploads")
		{
			uploads.POST("/thumbnail", c.upload.UploadThumbnail)
			uploads.POST("/file", c.upload.UploadFile)
		}

		// 分享页，查看课程前需通过邮箱门禁
		view := api.Group("/view")
		{
			view.GET("/:id/summary", c.viewer.Summary)
			view.POST("/:id/gate", c.viewer.Gate)
			view.GET("/:id", middleware.GateMiddleware(cfg), c.viewer.View)
		}
	}
}
