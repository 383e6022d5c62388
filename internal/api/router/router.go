package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/georgetown-analytics/webfolio/config"
	"github.com/georgetown-analytics/webfolio/internal/api/handler"
	"github.com/georgetown-analytics/webfolio/internal/api/middleware"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxUploadSize))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── 日历订阅 ──
	r.GET("/calendar.ics", h.Calendar.Feed)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 梯队模块
		cohorts := v1.Group("/cohorts")
		{
			cohorts.GET("", h.Cohort.ListCohorts)
			cohorts.POST("", h.Cohort.CreateCohort)
			cohorts.GET("/:id", h.Cohort.GetCohort)
			cohorts.GET("/:id/courses", h.Cohort.ListCohortCourses)
		}
		v1.GET("/capstones", h.Cohort.ListCapstones)

		// 课程模块
		courses := v1.Group("/courses")
		{
			courses.GET("", h.Course.ListCourses)
			courses.POST("", h.Course.CreateCourse)
			courses.GET("/:id", h.Course.GetCourse)
			courses.GET("/:id/events", h.Course.ListCourseEvents)
			courses.POST("/:id/events", h.Course.GenerateCourseEvents)
		}

		// 教员模块
		faculty := v1.Group("/faculty")
		{
			faculty.GET("", h.Faculty.ListFaculty)
			faculty.POST("", h.Faculty.CreateFaculty)
			faculty.GET("/:id", h.Faculty.GetFaculty)
		}
		v1.GET("/assignments", h.Faculty.ListAssignments)

		// 日程模块
		events := v1.Group("/events")
		{
			events.GET("", h.Calendar.ListEvents)
			events.GET("/:id/google", h.Calendar.GetEventGoogle)
			events.POST("/holiday", h.Calendar.CreateHoliday)
			events.POST("/generate", h.Calendar.GenerateEvents)
		}

		// 花名册导入与课表导出
		v1.POST("/import/assignments", h.Import.ImportAssignments)
		v1.GET("/export/schedule", h.Import.ExportSchedule)
	}

	return r
}
