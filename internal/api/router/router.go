package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"weekly-summary/config"
	"weekly-summary/internal/api/handler"
	"weekly-summary/internal/api/middleware"
	"weekly-summary/internal/model"
	"weekly-summary/pkg/jwt"
	"weekly-summary/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时不启用 Token 黑名单与登录限流。
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	var (
		blacklist middleware.Blacklist
		limiter   middleware.Limiter
	)
	if rdb != nil {
		blacklist, limiter = rdb, rdb
	}

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxUploadMB << 20))
	r.MaxMultipartMemory = cfg.Server.MaxUploadMB << 20

	// ── 健康检查 / 指标 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		v1.POST("/auth/login", middleware.RateLimit(limiter, cfg.Auth.LoginRateLimit, time.Minute), h.Auth.Login)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, blacklist))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			authorized.PUT("/users/me", h.User.UpdateProfile)

			// 周报提交
			submissions := authorized.Group("/submissions")
			{
				submissions.GET("/form", h.Submission.Form)
				submissions.POST("", h.Submission.Submit)
				submissions.GET("/mine", h.Submission.ListMine)
				submissions.GET("", middleware.RoleAuth(model.RoleAdmin), h.Submission.ListAll)
			}

			// 以下均为管理员功能
			admin := authorized.Group("")
			admin.Use(middleware.RoleAuth(model.RoleAdmin))
			{
				admin.POST("/reports", h.Report.Generate)
				admin.GET("/reports/files/:filename", h.Report.Download)

				admin.GET("/export/excel", h.Export.ExportExcel)
				admin.GET("/export/csv", h.Export.ExportCSV)

				admin.GET("/stats/submissions", h.Stats.Submissions)
			}
		}
	}

	return r
}
