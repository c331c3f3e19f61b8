package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/solarmap-backend-go/internal/config"
	"github.com/jengzang/solarmap-backend-go/internal/handler"
	"github.com/jengzang/solarmap-backend-go/internal/metrics"
	"github.com/jengzang/solarmap-backend-go/internal/middleware"
	"github.com/jengzang/solarmap-backend-go/internal/service"
	"github.com/jengzang/solarmap-backend-go/internal/web"
)

// SetupRouter 设置路由. limiter may be nil to disable rate limiting.
func SetupRouter(cfg *config.Config, svc *service.DashboardService, limiter *middleware.RateLimiter) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.SetHTMLTemplate(web.Templates())
	r.StaticFS("/static", web.Static())

	dashboardHandler := handler.NewDashboardHandler(svc)
	parcelHandler := handler.NewParcelHandler(svc)
	chartHandler := handler.NewChartHandler(svc)

	// 页面
	r.GET("/", dashboardHandler.Index)

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"parcels": svc.ParcelCount(),
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API 路由组
	api := r.Group("/api/v1")
	if limiter != nil {
		api.Use(middleware.RateLimit(limiter))
	}
	{
		// 仪表盘
		dash := api.Group("/dashboard")
		{
			dash.GET("/layout", dashboardHandler.GetLayout)
			dash.POST("/update", dashboardHandler.Update)
		}

		// 地块
		parcels := api.Group("/parcels")
		{
			parcels.GET("/geojson", parcelHandler.GetGeoJSON)
			parcels.GET("/:id", parcelHandler.GetParcel)
		}

		// 图表导出
		api.GET("/charts/:file", chartHandler.GetChart)
	}

	return r
}
