package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DipanshuK2003/Netflix-Data-Analysis/internal/handler"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ==================== 仪表盘只读 API ====================
	api := r.Group("/api")
	{
		api.GET("/leaderboard/decades", h.TopByDecade)
		api.GET("/leaderboard/genres", h.TopByGenre)
		api.GET("/coverage", h.GetCoverage)
		api.GET("/analysis/year-rating", h.YearRatingCorrelation)
		api.GET("/analysis/genre-tests", h.GenreTests)

		// 运维入口：全量重建汇总表
		api.POST("/summary/rebuild", h.RebuildSummary)
	}
}
