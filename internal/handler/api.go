package handler

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DipanshuK2003/Netflix-Data-Analysis/internal/utils"
)

// 榜单条数上限，防止一次把整张表拉下去
const maxLeaderboardLimit = 50

// leaderboardQuery 榜单查询参数
type leaderboardQuery struct {
	Limit int `form:"limit,default=5" binding:"omitempty,min=1"`
}

// TopByDecade 每个年代的头部影片榜单
func (h *Handler) TopByDecade(c *gin.Context) {
	var q leaderboardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.BadRequest(c, "limit 参数非法")
		return
	}
	if q.Limit > maxLeaderboardLimit {
		q.Limit = maxLeaderboardLimit
	}

	cacheKey := fmt.Sprintf("leaderboard:decade:%d", q.Limit)
	if cached, ok := utils.CacheGet(cacheKey); ok {
		utils.Success(c, cached)
		return
	}

	boards, err := h.Analysis.TopByDecade(q.Limit)
	if err != nil {
		log.Printf("[API] 年代榜单查询失败: %v", err)
		utils.InternalServerError(c, "榜单查询失败")
		return
	}

	utils.CacheSet(cacheKey, boards, 5*time.Minute)
	utils.Success(c, boards)
}

// TopByGenre 每个类型的头部影片榜单
func (h *Handler) TopByGenre(c *gin.Context) {
	var q leaderboardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.BadRequest(c, "limit 参数非法")
		return
	}
	if q.Limit > maxLeaderboardLimit {
		q.Limit = maxLeaderboardLimit
	}

	cacheKey := fmt.Sprintf("leaderboard:genre:%d", q.Limit)
	if cached, ok := utils.CacheGet(cacheKey); ok {
		utils.Success(c, cached)
		return
	}

	boards, err := h.Analysis.TopByGenre(q.Limit)
	if err != nil {
		log.Printf("[API] 类型榜单查询失败: %v", err)
		utils.InternalServerError(c, "榜单查询失败")
		return
	}

	utils.CacheSet(cacheKey, boards, 5*time.Minute)
	utils.Success(c, boards)
}

// GetCoverage 汇总表完整性报告
func (h *Handler) GetCoverage(c *gin.Context) {
	report, err := h.Analysis.Coverage()
	if err != nil {
		log.Printf("[API] 完整性报告查询失败: %v", err)
		utils.InternalServerError(c, "完整性报告查询失败")
		return
	}
	utils.Success(c, report)
}

// YearRatingCorrelation 年份与平均分的 Spearman 相关
func (h *Handler) YearRatingCorrelation(c *gin.Context) {
	const cacheKey = "analysis:year_rating"
	if cached, ok := utils.CacheGet(cacheKey); ok {
		utils.Success(c, cached)
		return
	}

	result, err := h.Analysis.YearRatingCorrelation()
	if err != nil {
		log.Printf("[API] 相关性分析失败: %v", err)
		utils.InternalServerError(c, "相关性分析失败")
		return
	}

	utils.CacheSet(cacheKey, result, 10*time.Minute)
	utils.Success(c, result)
}

// GenreTests 各类型的 Mann-Whitney 检验（含 BH 校正）
func (h *Handler) GenreTests(c *gin.Context) {
	const cacheKey = "analysis:genre_tests"
	if cached, ok := utils.CacheGet(cacheKey); ok {
		utils.Success(c, cached)
		return
	}

	tests, err := h.Analysis.GenreRatingTests()
	if err != nil {
		log.Printf("[API] 类型检验失败: %v", err)
		utils.InternalServerError(c, "类型检验失败")
		return
	}

	utils.CacheSet(cacheKey, tests, 10*time.Minute)
	utils.Success(c, tests)
}

// 重建互斥标记：批任务一次只允许跑一个
var rebuilding atomic.Bool

// RebuildSummary 同步触发一次汇总表全量重建
func (h *Handler) RebuildSummary(c *gin.Context) {
	if !rebuilding.CompareAndSwap(false, true) {
		utils.Conflict(c, "重建任务正在进行中")
		return
	}
	defer rebuilding.Store(false)

	report, err := h.Summary.Rebuild(c.Request.Context())
	if err != nil {
		log.Printf("[API] 汇总表重建失败: %v", err)
		utils.InternalServerError(c, "汇总表重建失败")
		return
	}

	// 表换了，旧的分析结果全部作废
	h.Analysis.Invalidate()
	utils.Success(c, report)
}
