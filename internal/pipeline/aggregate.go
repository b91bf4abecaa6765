package pipeline

import "math"

// RatingStats 单部电影的评分聚合结果
// 无评分时 Count=0、Avg=nil：空均值必须和 0.0 分区分开
type RatingStats struct {
	Count int64
	Avg   *float64
}

// RatingAccumulator 流式累加每部电影的评分和与条数
type RatingAccumulator struct {
	sums   map[int64]float64
	counts map[int64]int64
}

// NewRatingAccumulator 创建评分累加器
func NewRatingAccumulator() *RatingAccumulator {
	return &RatingAccumulator{
		sums:   make(map[int64]float64, 60000),
		counts: make(map[int64]int64, 60000),
	}
}

// Add 累加一条评分
func (a *RatingAccumulator) Add(movieID int64, rating float64) {
	a.sums[movieID] += rating
	a.counts[movieID]++
}

// Stats 取某部电影的聚合结果；没有评分的电影返回 Count=0、Avg=nil
func (a *RatingAccumulator) Stats(movieID int64) RatingStats {
	count := a.counts[movieID]
	if count == 0 {
		return RatingStats{}
	}
	avg := Round2(a.sums[movieID] / float64(count))
	return RatingStats{Count: count, Avg: &avg}
}

// Round2 四舍五入保留 2 位小数
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
