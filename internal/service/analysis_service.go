package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/DipanshuK2003/Netflix-Data-Analysis/internal/analytics"
	"github.com/DipanshuK2003/Netflix-Data-Analysis/internal/model"
	"github.com/DipanshuK2003/Netflix-Data-Analysis/internal/pipeline"
	"github.com/DipanshuK2003/Netflix-Data-Analysis/internal/repository"
	"github.com/DipanshuK2003/Netflix-Data-Analysis/internal/utils"
)

const summaryRowsKey = "summary_rows"

// 类型检验要求两组各至少这么多部电影，太小的组没有统计意义
const minGenreSample = 20

// AnalysisService 面向仪表盘的只读分析服务
// 所有查询都基于汇总表的全量行，读一次缓存起来复用
type AnalysisService struct {
	repos *repository.Repositories
	rows  *utils.QueryCache[[]model.SummaryRow]
}

// NewAnalysisService 创建分析服务
func NewAnalysisService(repos *repository.Repositories) *AnalysisService {
	return &AnalysisService{
		repos: repos,
		rows:  utils.NewQueryCache[[]model.SummaryRow](4, 10*time.Minute),
	}
}

// Invalidate 汇总表重建后清掉所有缓存结果
func (s *AnalysisService) Invalidate() {
	s.rows.Clear()
	utils.CacheClear()
}

func (s *AnalysisService) summaryRows() ([]model.SummaryRow, error) {
	if rows, ok := s.rows.Get(summaryRowsKey); ok {
		return rows, nil
	}
	rows, err := s.repos.Summary.ListAll()
	if err != nil {
		return nil, err
	}
	s.rows.Set(summaryRowsKey, rows)
	return rows, nil
}

// distinctMovies 汇总行按电影去重（类型炸开的行里电影级字段完全一致）
func distinctMovies(rows []model.SummaryRow) []model.SummaryRow {
	seen := make(map[int64]struct{}, len(rows))
	out := make([]model.SummaryRow, 0, len(rows)/2)
	for _, r := range rows {
		if _, ok := seen[r.MovieID]; ok {
			continue
		}
		seen[r.MovieID] = struct{}{}
		out = append(out, r)
	}
	return out
}

// 榜单排序：评分数 desc → 平均分 desc → 标题 asc 兜底保证确定性
func leaderboardLess(a, b model.LeaderboardEntry) bool {
	if a.RatingCount != b.RatingCount {
		return a.RatingCount > b.RatingCount
	}
	if a.AvgRating != b.AvgRating {
		return a.AvgRating > b.AvgRating
	}
	return a.Title < b.Title
}

func toEntry(r model.SummaryRow) model.LeaderboardEntry {
	// 清洗后的表里 Year/AvgRating 必定非空
	return model.LeaderboardEntry{
		MovieID:     r.MovieID,
		Title:       r.Title,
		Year:        *r.Year,
		AvgRating:   *r.AvgRating,
		RatingCount: r.RatingCount,
	}
}

// TopByDecade 每个年代的头部影片
func (s *AnalysisService) TopByDecade(limit int) ([]model.Leaderboard, error) {
	rows, err := s.summaryRows()
	if err != nil {
		return nil, err
	}

	top := pipeline.NewTopK[int, model.LeaderboardEntry](limit, leaderboardLess)
	for _, r := range distinctMovies(rows) {
		decade := *r.Year / 10 * 10
		top.Offer(decade, toEntry(r))
	}

	result := top.Result()
	decades := make([]int, 0, len(result))
	for d := range result {
		decades = append(decades, d)
	}
	sort.Ints(decades)

	out := make([]model.Leaderboard, 0, len(decades))
	for _, d := range decades {
		out = append(out, model.Leaderboard{
			Group:   fmt.Sprintf("%ds", d),
			Entries: result[d],
		})
	}
	return out, nil
}

// TopByGenre 每个类型的头部影片
func (s *AnalysisService) TopByGenre(limit int) ([]model.Leaderboard, error) {
	rows, err := s.summaryRows()
	if err != nil {
		return nil, err
	}

	top := pipeline.NewTopK[string, model.LeaderboardEntry](limit, leaderboardLess)
	for _, r := range rows {
		top.Offer(r.Genre, toEntry(r))
	}

	result := top.Result()
	genres := make([]string, 0, len(result))
	for g := range result {
		genres = append(genres, g)
	}
	sort.Strings(genres)

	out := make([]model.Leaderboard, 0, len(genres))
	for _, g := range genres {
		out = append(out, model.Leaderboard{Group: g, Entries: result[g]})
	}
	return out, nil
}

// Coverage 汇总表完整性报告
func (s *AnalysisService) Coverage() (model.CoverageReport, error) {
	rows, err := s.summaryRows()
	if err != nil {
		return model.CoverageReport{}, err
	}
	return pipeline.Coverage(rows), nil
}

// YearRatingCorrelation 上映年份与平均分的 Spearman 秩相关（按电影去重）
func (s *AnalysisService) YearRatingCorrelation() (model.Correlation, error) {
	rows, err := s.summaryRows()
	if err != nil {
		return model.Correlation{}, err
	}

	movies := distinctMovies(rows)
	years := make([]float64, 0, len(movies))
	ratings := make([]float64, 0, len(movies))
	for _, m := range movies {
		years = append(years, float64(*m.Year))
		ratings = append(ratings, *m.AvgRating)
	}

	rho, p := analytics.Spearman(years, ratings)
	return model.Correlation{N: len(movies), Rho: rho, PValue: p}, nil
}

// GenreRatingTests 每个类型做"组内 vs 组外"的 Mann-Whitney 检验，
// 再对所有 p 值做 Benjamini-Hochberg 校正；按校正后 p 升序返回
func (s *AnalysisService) GenreRatingTests() ([]model.GenreTest, error) {
	rows, err := s.summaryRows()
	if err != nil {
		return nil, err
	}

	// 每部电影的平均分，以及每个类型覆盖的电影集合
	avg := make(map[int64]float64)
	genreMovies := make(map[string]map[int64]struct{})
	for _, r := range rows {
		avg[r.MovieID] = *r.AvgRating
		m := genreMovies[r.Genre]
		if m == nil {
			m = make(map[int64]struct{})
			genreMovies[r.Genre] = m
		}
		m[r.MovieID] = struct{}{}
	}

	genres := make([]string, 0, len(genreMovies))
	for g := range genreMovies {
		genres = append(genres, g)
	}
	sort.Strings(genres)

	tests := make([]model.GenreTest, 0, len(genres))
	pvalues := make([]float64, 0, len(genres))
	for _, g := range genres {
		members := genreMovies[g]
		var in, out []float64
		for movieID, a := range avg {
			if _, ok := members[movieID]; ok {
				in = append(in, a)
			} else {
				out = append(out, a)
			}
		}
		if len(in) < minGenreSample || len(out) < minGenreSample {
			continue
		}

		u, p := analytics.MannWhitney(in, out)
		tests = append(tests, model.GenreTest{
			Genre:  g,
			NIn:    len(in),
			NOut:   len(out),
			U:      u,
			PValue: p,
		})
		pvalues = append(pvalues, p)
	}

	adjusted := analytics.BenjaminiHochberg(pvalues)
	for i := range tests {
		tests[i].AdjustedP = adjusted[i]
	}

	sort.Slice(tests, func(i, j int) bool {
		if tests[i].AdjustedP != tests[j].AdjustedP {
			return tests[i].AdjustedP < tests[j].AdjustedP
		}
		return tests[i].Genre < tests[j].Genre
	})
	return tests, nil
}
