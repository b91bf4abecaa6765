package pipeline

import (
	"sort"

	"github.com/DipanshuK2003/Netflix-Data-Analysis/internal/model"
)

// AssembleInput 汇总表装配的全部输入
// 评分/标签均以 movieId 为键做外连接：缺失的电影照样出现，只是字段为空
type AssembleInput struct {
	Movies   []model.Movie
	Ratings  *RatingAccumulator
	Genome   map[int64]GenomeTagPick
	UserTags map[int64]string
}

// Assemble 装配未清洗的汇总行集
// 每部电影按类型炸开，N 个去重类型恰好产出 N 行；输出按 (movieId, genre) 升序
func Assemble(in AssembleInput) []model.SummaryRow {
	movies := make([]model.Movie, len(in.Movies))
	copy(movies, in.Movies)
	sort.Slice(movies, func(i, j int) bool { return movies[i].MovieID < movies[j].MovieID })

	rows := make([]model.SummaryRow, 0, len(movies)*2)
	for _, m := range movies {
		year := ExtractYear(m.Title)
		stats := RatingStats{}
		if in.Ratings != nil {
			stats = in.Ratings.Stats(m.MovieID)
		}

		var topGenomeTag *string
		var genomeRelevance *float64
		if pick, ok := in.Genome[m.MovieID]; ok {
			tag, rel := pick.Tag, pick.Relevance
			topGenomeTag = &tag
			genomeRelevance = &rel
		}

		var mostCommonUserTag *string
		if tag, ok := in.UserTags[m.MovieID]; ok {
			t := tag
			mostCommonUserTag = &t
		}

		genres := ExpandGenres(m.Genres)
		sort.Strings(genres)
		for _, genre := range genres {
			rows = append(rows, model.SummaryRow{
				MovieID:           m.MovieID,
				Title:             m.Title,
				Year:              year,
				Genre:             genre,
				AvgRating:         stats.Avg,
				RatingCount:       stats.Count,
				TopGenomeTag:      topGenomeTag,
				GenomeRelevance:   genomeRelevance,
				MostCommonUserTag: mostCommonUserTag,
			})
		}
	}
	return rows
}

// FilterComplete 两段清洗：先删无年份电影的全部行，再删无评分电影的全部行
// 按"先选出不合格 movieId 集合、再整体删除"的方式执行，
// 保证同一部电影的类型行要么全留要么全删，绝不出现删一半的电影
func FilterComplete(rows []model.SummaryRow) (kept []model.SummaryRow, removedYearRows, removedRatingRows int) {
	noYear := make(map[int64]struct{})
	for _, r := range rows {
		if r.Year == nil {
			noYear[r.MovieID] = struct{}{}
		}
	}
	afterYear := make([]model.SummaryRow, 0, len(rows))
	for _, r := range rows {
		if _, bad := noYear[r.MovieID]; bad {
			removedYearRows++
			continue
		}
		afterYear = append(afterYear, r)
	}

	noRating := make(map[int64]struct{})
	for _, r := range afterYear {
		if r.AvgRating == nil {
			noRating[r.MovieID] = struct{}{}
		}
	}
	kept = make([]model.SummaryRow, 0, len(afterYear))
	for _, r := range afterYear {
		if _, bad := noRating[r.MovieID]; bad {
			removedRatingRows++
			continue
		}
		kept = append(kept, r)
	}
	return kept, removedYearRows, removedRatingRows
}
