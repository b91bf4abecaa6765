package pipeline

import "github.com/DipanshuK2003/Netflix-Data-Analysis/internal/model"

// Coverage 统计清洗后汇总表里标签字段的完整度（只读，不做任何修改）
// 缺失数按去重后的电影数统计，百分比保留 2 位；空表返回全零
func Coverage(rows []model.SummaryRow) model.CoverageReport {
	movies := make(map[int64]struct{})
	noGenomeTag := make(map[int64]struct{})
	noRelevance := make(map[int64]struct{})
	noUserTag := make(map[int64]struct{})

	for _, r := range rows {
		movies[r.MovieID] = struct{}{}
		if r.TopGenomeTag == nil {
			noGenomeTag[r.MovieID] = struct{}{}
		}
		if r.GenomeRelevance == nil {
			noRelevance[r.MovieID] = struct{}{}
		}
		if r.MostCommonUserTag == nil {
			noUserTag[r.MovieID] = struct{}{}
		}
	}

	total := int64(len(movies))
	item := func(missing map[int64]struct{}) model.CoverageItem {
		n := int64(len(missing))
		pct := 0.0
		if total > 0 {
			pct = Round2(100 * float64(n) / float64(total))
		}
		return model.CoverageItem{MissingMovies: n, Percent: pct}
	}

	return model.CoverageReport{
		TotalRows:         int64(len(rows)),
		TotalMovies:       total,
		TopGenomeTag:      item(noGenomeTag),
		GenomeRelevance:   item(noRelevance),
		MostCommonUserTag: item(noUserTag),
	}
}
