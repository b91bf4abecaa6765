package pipeline

import (
	"strings"

	"github.com/DipanshuK2003/Netflix-Data-Analysis/internal/model"
)

// NoGenresSentinel MovieLens 对无类型电影使用的占位值
const NoGenresSentinel = "(no genres listed)"

// ExpandGenres 把竖线分隔的类型串炸开为去重后的类型列表（保持原始顺序）
// 空串或纯占位值也要炸出恰好一行，否则该电影的评分聚合就没有落点
func ExpandGenres(genres string) []string {
	trimmed := strings.TrimSpace(genres)
	if trimmed == "" {
		return []string{NoGenresSentinel}
	}

	seen := make(map[string]struct{})
	out := make([]string, 0, 4)
	for _, g := range strings.Split(trimmed, "|") {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	if len(out) == 0 {
		return []string{NoGenresSentinel}
	}
	return out
}

// HasDuplicateGenres 类型串的原始列表中是否含重复项（数据质量检查）
func HasDuplicateGenres(genres string) bool {
	parts := strings.Split(strings.TrimSpace(genres), "|")
	seen := make(map[string]struct{}, len(parts))
	for _, g := range parts {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if _, ok := seen[g]; ok {
			return true
		}
		seen[g] = struct{}{}
	}
	return false
}

// CountDuplicateGenres 统计类型串含重复项的电影数，期望为 0
func CountDuplicateGenres(movies []model.Movie) int {
	count := 0
	for _, m := range movies {
		if HasDuplicateGenres(m.Genres) {
			count++
		}
	}
	return count
}
