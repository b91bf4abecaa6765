package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/DipanshuK2003/Netflix-Data-Analysis/internal/model"
)

// EntityRepository 六张原始表的只读访问层
// 原始表由导入程序整体重建，管道运行期间视为不可变
type EntityRepository struct {
	db *gorm.DB
}

// NewEntityRepository 创建原始表仓库
func NewEntityRepository(db *gorm.DB) *EntityRepository {
	return &EntityRepository{db: db}
}

// requiredColumns 管道依赖的表和列；缺任何一项都属于结构性错误，直接中止
var requiredColumns = map[string][]string{
	"movies":        {"movieId", "title", "genres"},
	"ratings":       {"userId", "movieId", "rating", "timestamp"},
	"tags":          {"userId", "movieId", "tag", "timestamp"},
	"genome_tags":   {"tagId", "tag"},
	"genome_scores": {"movieId", "tagId", "relevance"},
	"links":         {"movieId", "imdbId", "tmdbId"},
}

// ValidateSchema 校验原始表结构，任何缺表缺列都是致命错误
func (r *EntityRepository) ValidateSchema() error {
	for table, columns := range requiredColumns {
		var existing []string
		err := r.db.Raw(`
			SELECT column_name FROM information_schema.columns
			WHERE table_schema = current_schema() AND table_name = ?
		`, table).Scan(&existing).Error
		if err != nil {
			return fmt.Errorf("读取表 %s 结构失败: %w", table, err)
		}
		if len(existing) == 0 {
			return fmt.Errorf("原始表 %s 不存在，请先运行导入", table)
		}

		have := make(map[string]struct{}, len(existing))
		for _, c := range existing {
			have[c] = struct{}{}
		}
		for _, c := range columns {
			if _, ok := have[c]; !ok {
				return fmt.Errorf("表 %s 缺少列 %q", table, c)
			}
		}
	}
	return nil
}

// AllMovies 全量读取电影表（按 movieId 升序）
func (r *EntityRepository) AllMovies() ([]model.Movie, error) {
	rows, err := r.db.Raw(`SELECT "movieId", title, genres FROM movies ORDER BY "movieId"`).Rows()
	if err != nil {
		return nil, fmt.Errorf("读取 movies 失败: %w", err)
	}
	defer rows.Close()

	var movies []model.Movie
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.MovieID, &m.Title, &m.Genres); err != nil {
			return nil, fmt.Errorf("扫描 movies 行失败: %w", err)
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

// GenomeTagDict 读取基因组标签字典 tagId -> tag
func (r *EntityRepository) GenomeTagDict() (map[int64]string, error) {
	rows, err := r.db.Raw(`SELECT "tagId", tag FROM genome_tags`).Rows()
	if err != nil {
		return nil, fmt.Errorf("读取 genome_tags 失败: %w", err)
	}
	defer rows.Close()

	dict := make(map[int64]string, 1200)
	for rows.Next() {
		var tagID int64
		var tag string
		if err := rows.Scan(&tagID, &tag); err != nil {
			return nil, fmt.Errorf("扫描 genome_tags 行失败: %w", err)
		}
		dict[tagID] = tag
	}
	return dict, rows.Err()
}

// StreamRatings 流式遍历评分表（2500 万行，不能整体载入内存）
func (r *EntityRepository) StreamRatings(fn func(movieID int64, rating float64) error) error {
	rows, err := r.db.Raw(`SELECT "movieId", rating FROM ratings`).Rows()
	if err != nil {
		return fmt.Errorf("读取 ratings 失败: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var movieID int64
		var rating float64
		if err := rows.Scan(&movieID, &rating); err != nil {
			return fmt.Errorf("扫描 ratings 行失败: %w", err)
		}
		if err := fn(movieID, rating); err != nil {
			return err
		}
	}
	return rows.Err()
}

// StreamGenomeScores 流式遍历相关度矩阵
func (r *EntityRepository) StreamGenomeScores(fn func(movieID, tagID int64, relevance float64) error) error {
	rows, err := r.db.Raw(`SELECT "movieId", "tagId", relevance FROM genome_scores`).Rows()
	if err != nil {
		return fmt.Errorf("读取 genome_scores 失败: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var movieID, tagID int64
		var relevance float64
		if err := rows.Scan(&movieID, &tagID, &relevance); err != nil {
			return fmt.Errorf("扫描 genome_scores 行失败: %w", err)
		}
		if err := fn(movieID, tagID, relevance); err != nil {
			return err
		}
	}
	return rows.Err()
}

// StreamTags 流式遍历用户标签表
func (r *EntityRepository) StreamTags(fn func(movieID int64, tag string) error) error {
	rows, err := r.db.Raw(`SELECT "movieId", tag FROM tags`).Rows()
	if err != nil {
		return fmt.Errorf("读取 tags 失败: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var movieID int64
		var tag string
		if err := rows.Scan(&movieID, &tag); err != nil {
			return fmt.Errorf("扫描 tags 行失败: %w", err)
		}
		if err := fn(movieID, tag); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Count 某张原始表的行数
func (r *EntityRepository) Count(table string) (int64, error) {
	if _, ok := requiredColumns[table]; !ok {
		return 0, fmt.Errorf("未知的原始表: %s", table)
	}
	var count int64
	if err := r.db.Raw(fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).Scan(&count).Error; err != nil {
		return 0, fmt.Errorf("统计 %s 行数失败: %w", table, err)
	}
	return count, nil
}
