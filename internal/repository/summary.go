package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/DipanshuK2003/Netflix-Data-Analysis/internal/model"
)

// SummaryRepository 汇总表的持久化层
type SummaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository 创建汇总表仓库
func NewSummaryRepository(db *gorm.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

const summaryDDL = `
CREATE TABLE %s (
	"movieId"            BIGINT       NOT NULL,
	title                TEXT         NOT NULL,
	year                 INTEGER      NOT NULL,
	genre                TEXT         NOT NULL,
	avg_rating           NUMERIC(4,2) NOT NULL,
	rating_count         BIGINT       NOT NULL,
	top_genome_tag       TEXT,
	genome_relevance     DOUBLE PRECISION,
	most_common_user_tag TEXT
)`

// 单批行数；9 列 × 500 行远低于 Postgres 的参数上限
const insertBatchSize = 500

// Replace 原子替换 summary_table：先写临时表，最后一次性改名
// 整个过程在一个事务里，读端要么看到旧表要么看到完整的新表，绝无半成品
func (r *SummaryRepository) Replace(rows []model.SummaryRow) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DROP TABLE IF EXISTS summary_table_staging`).Error; err != nil {
			return fmt.Errorf("清理临时表失败: %w", err)
		}
		if err := tx.Exec(fmt.Sprintf(summaryDDL, "summary_table_staging")).Error; err != nil {
			return fmt.Errorf("建临时表失败: %w", err)
		}

		for start := 0; start < len(rows); start += insertBatchSize {
			end := start + insertBatchSize
			if end > len(rows) {
				end = len(rows)
			}
			if err := insertBatch(tx, rows[start:end]); err != nil {
				return err
			}
		}

		if err := tx.Exec(`DROP TABLE IF EXISTS summary_table`).Error; err != nil {
			return fmt.Errorf("删除旧汇总表失败: %w", err)
		}
		if err := tx.Exec(`ALTER TABLE summary_table_staging RENAME TO summary_table`).Error; err != nil {
			return fmt.Errorf("汇总表改名失败: %w", err)
		}
		return nil
	})
}

func insertBatch(tx *gorm.DB, batch []model.SummaryRow) error {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO summary_table_staging
		("movieId", title, year, genre, avg_rating, rating_count,
		 top_genome_tag, genome_relevance, most_common_user_tag) VALUES `)

	args := make([]interface{}, 0, len(batch)*9)
	for i, row := range batch {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			row.MovieID, row.Title, row.Year, row.Genre,
			row.AvgRating, row.RatingCount,
			row.TopGenomeTag, row.GenomeRelevance, row.MostCommonUserTag)
	}

	if err := tx.Exec(sb.String(), args...).Error; err != nil {
		return fmt.Errorf("写入汇总行失败: %w", err)
	}
	return nil
}

// ListAll 读取整张汇总表，保持构建时的 (movieId, genre) 排序
func (r *SummaryRepository) ListAll() ([]model.SummaryRow, error) {
	rows, err := r.db.Raw(`
		SELECT "movieId", title, year, genre, avg_rating, rating_count,
		       top_genome_tag, genome_relevance, most_common_user_tag
		FROM summary_table ORDER BY "movieId", genre
	`).Rows()
	if err != nil {
		return nil, fmt.Errorf("读取 summary_table 失败: %w", err)
	}
	defer rows.Close()

	var out []model.SummaryRow
	for rows.Next() {
		var row model.SummaryRow
		if err := rows.Scan(
			&row.MovieID, &row.Title, &row.Year, &row.Genre,
			&row.AvgRating, &row.RatingCount,
			&row.TopGenomeTag, &row.GenomeRelevance, &row.MostCommonUserTag,
		); err != nil {
			return nil, fmt.Errorf("扫描汇总行失败: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Count 汇总表行数（表不存在时返回错误）
func (r *SummaryRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Raw(`SELECT COUNT(*) FROM summary_table`).Scan(&count).Error; err != nil {
		return 0, fmt.Errorf("统计 summary_table 行数失败: %w", err)
	}
	return count, nil
}
