package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// BulkLoader 原始 CSV 的批量写入器
// 走 lib/pq 的 COPY FROM 协议，比逐行 INSERT 快一个数量级；
// 其余读写仍由 gorm 承担
type BulkLoader struct {
	db *sql.DB
}

// NewBulkLoader 创建批量写入器
func NewBulkLoader(databaseURL string) (*BulkLoader, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("数据库 ping 失败: %w", err)
	}
	return &BulkLoader{db: db}, nil
}

// ReplaceTable 删掉旧表并按给定 DDL 重建（与原始导入的 replace 语义一致）
func (l *BulkLoader) ReplaceTable(table, ddl string) error {
	if _, err := l.db.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %s`, table)); err != nil {
		return fmt.Errorf("删除旧表 %s 失败: %w", table, err)
	}
	if _, err := l.db.Exec(ddl); err != nil {
		return fmt.Errorf("建表 %s 失败: %w", table, err)
	}
	return nil
}

// CopyChunk 用 COPY 把一批行写入表；一批一个事务
func (l *BulkLoader) CopyChunk(table string, columns []string, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("开启事务失败: %w", err)
	}

	stmt, err := tx.Prepare(pq.CopyIn(table, columns...))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("准备 COPY 失败: %w", err)
	}

	for _, row := range rows {
		if _, err := stmt.Exec(row...); err != nil {
			stmt.Close()
			tx.Rollback()
			return fmt.Errorf("写入 %s 失败: %w", table, err)
		}
	}

	// 空 Exec 冲刷 COPY 缓冲
	if _, err := stmt.Exec(); err != nil {
		stmt.Close()
		tx.Rollback()
		return fmt.Errorf("结束 COPY 失败: %w", err)
	}
	if err := stmt.Close(); err != nil {
		tx.Rollback()
		return fmt.Errorf("关闭 COPY 语句失败: %w", err)
	}
	return tx.Commit()
}

// Close 关闭底层连接
func (l *BulkLoader) Close() error {
	return l.db.Close()
}
