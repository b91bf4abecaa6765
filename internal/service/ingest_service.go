package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/DipanshuK2003/Netflix-Data-Analysis/internal/repository"
)

// tableSpec 一个 CSV 文件到一张原始表的映射
type tableSpec struct {
	File    string
	Table   string
	Columns []string
	DDL     string
	Convert func(rec []string) ([]interface{}, error)
}

// 六个 MovieLens 25M 文件的导入规格；列名保持和 CSV 头完全一致
var tableSpecs = []tableSpec{
	{
		File:    "movies.csv",
		Table:   "movies",
		Columns: []string{"movieId", "title", "genres"},
		DDL: `CREATE TABLE movies (
			"movieId" BIGINT PRIMARY KEY,
			title     TEXT NOT NULL,
			genres    TEXT NOT NULL
		)`,
		Convert: convertMovie,
	},
	{
		File:    "ratings.csv",
		Table:   "ratings",
		Columns: []string{"userId", "movieId", "rating", "timestamp"},
		DDL: `CREATE TABLE ratings (
			"userId"  BIGINT           NOT NULL,
			"movieId" BIGINT           NOT NULL,
			rating    DOUBLE PRECISION NOT NULL,
			timestamp BIGINT           NOT NULL
		)`,
		Convert: convertRating,
	},
	{
		File:    "tags.csv",
		Table:   "tags",
		Columns: []string{"userId", "movieId", "tag", "timestamp"},
		DDL: `CREATE TABLE tags (
			"userId"  BIGINT NOT NULL,
			"movieId" BIGINT NOT NULL,
			tag       TEXT   NOT NULL,
			timestamp BIGINT NOT NULL
		)`,
		Convert: convertTag,
	},
	{
		File:    "genome-tags.csv",
		Table:   "genome_tags",
		Columns: []string{"tagId", "tag"},
		DDL: `CREATE TABLE genome_tags (
			"tagId" BIGINT PRIMARY KEY,
			tag     TEXT NOT NULL
		)`,
		Convert: convertGenomeTag,
	},
	{
		File:    "genome-scores.csv",
		Table:   "genome_scores",
		Columns: []string{"movieId", "tagId", "relevance"},
		DDL: `CREATE TABLE genome_scores (
			"movieId" BIGINT           NOT NULL,
			"tagId"   BIGINT           NOT NULL,
			relevance DOUBLE PRECISION NOT NULL
		)`,
		Convert: convertGenomeScore,
	},
	{
		File:    "links.csv",
		Table:   "links",
		Columns: []string{"movieId", "imdbId", "tmdbId"},
		DDL: `CREATE TABLE links (
			"movieId" BIGINT PRIMARY KEY,
			"imdbId"  TEXT,
			"tmdbId"  TEXT
		)`,
		Convert: convertLink,
	},
}

// IngestService 原始 CSV 导入服务
type IngestService struct {
	loader    *repository.BulkLoader
	dataDir   string
	chunkSize int
}

// NewIngestService 创建导入服务
func NewIngestService(loader *repository.BulkLoader, dataDir string, chunkSize int) *IngestService {
	return &IngestService{loader: loader, dataDir: dataDir, chunkSize: chunkSize}
}

// Run 导入全部六个文件；每个文件写入各自独立的表，可以并行
// 任何一个文件失败整个导入就算失败
func (s *IngestService) Run(ctx context.Context) error {
	start := time.Now()

	if _, err := os.Stat(s.dataDir); err != nil {
		return fmt.Errorf("数据目录不可用 %s: %w", s.dataDir, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	// 大文件解析吃 CPU，批量写入占连接，限三个并发
	g.SetLimit(3)
	for _, spec := range tableSpecs {
		spec := spec
		g.Go(func() error {
			return s.ingestFile(ctx, spec)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.Printf("[IngestService] 全部导入完成，耗时 %.2f 分钟", time.Since(start).Minutes())
	return nil
}

// ingestFile 单个文件：校验表头 → 重建表 → 分块 COPY
func (s *IngestService) ingestFile(ctx context.Context, spec tableSpec) error {
	path := filepath.Join(s.dataDir, spec.File)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("打开 %s 失败: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("读取 %s 表头失败: %w", spec.File, err)
	}
	if err := checkHeader(spec, header); err != nil {
		return err
	}

	if err := s.loader.ReplaceTable(spec.Table, spec.DDL); err != nil {
		return err
	}

	chunk := make([][]interface{}, 0, s.chunkSize)
	var total int64
	line := int64(1)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%s 第 %d 行解析失败: %w", spec.File, line+1, err)
		}
		line++

		row, err := spec.Convert(rec)
		if err != nil {
			return fmt.Errorf("%s 第 %d 行: %w", spec.File, line, err)
		}
		chunk = append(chunk, row)

		if len(chunk) >= s.chunkSize {
			if err := s.loader.CopyChunk(spec.Table, spec.Columns, chunk); err != nil {
				return err
			}
			total += int64(len(chunk))
			chunk = chunk[:0]
			log.Printf("[IngestService] %s -> %s 已写入 %d 行", spec.File, spec.Table, total)
		}
	}
	if err := s.loader.CopyChunk(spec.Table, spec.Columns, chunk); err != nil {
		return err
	}
	total += int64(len(chunk))

	log.Printf("[IngestService] %s -> %s 完成，共 %d 行", spec.File, spec.Table, total)
	return nil
}

// checkHeader CSV 表头必须和预期列完全一致，否则属于结构性错误
func checkHeader(spec tableSpec, header []string) error {
	if len(header) != len(spec.Columns) {
		return fmt.Errorf("%s 表头列数不符: 期望 %d 实际 %d", spec.File, len(spec.Columns), len(header))
	}
	for i, want := range spec.Columns {
		if strings.TrimSpace(header[i]) != want {
			return fmt.Errorf("%s 表头第 %d 列不符: 期望 %q 实际 %q", spec.File, i+1, want, header[i])
		}
	}
	return nil
}

func convertMovie(rec []string) ([]interface{}, error) {
	if len(rec) < 3 {
		return nil, fmt.Errorf("movies 行字段不足")
	}
	movieID, err := strconv.ParseInt(rec[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("movieId 非法: %q", rec[0])
	}
	return []interface{}{movieID, rec[1], rec[2]}, nil
}

func convertRating(rec []string) ([]interface{}, error) {
	if len(rec) < 4 {
		return nil, fmt.Errorf("ratings 行字段不足")
	}
	userID, err1 := strconv.ParseInt(rec[0], 10, 64)
	movieID, err2 := strconv.ParseInt(rec[1], 10, 64)
	rating, err3 := strconv.ParseFloat(rec[2], 64)
	ts, err4 := strconv.ParseInt(rec[3], 10, 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return nil, fmt.Errorf("ratings 行数值非法: %v", rec)
	}
	return []interface{}{userID, movieID, rating, ts}, nil
}

func convertTag(rec []string) ([]interface{}, error) {
	if len(rec) < 4 {
		return nil, fmt.Errorf("tags 行字段不足")
	}
	userID, err1 := strconv.ParseInt(rec[0], 10, 64)
	movieID, err2 := strconv.ParseInt(rec[1], 10, 64)
	ts, err3 := strconv.ParseInt(rec[3], 10, 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, fmt.Errorf("tags 行数值非法: %v", rec)
	}
	return []interface{}{userID, movieID, rec[2], ts}, nil
}

func convertGenomeTag(rec []string) ([]interface{}, error) {
	if len(rec) < 2 {
		return nil, fmt.Errorf("genome-tags 行字段不足")
	}
	tagID, err := strconv.ParseInt(rec[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("tagId 非法: %q", rec[0])
	}
	return []interface{}{tagID, rec[1]}, nil
}

func convertGenomeScore(rec []string) ([]interface{}, error) {
	if len(rec) < 3 {
		return nil, fmt.Errorf("genome-scores 行字段不足")
	}
	movieID, err1 := strconv.ParseInt(rec[0], 10, 64)
	tagID, err2 := strconv.ParseInt(rec[1], 10, 64)
	relevance, err3 := strconv.ParseFloat(rec[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, fmt.Errorf("genome-scores 行数值非法: %v", rec)
	}
	return []interface{}{movieID, tagID, relevance}, nil
}

func convertLink(rec []string) ([]interface{}, error) {
	if len(rec) < 3 {
		return nil, fmt.Errorf("links 行字段不足")
	}
	movieID, err := strconv.ParseInt(rec[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("movieId 非法: %q", rec[0])
	}
	// 外部 ID 可能缺失，空串存 NULL
	var imdbID, tmdbID interface{}
	if v := strings.TrimSpace(rec[1]); v != "" {
		imdbID = v
	}
	if v := strings.TrimSpace(rec[2]); v != "" {
		tmdbID = v
	}
	return []interface{}{movieID, imdbID, tmdbID}, nil
}
