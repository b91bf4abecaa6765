package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/DipanshuK2003/Netflix-Data-Analysis/internal/model"
	"github.com/DipanshuK2003/Netflix-Data-Analysis/internal/pipeline"
	"github.com/DipanshuK2003/Netflix-Data-Analysis/internal/repository"
)

// SummaryService 汇总表构建服务
// 流程：结构校验 → 质量检查 → 装配 → 两段清洗 → 原子替换 → 完整性报告
type SummaryService struct {
	repos *repository.Repositories
}

// NewSummaryService 创建汇总服务
func NewSummaryService(repos *repository.Repositories) *SummaryService {
	return &SummaryService{repos: repos}
}

// Rebuild 从当前原始表内容全量重建 summary_table
// 行级异常（缺年份/缺评分/缺标签）吸收为空值并由清洗阶段处理；
// 只有结构性错误（缺表缺列、连接失败）才会让整个重建失败
func (s *SummaryService) Rebuild(ctx context.Context) (*model.BuildReport, error) {
	start := time.Now()
	log.Println("[SummaryService] 开始重建汇总表...")

	if err := s.repos.Entity.ValidateSchema(); err != nil {
		return nil, fmt.Errorf("原始表结构校验失败: %w", err)
	}

	movies, err := s.repos.Entity.AllMovies()
	if err != nil {
		return nil, err
	}
	log.Printf("[SummaryService] 读入 %d 部电影", len(movies))

	// 数据质量检查：类型串不应含重复项
	dupMovies := pipeline.CountDuplicateGenres(movies)
	if dupMovies > 0 {
		log.Printf("[SummaryService] 数据质量警告: %d 部电影的类型串含重复项", dupMovies)
	} else {
		log.Println("[SummaryService] 类型唯一性检查通过")
	}

	// 评分聚合（流式，2500 万行不落内存）
	ratings := pipeline.NewRatingAccumulator()
	err = s.repos.Entity.StreamRatings(func(movieID int64, rating float64) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		ratings.Add(movieID, rating)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 基因组标签：相关度最高者胜，平手按 tagId
	dict, err := s.repos.Entity.GenomeTagDict()
	if err != nil {
		return nil, err
	}
	genomePicker := pipeline.NewGenomePicker()
	err = s.repos.Entity.StreamGenomeScores(func(movieID, tagID int64, relevance float64) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		// 字典里没有的 tagId 对齐原始查询的内连接语义，直接跳过
		if tag, ok := dict[tagID]; ok {
			genomePicker.Offer(movieID, tagID, tag, relevance)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 用户标签：频次最高者胜，平手按字典序
	userPicker := pipeline.NewUserTagPicker()
	err = s.repos.Entity.StreamTags(func(movieID int64, tag string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		userPicker.Offer(movieID, tag)
		return nil
	})
	if err != nil {
		return nil, err
	}

	rows := pipeline.Assemble(pipeline.AssembleInput{
		Movies:   movies,
		Ratings:  ratings,
		Genome:   genomePicker.Best(),
		UserTags: userPicker.Best(),
	})
	initial := len(rows)
	log.Printf("[SummaryService] 装配完成，初始 %d 行（电影×类型）", initial)

	kept, removedYears, removedRatings := pipeline.FilterComplete(rows)
	log.Printf("[SummaryService] 清洗: 无年份删 %d 行, 无评分删 %d 行, 保留 %d 行",
		removedYears, removedRatings, len(kept))

	if err := s.repos.Summary.Replace(kept); err != nil {
		return nil, err
	}

	report := &model.BuildReport{
		DuplicateGenreMovies: dupMovies,
		InitialRows:          initial,
		RemovedYearRows:      removedYears,
		RemovedRatingRows:    removedRatings,
		FinalRows:            len(kept),
		Coverage:             pipeline.Coverage(kept),
	}

	log.Printf("[SummaryService] 重建完成: %d -> %d 行，耗时 %.2f 分钟",
		initial, len(kept), time.Since(start).Minutes())
	return report, nil
}

// CoverageFromStore 对落库后的汇总表重新计算完整性报告
func (s *SummaryService) CoverageFromStore() (model.CoverageReport, error) {
	rows, err := s.repos.Summary.ListAll()
	if err != nil {
		return model.CoverageReport{}, err
	}
	return pipeline.Coverage(rows), nil
}

// Diagnostics 年份提取诊断：对提取失败的标题做归类统计，仅写日志
func (s *SummaryService) Diagnostics(ctx context.Context) error {
	movies, err := s.repos.Entity.AllMovies()
	if err != nil {
		return err
	}

	counts := map[string]int{}
	for _, m := range movies {
		if err := ctx.Err(); err != nil {
			return err
		}
		counts[pipeline.ClassifyTitle(m.Title)]++
	}

	log.Printf("[SummaryService] 年份诊断: 可提取 %d, 无四位数字 %d, 有四位数字但格式不符 %d",
		counts[pipeline.TitleYearExtracted],
		counts[pipeline.TitleNoFourDigits],
		counts[pipeline.TitleFourDigitsBadFormat])
	return nil
}
