package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/DipanshuK2003/Netflix-Data-Analysis/internal/config"
	"github.com/DipanshuK2003/Netflix-Data-Analysis/internal/repository"
	"github.com/DipanshuK2003/Netflix-Data-Analysis/internal/service"
)

// 汇总表构建入口：原始表 -> 质量检查 -> 装配清洗 -> summary_table
func main() {
	var diagnostics bool
	flag.BoolVar(&diagnostics, "diagnostics", false, "额外输出年份提取的诊断分类")
	flag.Parse()

	// 加载环境变量
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}

	cfg := config.Load()

	db, err := repository.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	repos := repository.NewRepositories(db)
	svc := service.NewSummaryService(repos)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := svc.Rebuild(ctx)
	if err != nil {
		log.Fatalf("汇总表重建失败: %v", err)
	}

	cov := report.Coverage
	log.Printf("最终统计: 总行数 %d, 电影数 %d", cov.TotalRows, cov.TotalMovies)
	log.Printf("  缺基因组标签: %d (%.2f%%)", cov.TopGenomeTag.MissingMovies, cov.TopGenomeTag.Percent)
	log.Printf("  缺相关度: %d (%.2f%%)", cov.GenomeRelevance.MissingMovies, cov.GenomeRelevance.Percent)
	log.Printf("  缺用户标签: %d (%.2f%%)", cov.MostCommonUserTag.MissingMovies, cov.MostCommonUserTag.Percent)

	if diagnostics {
		if err := svc.Diagnostics(ctx); err != nil {
			log.Fatalf("诊断失败: %v", err)
		}
	}
}
