package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/DipanshuK2003/Netflix-Data-Analysis/internal/config"
	"github.com/DipanshuK2003/Netflix-Data-Analysis/internal/repository"
	"github.com/DipanshuK2003/Netflix-Data-Analysis/internal/service"
)

// 原始导入入口：data/*.csv -> PostgreSQL 六张原始表
// 不做任何清洗转换，逐字保留源文件内容
func main() {
	// 加载环境变量
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}

	cfg := config.Load()

	loader, err := repository.NewBulkLoader(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	defer loader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := service.NewIngestService(loader, cfg.DataDir, cfg.ChunkSize)
	if err := svc.Run(ctx); err != nil {
		log.Fatalf("导入失败: %v", err)
	}
}
