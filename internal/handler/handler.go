package handler

import (
	"github.com/DipanshuK2003/Netflix-Data-Analysis/internal/config"
	"github.com/DipanshuK2003/Netflix-Data-Analysis/internal/repository"
	"github.com/DipanshuK2003/Netflix-Data-Analysis/internal/service"
)

// Handler HTTP 处理器
type Handler struct {
	Repos    *repository.Repositories
	Config   *config.Config
	Summary  *service.SummaryService
	Analysis *service.AnalysisService
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	return &Handler{
		Repos:    repos,
		Config:   cfg,
		Summary:  service.NewSummaryService(repos),
		Analysis: service.NewAnalysisService(repos),
	}
}
