package handler

import (
	"github.com/user/learnly/internal/config"
	"github.com/user/learnly/internal/repository"
	"github.com/user/learnly/internal/service"
)

// Handler HTTP 处理器
type Handler struct {
	Repos   *repository.Repositories
	Config  *config.Config
	Catalog *service.CatalogService
	Library *service.LibraryService

	// 后台服务，管理接口用来手动触发，main 中注入
	Importer *service.Importer
	Cleanup  *service.CleanupService
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	// 创建目录服务
	catalog := service.NewCatalogService(repos.Course, repos.Instructor)

	// 创建用户课程集合服务
	library := service.NewLibraryService(repos, catalog)

	return &Handler{
		Repos:   repos,
		Config:  cfg,
		Catalog: catalog,
		Library: library,
	}
}
