package service

import (
	"log"
	"time"

	"github.com/user/learnly/internal/repository"
)

// CleanupService 清理服务：修复指向已删除课程的悬空引用
// 推导层对悬空引用只是静默跳过，真正的修复在这里完成（删掉并留下日志）
type CleanupService struct {
	repos *repository.Repositories
}

// NewCleanupService 创建清理服务
func NewCleanupService(repos *repository.Repositories) *CleanupService {
	return &CleanupService{repos: repos}
}

// Start 启动定时清理任务
func (s *CleanupService) Start() {
	ticker := time.NewTicker(24 * time.Hour)

	// 启动时先运行一次
	go s.Run()

	go func() {
		for range ticker.C {
			s.Run()
		}
	}()
}

// Run 立即执行一轮清理（定时任务和管理接口共用）
func (s *CleanupService) Run() {
	log.Println("[CleanupService] 开始清理悬空引用...")

	if affected, err := s.repos.Cart.DeleteDangling(); err != nil {
		log.Printf("[CleanupService] 清理购物车悬空引用失败: %v", err)
	} else if affected > 0 {
		log.Printf("[CleanupService] 已清理 %d 条购物车悬空引用", affected)
	}

	if affected, err := s.repos.Saved.DeleteDangling(); err != nil {
		log.Printf("[CleanupService] 清理收藏悬空引用失败: %v", err)
	} else if affected > 0 {
		log.Printf("[CleanupService] 已清理 %d 条收藏悬空引用", affected)
	}

	if affected, err := s.repos.Enrollment.DeleteDangling(); err != nil {
		log.Printf("[CleanupService] 清理进度悬空引用失败: %v", err)
	} else if affected > 0 {
		log.Printf("[CleanupService] 已清理 %d 条进度悬空引用", affected)
	}
}
