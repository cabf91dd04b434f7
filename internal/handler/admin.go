package handler

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/user/learnly/internal/utils"
)

// SyncCatalog 手动触发一次目录同步（后台执行，立即返回）
func (h *Handler) SyncCatalog(c *gin.Context) {
	if h.Importer == nil {
		utils.BadRequest(c, "未配置上游目录源")
		return
	}

	go func() {
		if err := h.Importer.Sync(context.Background()); err != nil {
			log.Printf("[Admin] 手动同步失败: %v", err)
		}
	}()

	utils.SuccessWithMessage(c, "同步已开始", nil)
}

// RunCleanup 手动触发一轮悬空引用清理
func (h *Handler) RunCleanup(c *gin.Context) {
	go h.Cleanup.Run()
	utils.SuccessWithMessage(c, "清理已开始", nil)
}

// Stats 站点统计
func (h *Handler) Stats(c *gin.Context) {
	users, err := h.Repos.User.Count()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	courses, err := h.Repos.Course.Count()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, gin.H{
		"users":   users,
		"courses": courses,
	})
}
