package handler

import (
	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/learnly/internal/middleware"
	"github.com/user/learnly/internal/repository"
	"github.com/user/learnly/internal/service"
	"github.com/user/learnly/internal/utils"
)

// courseIDParam 解析路径里的课程 id
func courseIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		utils.BadRequest(c, "课程 id 无效")
		return 0, false
	}
	return id, true
}

// writeLibraryError 把服务层错误翻译成响应
func writeLibraryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		utils.NotFound(c, "课程不存在")
	case errors.Is(err, service.ErrNotEnrolled):
		utils.BadRequest(c, "课程未购买")
	case errors.Is(err, service.ErrInvalidInput):
		utils.BadRequest(c, "参数无效")
	case errors.Is(err, repository.ErrAlreadyEnrolled):
		utils.BadRequest(c, "课程已购买")
	default:
		log.Printf("[Library] 操作失败: %v", err)
		utils.InternalServerError(c, "")
	}
}

// GetCart 购物车内容
func (h *Handler) GetCart(c *gin.Context) {
	userID := middleware.GetUserID(c)

	items, err := h.Repos.Cart.ListByUser(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, items)
}

// AddToCart 加入购物车。写操作一律先落库，成功后返回最新集合快照
func (h *Handler) AddToCart(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}
	userID := middleware.GetUserID(c)

	if err := h.Library.AddToCart(userID, id); err != nil {
		writeLibraryError(c, err)
		return
	}

	h.respondCollections(c, userID)
}

// RemoveFromCart 从购物车移除
func (h *Handler) RemoveFromCart(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}
	userID := middleware.GetUserID(c)

	if err := h.Library.RemoveFromCart(userID, id); err != nil {
		writeLibraryError(c, err)
		return
	}

	h.respondCollections(c, userID)
}

// Purchase 购买课程
func (h *Handler) Purchase(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}
	userID := middleware.GetUserID(c)

	enrollment, err := h.Library.Purchase(userID, id)
	if err != nil {
		writeLibraryError(c, err)
		return
	}

	collections, err := h.Library.Collections(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, gin.H{
		"enrollment":  enrollment,
		"collections": collections,
	})
}

// ToggleSaved 收藏开关
func (h *Handler) ToggleSaved(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}
	userID := middleware.GetUserID(c)

	saved, err := h.Library.ToggleSaved(userID, id)
	if err != nil {
		writeLibraryError(c, err)
		return
	}

	collections, err := h.Library.Collections(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, gin.H{
		"saved":       saved,
		"collections": collections,
	})
}

// ListSaved 收藏列表
func (h *Handler) ListSaved(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	saved, err := h.Repos.Saved.ListByUser(userID, limit, offset)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, saved)
}

// MyCourses 我的课程：按进度划分为进行中/已完成
func (h *Handler) MyCourses(c *gin.Context) {
	userID := middleware.GetUserID(c)

	status, err := h.Library.CourseStatus(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, status)
}

// ProgressRequest 进度上报请求
type ProgressRequest struct {
	TimeWatched int `json:"time_watched" binding:"min=0"`
}

// ReportProgress 上报观看进度
func (h *Handler) ReportProgress(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}
	userID := middleware.GetUserID(c)

	var req ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "进度数据无效")
		return
	}

	enrollment, err := h.Library.RecordProgress(userID, id, req.TimeWatched)
	if err != nil {
		writeLibraryError(c, err)
		return
	}

	utils.Success(c, enrollment)
}

// respondCollections 写操作成功后的统一响应
func (h *Handler) respondCollections(c *gin.Context, userID int) {
	collections, err := h.Library.Collections(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, collections)
}
