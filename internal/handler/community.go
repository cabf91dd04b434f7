package handler

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/user/learnly/internal/middleware"
	"github.com/user/learnly/internal/model"
	"github.com/user/learnly/internal/utils"
)

// ListQuestions 课程问答列表
func (h *Handler) ListQuestions(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	questions, err := h.Repos.Question.ListByCourse(id, limit, offset)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, questions)
}

// QuestionRequest 发布提问请求
type QuestionRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// PostQuestion 发布提问
func (h *Handler) PostQuestion(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}
	userID := middleware.GetUserID(c)

	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "提问内容不能为空")
		return
	}

	question, err := h.Repos.Question.Create(id, userID, req.Content)
	if err != nil {
		log.Printf("[Community] 发布提问失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, question)
}

// LikeQuestion 提问点赞
func (h *Handler) LikeQuestion(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("questionId"))
	if err != nil {
		utils.BadRequest(c, "提问 id 无效")
		return
	}

	affected, err := h.Repos.Question.Like(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if affected == 0 {
		utils.NotFound(c, "提问不存在")
		return
	}

	utils.SuccessWithMessage(c, "已点赞", nil)
}

// ListReviews 课程评价列表
func (h *Handler) ListReviews(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	reviews, err := h.Repos.Review.ListByCourse(id, limit, offset)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, reviews)
}

// ReviewRequest 发布评价请求
type ReviewRequest struct {
	Content string `json:"content" binding:"max=2000"`
	Vote    int    `json:"vote" binding:"required,min=1,max=5"`
}

// PostReview 发布评价，只有已购用户可以评价
func (h *Handler) PostReview(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}
	userID := middleware.GetUserID(c)

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "评分必须是 1-5 的整数")
		return
	}

	enrollment, err := h.Repos.Enrollment.Get(userID, id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if enrollment == nil {
		utils.BadRequest(c, "购买课程后才能评价")
		return
	}

	review, err := h.Repos.Review.Create(id, userID, req.Vote, req.Content)
	if err != nil {
		log.Printf("[Community] 发布评价失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, review)
}

// ProjectRequest 项目作业提交请求。文件本体走对象存储直传，这里只登记文件元数据
type ProjectRequest struct {
	FileName string `json:"file_name" binding:"required,max=255"`
	Note     string `json:"note" binding:"max=2000"`
}

// SubmitProject 提交项目作业
func (h *Handler) SubmitProject(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}
	userID := middleware.GetUserID(c)

	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "文件名不能为空")
		return
	}

	enrollment, err := h.Repos.Enrollment.Get(userID, id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if enrollment == nil {
		utils.BadRequest(c, "购买课程后才能提交作业")
		return
	}

	submission := &model.ProjectSubmission{
		CourseID: id,
		UserID:   userID,
		FileKey:  uuid.NewString(),
		FileName: req.FileName,
		Note:     req.Note,
	}
	if err := h.Repos.Project.Create(submission); err != nil {
		log.Printf("[Community] 保存作业提交失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, submission)
}

// ListProjectSubmissions 我的作业提交记录
func (h *Handler) ListProjectSubmissions(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}
	userID := middleware.GetUserID(c)

	submissions, err := h.Repos.Project.ListByUserCourse(userID, id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, submissions)
}
