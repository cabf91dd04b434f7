package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/learnly/internal/model"
	"github.com/user/learnly/internal/utils"
)

// ListCourses 课程列表，支持 category/tag 过滤和分页
func (h *Handler) ListCourses(c *gin.Context) {
	category := c.Query("category")
	tag := c.Query("tag")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var courses []model.Course
	var err error
	if tag != "" {
		courses, err = h.Repos.Course.ListByTag(tag, limit, offset)
	} else {
		courses, err = h.Repos.Course.List(category, limit, offset)
	}
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, courses)
}

// GetCourse 课程详情（章节、课时、问答和评价预览）
func (h *Handler) GetCourse(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "课程 id 无效")
		return
	}

	course, err := h.Repos.Course.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if course == nil {
		utils.NotFound(c, "课程不存在")
		return
	}

	instructor, err := h.Repos.Instructor.FindByID(course.InstructorID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	questions, _ := h.Repos.Question.ListByCourse(id, 5, 0)
	reviews, _ := h.Repos.Review.ListByCourse(id, 5, 0)

	utils.Success(c, gin.H{
		"course":     course,
		"instructor": instructor,
		"questions":  questions,
		"reviews":    reviews,
	})
}

// SearchCourses 课程搜索
func (h *Handler) SearchCourses(c *gin.Context) {
	keyword := c.Query("q")
	if keyword == "" {
		utils.Success(c, []interface{}{})
		return
	}

	courses, err := h.Catalog.Search(keyword, 50)
	if err != nil {
		utils.InternalServerError(c, "搜索失败")
		return
	}

	utils.Success(c, courses)
}

// Categories 分类统计
func (h *Handler) Categories(c *gin.Context) {
	counts, err := h.Catalog.Categories()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, counts)
}

// Home 首页数据：高分课程 + 分类统计
func (h *Handler) Home(c *gin.Context) {
	topRated, err := h.Catalog.TopRated(10)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	categories, err := h.Catalog.Categories()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, gin.H{
		"site":       h.Config.SiteName,
		"top_rated":  topRated,
		"categories": categories,
	})
}

// SimilarCourses 相似课程推荐
func (h *Handler) SimilarCourses(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "课程 id 无效")
		return
	}

	courses, err := h.Catalog.Similar(id, 6)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, courses)
}

// ListInstructors 讲师列表
func (h *Handler) ListInstructors(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	instructors, err := h.Repos.Instructor.ListAll(limit, offset)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, instructors)
}

// GetInstructor 讲师主页（带名下课程）
func (h *Handler) GetInstructor(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "讲师 id 无效")
		return
	}

	instructor, err := h.Repos.Instructor.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if instructor == nil {
		utils.NotFound(c, "讲师不存在")
		return
	}

	courses, err := h.Repos.Course.ListByInstructor(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, gin.H{
		"instructor": instructor,
		"courses":    courses,
	})
}
