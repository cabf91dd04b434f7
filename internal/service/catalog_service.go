package service

import (
	"log"
	"time"

	"github.com/user/learnly/internal/model"
	"github.com/user/learnly/internal/repository"
	"github.com/user/learnly/internal/utils"
	"golang.org/x/sync/singleflight"
)

// CatalogService 课程目录服务：搜索、分类统计、相似推荐，带缓存
type CatalogService struct {
	courseRepo     *repository.CourseRepository
	instructorRepo *repository.InstructorRepository
	searchCache    *utils.TTLCache[[]model.Course]
	sf             singleflight.Group
}

// NewCatalogService 创建目录服务
func NewCatalogService(courseRepo *repository.CourseRepository, instructorRepo *repository.InstructorRepository) *CatalogService {
	return &CatalogService{
		courseRepo:     courseRepo,
		instructorRepo: instructorRepo,
		// 搜索结果最多缓存 1000 个关键词，有效期 10 分钟
		searchCache: utils.NewTTLCache[[]model.Course](1000, 10*time.Minute),
	}
}

// Search 按关键词搜索课程
// 1. 先查 LRU 缓存
// 2. 未命中时用 singleflight 合并并发的同词查询
func (s *CatalogService) Search(keyword string, limit int) ([]model.Course, error) {
	key := utils.NormalizeKeyword(keyword)
	if key == "" {
		return []model.Course{}, nil
	}

	if cached, ok := s.searchCache.Get(key); ok {
		return cached, nil
	}

	val, err, _ := s.sf.Do(key, func() (interface{}, error) {
		courses, err := s.courseRepo.Search(key, limit)
		if err != nil {
			return nil, err
		}
		s.searchCache.Set(key, courses)
		return courses, nil
	})
	if err != nil {
		return nil, err
	}

	return val.([]model.Course), nil
}

// Categories 分类统计（全局缓存 5 分钟）
func (s *CatalogService) Categories() ([]model.CategoryCount, error) {
	if cached, ok := utils.CacheGet("catalog:categories"); ok {
		return cached.([]model.CategoryCount), nil
	}

	counts, err := s.courseRepo.CountByCategory()
	if err != nil {
		return nil, err
	}

	utils.CacheSet("catalog:categories", counts, 5*time.Minute)
	return counts, nil
}

// TopRated 高分课程（首页使用，全局缓存 5 分钟）
func (s *CatalogService) TopRated(limit int) ([]model.Course, error) {
	if cached, ok := utils.CacheGet("catalog:top_rated"); ok {
		return cached.([]model.Course), nil
	}

	courses, err := s.courseRepo.List("", limit, 0)
	if err != nil {
		return nil, err
	}

	utils.CacheSet("catalog:top_rated", courses, 5*time.Minute)
	return courses, nil
}

// FullCatalog 完整目录，进度划分使用（缓存 1 分钟，导入后的轻微滞后可接受）
func (s *CatalogService) FullCatalog() ([]model.Course, error) {
	if cached, ok := utils.CacheGet("catalog:all"); ok {
		return cached.([]model.Course), nil
	}

	courses, err := s.courseRepo.ListAll()
	if err != nil {
		return nil, err
	}

	utils.CacheSet("catalog:all", courses, time.Minute)
	return courses, nil
}

// Similar 相似课程推荐（向量检索）
func (s *CatalogService) Similar(courseID, limit int) ([]model.Course, error) {
	courses, err := s.courseRepo.Similar(courseID, limit)
	if err != nil {
		log.Printf("[CatalogService] 相似课程查询失败: %v", err)
		return nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}
	return courses, nil
}

// InvalidateCaches 导入完成后清掉目录相关缓存
func (s *CatalogService) InvalidateCaches() {
	utils.CacheDelete("catalog:categories")
	utils.CacheDelete("catalog:top_rated")
	utils.CacheDelete("catalog:all")
	s.searchCache.Clear()
}
