package service

import (
	"errors"
	"strconv"

	"github.com/user/learnly/internal/model"
	"github.com/user/learnly/internal/progress"
	"github.com/user/learnly/internal/repository"
)

// 服务层错误，handler 据此决定响应码
var (
	ErrCourseNotFound = errors.New("课程不存在")
	ErrNotEnrolled    = errors.New("课程未购买")
	ErrInvalidInput   = errors.New("参数无效")
)

// ProgressEntry 返回给客户端的进度条目，保持上游 purchaseCourse 的形状
type ProgressEntry struct {
	TimeWatched int `json:"time_watched"`
}

// UserCollections 用户集合快照：每次写操作后返回的权威结果
type UserCollections struct {
	Cart      []int                    `json:"cart"`
	Saved     []int                    `json:"saved_course_list"`
	Purchases map[string]ProgressEntry `json:"purchase_course"`
}

// 集合服务依赖的最小存储接口，具体实现在 repository 包
type courseStore interface {
	FindByID(id int) (*model.Course, error)
}

type cartStore interface {
	Add(userID, courseID int) error
	Remove(userID, courseID int) error
	IDsByUser(userID int) ([]int, error)
}

type savedStore interface {
	Add(userID, courseID int) error
	Remove(userID, courseID int) error
	IsSaved(userID, courseID int) (bool, error)
	IDsByUser(userID int) ([]int, error)
}

type enrollmentStore interface {
	Get(userID, courseID int) (*model.Enrollment, error)
	Purchase(userID, courseID int) (*model.Enrollment, error)
	RecordProgress(userID, courseID, timeWatched int) (*model.Enrollment, error)
	ListByUser(userID int) ([]model.Enrollment, error)
}

type catalogSource interface {
	FullCatalog() ([]model.Course, error)
}

// LibraryService 用户课程集合服务：购物车、收藏、购买、进度
// 所有写操作都是按 (user_id, course_id) 的原子行级操作，
// 先落库再返回快照，不存在需要回滚的乐观更新。
type LibraryService struct {
	courses     courseStore
	cart        cartStore
	saved       savedStore
	enrollments enrollmentStore
	catalog     catalogSource
}

// NewLibraryService 创建集合服务
func NewLibraryService(repos *repository.Repositories, catalog *CatalogService) *LibraryService {
	return &LibraryService{
		courses:     repos.Course,
		cart:        repos.Cart,
		saved:       repos.Saved,
		enrollments: repos.Enrollment,
		catalog:     catalog,
	}
}

// requireCourse 校验课程存在，写操作发起前的参数检查
func (s *LibraryService) requireCourse(courseID int) error {
	if courseID <= 0 {
		return ErrInvalidInput
	}
	course, err := s.courses.FindByID(courseID)
	if err != nil {
		return err
	}
	if course == nil {
		return ErrCourseNotFound
	}
	return nil
}

// ToggleSaved 收藏开关：已收藏则取消，未收藏则添加，返回切换后的状态
// 连续两次调用恢复原状
func (s *LibraryService) ToggleSaved(userID, courseID int) (bool, error) {
	if err := s.requireCourse(courseID); err != nil {
		return false, err
	}

	saved, err := s.saved.IsSaved(userID, courseID)
	if err != nil {
		return false, err
	}

	if saved {
		if err := s.saved.Remove(userID, courseID); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := s.saved.Add(userID, courseID); err != nil {
		return false, err
	}
	return true, nil
}

// AddToCart 加入购物车，课程已在购物车时为幂等操作
func (s *LibraryService) AddToCart(userID, courseID int) error {
	if err := s.requireCourse(courseID); err != nil {
		return err
	}

	// 已购课程不允许再次加购
	enrollment, err := s.enrollments.Get(userID, courseID)
	if err != nil {
		return err
	}
	if enrollment != nil {
		return repository.ErrAlreadyEnrolled
	}

	return s.cart.Add(userID, courseID)
}

// RemoveFromCart 从购物车移除
func (s *LibraryService) RemoveFromCart(userID, courseID int) error {
	if err := s.requireCourse(courseID); err != nil {
		return err
	}
	return s.cart.Remove(userID, courseID)
}

// Purchase 购买课程：移出购物车 + 建立进度记录，单事务完成
func (s *LibraryService) Purchase(userID, courseID int) (*model.Enrollment, error) {
	if err := s.requireCourse(courseID); err != nil {
		return nil, err
	}
	return s.enrollments.Purchase(userID, courseID)
}

// RecordProgress 上报观看进度（分钟），未购买的课程直接拒绝
func (s *LibraryService) RecordProgress(userID, courseID, timeWatched int) (*model.Enrollment, error) {
	if timeWatched < 0 {
		return nil, ErrInvalidInput
	}

	enrollment, err := s.enrollments.Get(userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, ErrNotEnrolled
	}

	return s.enrollments.RecordProgress(userID, courseID, timeWatched)
}

// CourseStatus 推导用户课程状态（进行中/已完成）
func (s *LibraryService) CourseStatus(userID int) (progress.Status, error) {
	enrollments, err := s.enrollments.ListByUser(userID)
	if err != nil {
		return progress.Status{}, err
	}

	catalog, err := s.catalog.FullCatalog()
	if err != nil {
		return progress.Status{}, err
	}

	return progress.Partition(enrollments, catalog), nil
}

// Collections 获取用户集合快照
func (s *LibraryService) Collections(userID int) (*UserCollections, error) {
	cart, err := s.cart.IDsByUser(userID)
	if err != nil {
		return nil, err
	}

	saved, err := s.saved.IDsByUser(userID)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.enrollments.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	purchases := make(map[string]ProgressEntry, len(enrollments))
	for _, e := range enrollments {
		purchases[strconv.Itoa(e.CourseID)] = ProgressEntry{TimeWatched: e.TimeWatched}
	}

	if cart == nil {
		cart = []int{}
	}
	if saved == nil {
		saved = []int{}
	}

	return &UserCollections{
		Cart:      cart,
		Saved:     saved,
		Purchases: purchases,
	}, nil
}
