package repository

import (
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"github.com/user/learnly/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// FindByID 根据 ID 查找课程（带章节和课时）
func (r *CourseRepository) FindByID(id int) (*model.Course, error) {
	var course model.Course
	err := r.db.
		Preload("Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Chapters.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&course, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &course, nil
}

// List 分页获取课程列表，category 为空时不过滤
func (r *CourseRepository) List(category string, limit, offset int) ([]model.Course, error) {
	var courses []model.Course
	q := r.db.Order("vote DESC, vote_count DESC")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Limit(limit).Offset(offset).Find(&courses).Error
	return courses, err
}

// ListAll 获取完整目录（进度划分和清理任务使用）
func (r *CourseRepository) ListAll() ([]model.Course, error) {
	var courses []model.Course
	err := r.db.Order("id ASC").Find(&courses).Error
	return courses, err
}

// ListByTag 按标签过滤课程
func (r *CourseRepository) ListByTag(tag string, limit, offset int) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.Where("tags @> ?", pq.StringArray{tag}).
		Order("vote DESC, vote_count DESC").
		Limit(limit).
		Offset(offset).
		Find(&courses).Error
	return courses, err
}

// ListByInstructor 获取讲师名下课程
func (r *CourseRepository) ListByInstructor(instructorID int) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.Where("instructor_id = ?", instructorID).
		Order("vote DESC").
		Find(&courses).Error
	return courses, err
}

// Search 按关键词搜索课程名称/描述/分类
func (r *CourseRepository) Search(keyword string, limit int) ([]model.Course, error) {
	var courses []model.Course
	pattern := "%" + keyword + "%"
	err := r.db.
		Where("name ILIKE ? OR description ILIKE ? OR category ILIKE ?", pattern, pattern, pattern).
		Order("vote DESC, vote_count DESC").
		Limit(limit).
		Find(&courses).Error
	return courses, err
}

// CountByCategory 统计每个分类的课程数量
func (r *CourseRepository) CountByCategory() ([]model.CategoryCount, error) {
	var counts []model.CategoryCount
	err := r.db.Model(&model.Course{}).
		Select("category, count(*) as count").
		Where("category <> ''").
		Group("category").
		Order("count DESC").
		Scan(&counts).Error
	return counts, err
}

// Similar 按向量余弦距离查找相似课程，没有向量的课程不参与
func (r *CourseRepository) Similar(courseID int, limit int) ([]model.Course, error) {
	var course model.Course
	err := r.db.Select("id", "embedding").First(&course, courseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if course.Embedding == nil {
		return []model.Course{}, nil
	}

	var courses []model.Course
	err = r.db.
		Where("id <> ? AND embedding IS NOT NULL", courseID).
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:  "embedding <=> ?",
			Vars: []interface{}{*course.Embedding},
		}}).
		Limit(limit).
		Find(&courses).Error
	return courses, err
}

// Upsert 创建或更新课程（按主键冲突更新，导入服务使用）
func (r *CourseRepository) Upsert(course *model.Course) error {
	course.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "instructor_id", "price", "discount", "vote", "vote_count",
			"like_count", "share_count", "category", "duration", "description",
			"lesson_count", "image", "tags", "updated_at",
		}),
	}).Omit("Chapters").Create(course).Error
}

// UpdateEmbedding 写入课程语义向量
func (r *CourseRepository) UpdateEmbedding(courseID int, embedding pgvector.Vector) error {
	return r.db.Model(&model.Course{}).Where("id = ?", courseID).
		Update("embedding", embedding).Error
}

// ListMissingEmbedding 列出还没有语义向量的课程
func (r *CourseRepository) ListMissingEmbedding(limit int) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.Where("embedding IS NULL").Limit(limit).Find(&courses).Error
	return courses, err
}

// ReplaceChapters 重建课程的章节与课时（导入服务使用）
func (r *CourseRepository) ReplaceChapters(courseID int, chapters []model.Chapter) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var chapterIDs []int
		if err := tx.Model(&model.Chapter{}).Where("course_id = ?", courseID).
			Pluck("id", &chapterIDs).Error; err != nil {
			return err
		}
		if len(chapterIDs) > 0 {
			if err := tx.Where("chapter_id IN ?", chapterIDs).Delete(&model.Lesson{}).Error; err != nil {
				return err
			}
			if err := tx.Where("course_id = ?", courseID).Delete(&model.Chapter{}).Error; err != nil {
				return err
			}
		}
		for i := range chapters {
			chapters[i].CourseID = courseID
		}
		if len(chapters) == 0 {
			return nil
		}
		return tx.Create(&chapters).Error
	})
}

// Count 获取课程总数
func (r *CourseRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Course{}).Count(&count).Error
	return count, err
}
