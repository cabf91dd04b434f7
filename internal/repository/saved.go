package repository

import (
	"time"

	"github.com/user/learnly/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SavedRepository struct {
	db *gorm.DB
}

func NewSavedRepository(db *gorm.DB) *SavedRepository {
	return &SavedRepository{db: db}
}

// Add 添加收藏，已存在时什么都不做
func (r *SavedRepository) Add(userID, courseID int) error {
	saved := &model.SavedCourse{
		UserID:    userID,
		CourseID:  courseID,
		CreatedAt: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(saved).Error
}

// Remove 取消收藏
func (r *SavedRepository) Remove(userID, courseID int) error {
	return r.db.Where("user_id = ? AND course_id = ?", userID, courseID).Delete(&model.SavedCourse{}).Error
}

// IsSaved 检查是否已收藏
func (r *SavedRepository) IsSaved(userID, courseID int) (bool, error) {
	var count int64
	err := r.db.Model(&model.SavedCourse{}).Where("user_id = ? AND course_id = ?", userID, courseID).Count(&count).Error
	return count > 0, err
}

// ListByUser 获取用户收藏列表（带课程信息）
func (r *SavedRepository) ListByUser(userID, limit, offset int) ([]*model.SavedCourse, error) {
	var saved []*model.SavedCourse
	err := r.db.Preload("Course").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&saved).Error
	return saved, err
}

// IDsByUser 获取用户收藏的课程 id 列表
func (r *SavedRepository) IDsByUser(userID int) ([]int, error) {
	var ids []int
	err := r.db.Model(&model.SavedCourse{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("course_id", &ids).Error
	return ids, err
}

// DeleteDangling 删除指向已不存在课程的收藏，返回删除数量
func (r *SavedRepository) DeleteDangling() (int64, error) {
	result := r.db.Where("course_id NOT IN (?)",
		r.db.Model(&model.Course{}).Select("id")).Delete(&model.SavedCourse{})
	return result.RowsAffected, result.Error
}
