package repository

import (
	"time"

	"github.com/user/learnly/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// Add 加入购物车，已存在时什么都不做（不会产生重复条目）
func (r *CartRepository) Add(userID, courseID int) error {
	item := &model.CartItem{
		UserID:    userID,
		CourseID:  courseID,
		CreatedAt: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(item).Error
}

// Remove 从购物车移除
func (r *CartRepository) Remove(userID, courseID int) error {
	return r.db.Where("user_id = ? AND course_id = ?", userID, courseID).Delete(&model.CartItem{}).Error
}

// ListByUser 获取用户购物车（带课程信息）
func (r *CartRepository) ListByUser(userID int) ([]*model.CartItem, error) {
	var items []*model.CartItem
	err := r.db.Preload("Course").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// IDsByUser 获取用户购物车中的课程 id 列表
func (r *CartRepository) IDsByUser(userID int) ([]int, error) {
	var ids []int
	err := r.db.Model(&model.CartItem{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("course_id", &ids).Error
	return ids, err
}

// DeleteDangling 删除指向已不存在课程的购物车条目，返回删除数量
func (r *CartRepository) DeleteDangling() (int64, error) {
	result := r.db.Where("course_id NOT IN (?)",
		r.db.Model(&model.Course{}).Select("id")).Delete(&model.CartItem{})
	return result.RowsAffected, result.Error
}
