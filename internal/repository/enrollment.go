package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/user/learnly/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrAlreadyEnrolled 重复购买同一门课
var ErrAlreadyEnrolled = errors.New("课程已购买")

type EnrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Purchase 购买课程：移出购物车并创建进度记录，整体在一个事务内完成。
// 并发的重复请求会在唯一索引上冲突，最终状态与请求到达顺序无关。
func (r *EnrollmentRepository) Purchase(userID, courseID int) (*model.Enrollment, error) {
	enrollment := &model.Enrollment{
		UserID:      userID,
		CourseID:    courseID,
		TimeWatched: 0,
		PurchasedAt: time.Now(),
		UpdatedAt:   time.Now(),
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Enrollment{}).
			Where("user_id = ? AND course_id = ?", userID, courseID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyEnrolled
		}

		if err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).
			Delete(&model.CartItem{}).Error; err != nil {
			return err
		}

		return tx.Create(enrollment).Error
	})
	if err != nil {
		return nil, err
	}

	return enrollment, nil
}

// RecordProgress 上报观看进度，只增不减（客户端重放旧进度不会回退）
func (r *EnrollmentRepository) RecordProgress(userID, courseID, timeWatched int) (*model.Enrollment, error) {
	result := r.db.Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND time_watched < ?", userID, courseID, timeWatched).
		Updates(map[string]interface{}{
			"time_watched": timeWatched,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}

	enrollment, err := r.Get(userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, fmt.Errorf("课程未购买，无法记录进度")
	}
	return enrollment, nil
}

// Get 获取单条进度记录
func (r *EnrollmentRepository) Get(userID, courseID int) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// ListByUser 获取用户全部进度记录，按购买时间排序（划分结果顺序稳定）
func (r *EnrollmentRepository) ListByUser(userID int) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.db.Where("user_id = ?", userID).
		Order("purchased_at ASC, id ASC").
		Find(&enrollments).Error
	return enrollments, err
}

// Upsert 导入用户种子数据时写入进度（冲突时保留较大的观看时间）
func (r *EnrollmentRepository) Upsert(e *model.Enrollment) error {
	if e.PurchasedAt.IsZero() {
		e.PurchasedAt = time.Now()
	}
	e.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"time_watched": gorm.Expr("GREATEST(enrollments.time_watched, EXCLUDED.time_watched)"),
			"updated_at":   time.Now(),
		}),
	}).Create(e).Error
}

// DeleteDangling 删除指向已不存在课程的进度记录，返回删除数量
func (r *EnrollmentRepository) DeleteDangling() (int64, error) {
	result := r.db.Where("course_id NOT IN (?)",
		r.db.Model(&model.Course{}).Select("id")).Delete(&model.Enrollment{})
	return result.RowsAffected, result.Error
}
