package model

import (
	"time"
)

// User 用户模型
type User struct {
	ID           int       `json:"id" db:"id"`
	Email        string    `json:"email" db:"email" gorm:"unique"`
	Username     string    `json:"username" db:"username" gorm:"unique"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	Job          string    `json:"job" db:"job"`
	Image        string    `json:"image" db:"image"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// CartItem 购物车条目，(user_id, course_id) 唯一，保证不会出现重复课程
type CartItem struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_cart_user_course"`
	CourseID  int       `json:"course_id" db:"course_id" gorm:"uniqueIndex:idx_cart_user_course"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Course    *Course   `json:"course,omitempty"` // 关联查询时填充
}

// SavedCourse 课程收藏
type SavedCourse struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_saved_user_course"`
	CourseID  int       `json:"course_id" db:"course_id" gorm:"uniqueIndex:idx_saved_user_course"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Course    *Course   `json:"course,omitempty"` // 关联查询时填充
}

// Enrollment 已购课程及观看进度（分钟）
type Enrollment struct {
	ID          int       `json:"id" db:"id"`
	UserID      int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_enroll_user_course"`
	CourseID    int       `json:"course_id" db:"course_id" gorm:"uniqueIndex:idx_enroll_user_course"`
	TimeWatched int       `json:"time_watched" db:"time_watched"`
	PurchasedAt time.Time `json:"purchased_at" db:"purchased_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
