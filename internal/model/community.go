package model

import (
	"time"
)

// Question 课程问答
type Question struct {
	ID           int       `json:"id" db:"id"`
	CourseID     int       `json:"course_id" db:"course_id" gorm:"index"`
	UserID       int       `json:"user_id" db:"user_id"`
	Content      string    `json:"content" db:"content"`
	LikeCount    int       `json:"like" db:"like_count" gorm:"column:like_count"`
	CommentCount int       `json:"comment_count" db:"comment_count"`
	PostedAt     time.Time `json:"post_date" db:"posted_at"`
	User         *User     `json:"user,omitempty"` // 关联查询时填充
}

// Review 课程评价，Vote 取值 1-5
type Review struct {
	ID       int       `json:"id" db:"id"`
	CourseID int       `json:"course_id" db:"course_id" gorm:"index"`
	UserID   int       `json:"user_id" db:"user_id"`
	Content  string    `json:"content" db:"content"`
	Vote     int       `json:"vote" db:"vote"`
	PostedAt time.Time `json:"post_date" db:"posted_at"`
	User     *User     `json:"user,omitempty"` // 关联查询时填充
}

// ProjectSubmission 课程项目作业提交，只保存对象存储的文件 key，不保存文件内容
type ProjectSubmission struct {
	ID          int       `json:"id" db:"id"`
	CourseID    int       `json:"course_id" db:"course_id" gorm:"index"`
	UserID      int       `json:"user_id" db:"user_id" gorm:"index"`
	FileKey     string    `json:"file_key" db:"file_key"`
	FileName    string    `json:"file_name" db:"file_name"`
	Note        string    `json:"note" db:"note"`
	SubmittedAt time.Time `json:"submitted_at" db:"submitted_at"`
}
