package model

import (
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// Course 课程模型（目录条目），权威数据存于 Postgres，由导入服务从上游目录源刷新
type Course struct {
	ID           int              `json:"id" db:"id"`
	Name         string           `json:"name" db:"name"`
	InstructorID int              `json:"instructor_id" db:"instructor_id" gorm:"index"`
	Price        float64          `json:"price" db:"price"`
	Discount     int              `json:"discount" db:"discount"`
	Vote         float64          `json:"vote" db:"vote" gorm:"index"`
	VoteCount    int              `json:"vote_count" db:"vote_count"`
	Like         int              `json:"like" db:"like_count" gorm:"column:like_count"`
	Share        int              `json:"share" db:"share_count" gorm:"column:share_count"`
	Category     string           `json:"category" db:"category" gorm:"index"`
	Duration     string           `json:"duration" db:"duration"`
	Description  string           `json:"description" db:"description"`
	LessonCount  int              `json:"lesson_count" db:"lesson_count"`
	Image        string           `json:"image" db:"image"`
	Tags         pq.StringArray   `json:"tags" db:"tags" gorm:"type:text[]"`
	Embedding    *pgvector.Vector `json:"-" db:"embedding" gorm:"type:vector(768)"`
	UpdatedAt    time.Time        `json:"updated_at" db:"updated_at" gorm:"index"`

	Chapters []Chapter `json:"chapters,omitempty" gorm:"foreignKey:CourseID"`
}

// Chapter 章节
type Chapter struct {
	ID        int    `json:"id" db:"id"`
	CourseID  int    `json:"course_id" db:"course_id" gorm:"index"`
	Title     string `json:"title" db:"title"`
	SortOrder int    `json:"order" db:"sort_order"`

	Lessons []Lesson `json:"lessons,omitempty" gorm:"foreignKey:ChapterID"`
}

// Lesson 课时，时长与 Course.Duration 一样使用 "1h 30m" 自由格式
type Lesson struct {
	ID        int    `json:"id" db:"id"`
	ChapterID int    `json:"chapter_id" db:"chapter_id" gorm:"index"`
	Title     string `json:"title" db:"title"`
	Duration  string `json:"duration" db:"duration"`
	SortOrder int    `json:"order" db:"sort_order"`
	Preview   bool   `json:"preview" db:"preview"`
}

// Instructor 讲师
type Instructor struct {
	ID        int     `json:"id" db:"id"`
	Name      string  `json:"name" db:"name"`
	Job       string  `json:"job" db:"job"`
	Location  string  `json:"location" db:"location"`
	TimeWork  string  `json:"time_work" db:"time_work"`
	School    string  `json:"school" db:"school"`
	Image     string  `json:"image" db:"image"`
	Vote      float64 `json:"vote" db:"vote"`
	VoteCount int     `json:"vote_count" db:"vote_count"`
}

// CategoryCount 分类统计（发现页使用）
type CategoryCount struct {
	Category string `json:"category" db:"category"`
	Count    int    `json:"count" db:"count"`
}
