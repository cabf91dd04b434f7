package repository

import (
	"errors"

	"github.com/user/learnly/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InstructorRepository struct {
	db *gorm.DB
}

func NewInstructorRepository(db *gorm.DB) *InstructorRepository {
	return &InstructorRepository{db: db}
}

// FindByID 根据 ID 查找讲师
func (r *InstructorRepository) FindByID(id int) (*model.Instructor, error) {
	var instructor model.Instructor
	err := r.db.First(&instructor, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &instructor, nil
}

// ListAll 获取讲师列表
func (r *InstructorRepository) ListAll(limit, offset int) ([]model.Instructor, error) {
	var instructors []model.Instructor
	err := r.db.Order("vote DESC, vote_count DESC").
		Limit(limit).
		Offset(offset).
		Find(&instructors).Error
	return instructors, err
}

// Upsert 创建或更新讲师（导入服务使用）
func (r *InstructorRepository) Upsert(instructor *model.Instructor) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "job", "location", "time_work", "school", "image", "vote", "vote_count",
		}),
	}).Create(instructor).Error
}
