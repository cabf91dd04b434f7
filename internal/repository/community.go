package repository

import (
	"time"

	"github.com/user/learnly/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// Create 发布提问
func (r *QuestionRepository) Create(courseID, userID int, content string) (*model.Question, error) {
	question := &model.Question{
		CourseID: courseID,
		UserID:   userID,
		Content:  content,
		PostedAt: time.Now(),
	}
	if err := r.db.Create(question).Error; err != nil {
		return nil, err
	}
	return question, nil
}

// ListByCourse 获取课程问答列表
func (r *QuestionRepository) ListByCourse(courseID, limit, offset int) ([]*model.Question, error) {
	var questions []*model.Question
	err := r.db.Preload("User").
		Where("course_id = ?", courseID).
		Order("posted_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&questions).Error
	return questions, err
}

// Like 点赞，返回命中的行数（0 表示提问不存在）
func (r *QuestionRepository) Like(questionID int) (int64, error) {
	result := r.db.Model(&model.Question{}).Where("id = ?", questionID).
		UpdateColumn("like_count", gorm.Expr("like_count + 1"))
	return result.RowsAffected, result.Error
}

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create 发布评价并在同一事务内更新课程的评分聚合
func (r *ReviewRepository) Create(courseID, userID, vote int, content string) (*model.Review, error) {
	review := &model.Review{
		CourseID: courseID,
		UserID:   userID,
		Content:  content,
		Vote:     vote,
		PostedAt: time.Now(),
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}

		// 重新计算课程评分
		return tx.Exec(`
			UPDATE courses SET
				vote = sub.avg_vote,
				vote_count = sub.cnt
			FROM (
				SELECT ROUND(AVG(vote)::numeric, 1) AS avg_vote, COUNT(*) AS cnt
				FROM reviews WHERE course_id = ?
			) AS sub
			WHERE courses.id = ?
		`, courseID, courseID).Error
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

// ListByCourse 获取课程评价列表
func (r *ReviewRepository) ListByCourse(courseID, limit, offset int) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.Preload("User").
		Where("course_id = ?", courseID).
		Order("posted_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	return reviews, err
}

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create 保存项目作业提交记录
func (r *ProjectRepository) Create(submission *model.ProjectSubmission) error {
	submission.SubmittedAt = time.Now()
	return r.db.Create(submission).Error
}

// ListByUserCourse 获取某用户在某门课下的提交记录
func (r *ProjectRepository) ListByUserCourse(userID, courseID int) ([]*model.ProjectSubmission, error) {
	var submissions []*model.ProjectSubmission
	err := r.db.Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("submitted_at DESC").
		Find(&submissions).Error
	return submissions, err
}
