package repository

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/learnly/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestRepos 连接集成测试数据库。未设置 TEST_DATABASE_URL 时跳过，
// CI 里指向一次性 Postgres 实例
func setupTestRepos(t *testing.T) *Repositories {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("未设置 TEST_DATABASE_URL，跳过数据库集成测试")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	db.Exec("CREATE EXTENSION IF NOT EXISTS vector")
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Chapter{},
		&model.Lesson{},
		&model.CartItem{},
		&model.SavedCourse{},
		&model.Enrollment{},
		&model.Question{},
	))
	db.Exec("TRUNCATE users, courses, chapters, lessons, cart_items, saved_courses, enrollments, questions RESTART IDENTITY CASCADE")

	return NewRepositories(db)
}

func seedCourse(t *testing.T, repos *Repositories, id int) {
	t.Helper()
	require.NoError(t, repos.Course.Upsert(&model.Course{
		ID:       id,
		Name:     "测试课程",
		Duration: "1h 30m",
	}))
}

func TestPurchase_RemovesCartRowAndEnrollsOnce(t *testing.T) {
	repos := setupTestRepos(t)
	seedCourse(t, repos, 7)

	require.NoError(t, repos.Cart.Add(1, 7))

	enrollment, err := repos.Enrollment.Purchase(1, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, enrollment.TimeWatched)

	// 购买后购物车行必须消失
	ids, err := repos.Cart.IDsByUser(1)
	require.NoError(t, err)
	assert.Empty(t, ids)

	// 重复购买被拒绝，进度记录仍然只有一条
	_, err = repos.Enrollment.Purchase(1, 7)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	var count int64
	repos.DB.Model(&model.Enrollment{}).Where("user_id = ? AND course_id = ?", 1, 7).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCartAdd_NoDuplicateRows(t *testing.T) {
	repos := setupTestRepos(t)
	seedCourse(t, repos, 5)

	require.NoError(t, repos.Cart.Add(1, 5))
	require.NoError(t, repos.Cart.Add(1, 5))

	ids, err := repos.Cart.IDsByUser(1)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, ids)
}

func TestSavedAddRemove_RowLevelRoundTrip(t *testing.T) {
	repos := setupTestRepos(t)
	seedCourse(t, repos, 3)

	require.NoError(t, repos.Saved.Add(1, 3))
	require.NoError(t, repos.Saved.Add(1, 3))

	ids, err := repos.Saved.IDsByUser(1)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, ids)

	require.NoError(t, repos.Saved.Remove(1, 3))

	saved, err := repos.Saved.IsSaved(1, 3)
	require.NoError(t, err)
	assert.False(t, saved)
}

func TestRecordProgress_NeverDecreases(t *testing.T) {
	repos := setupTestRepos(t)
	seedCourse(t, repos, 7)

	_, err := repos.Enrollment.Purchase(1, 7)
	require.NoError(t, err)

	enrollment, err := repos.Enrollment.RecordProgress(1, 7, 50)
	require.NoError(t, err)
	assert.Equal(t, 50, enrollment.TimeWatched)

	// 客户端重放旧进度不会回退
	enrollment, err = repos.Enrollment.RecordProgress(1, 7, 30)
	require.NoError(t, err)
	assert.Equal(t, 50, enrollment.TimeWatched)
}

func TestQuestionLike_ReportsMissingQuestion(t *testing.T) {
	repos := setupTestRepos(t)
	seedCourse(t, repos, 3)

	affected, err := repos.Question.Like(999)
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected)

	question, err := repos.Question.Create(3, 1, "这门课需要什么基础？")
	require.NoError(t, err)

	affected, err = repos.Question.Like(question.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)
}
