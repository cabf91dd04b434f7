package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/learnly/internal/model"
)

func testCatalog() []model.Course {
	return []model.Course{
		{ID: 7, Name: "Go 入门", Duration: "1h 30m"},
		{ID: 8, Name: "SQL 基础", Duration: "2h"},
		{ID: 9, Name: "直播答疑", Duration: ""}, // 时长未知
	}
}

func TestPartition_OngoingToCompleted(t *testing.T) {
	catalog := testCatalog()

	// 看了 45 分钟，共 90 分钟 → 进行中，百分比 50
	status := Partition([]model.Enrollment{{UserID: 1, CourseID: 7, TimeWatched: 45}}, catalog)
	require.Len(t, status.Ongoing, 1)
	assert.Empty(t, status.Completed)
	assert.Equal(t, 7, status.Ongoing[0].Course.ID)
	assert.Equal(t, 45, status.Ongoing[0].TimeWatched)
	assert.Equal(t, 90, status.Ongoing[0].TotalMinutes)
	assert.Equal(t, 50, status.Ongoing[0].Percent)

	// 看满 90 分钟后同一门课进入已完成
	status = Partition([]model.Enrollment{{UserID: 1, CourseID: 7, TimeWatched: 90}}, catalog)
	assert.Empty(t, status.Ongoing)
	require.Len(t, status.Completed, 1)
	assert.Equal(t, 7, status.Completed[0].Course.ID)
	assert.Equal(t, 100, status.Completed[0].Percent)
}

func TestPartition_NoEnrollments(t *testing.T) {
	status := Partition(nil, testCatalog())
	assert.Empty(t, status.Ongoing)
	assert.Empty(t, status.Completed)
	assert.NotNil(t, status.Ongoing)
	assert.NotNil(t, status.Completed)
}

func TestPartition_DanglingReferenceDropped(t *testing.T) {
	// 课程 99 不在目录里：两组都不包含它，也不报错
	status := Partition([]model.Enrollment{
		{UserID: 1, CourseID: 99, TimeWatched: 10},
		{UserID: 1, CourseID: 8, TimeWatched: 120},
	}, testCatalog())

	assert.Empty(t, status.Ongoing)
	require.Len(t, status.Completed, 1)
	assert.Equal(t, 8, status.Completed[0].Course.ID)
}

func TestPartition_UnknownDurationNeverCompletes(t *testing.T) {
	status := Partition([]model.Enrollment{{UserID: 1, CourseID: 9, TimeWatched: 10000}}, testCatalog())
	require.Len(t, status.Ongoing, 1)
	assert.Empty(t, status.Completed)
	assert.Equal(t, 0, status.Ongoing[0].Percent)
}

func TestPartition_DisjointAndCoversResolvable(t *testing.T) {
	catalog := testCatalog()
	enrollments := []model.Enrollment{
		{UserID: 1, CourseID: 7, TimeWatched: 30},
		{UserID: 1, CourseID: 8, TimeWatched: 200},
		{UserID: 1, CourseID: 9, TimeWatched: 5},
		{UserID: 1, CourseID: 42, TimeWatched: 60}, // 悬空
	}

	status := Partition(enrollments, catalog)

	seen := map[int]int{}
	for _, cp := range status.Ongoing {
		seen[cp.Course.ID]++
	}
	for _, cp := range status.Completed {
		seen[cp.Course.ID]++
	}

	// 两组不相交：每个 id 只出现一次
	for id, n := range seen {
		assert.Equal(t, 1, n, "course %d appears more than once", id)
	}

	// 并集正好等于目录中可解析的已购课程 id 集合
	assert.Equal(t, map[int]int{7: 1, 8: 1, 9: 1}, seen)
}

func TestPartition_Idempotent(t *testing.T) {
	catalog := testCatalog()
	enrollments := []model.Enrollment{
		{UserID: 1, CourseID: 8, TimeWatched: 10},
		{UserID: 1, CourseID: 7, TimeWatched: 90},
		{UserID: 1, CourseID: 9, TimeWatched: 0},
	}

	first := Partition(enrollments, catalog)
	second := Partition(enrollments, catalog)
	assert.Equal(t, first, second)
}
