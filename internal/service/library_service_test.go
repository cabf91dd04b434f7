package service

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/learnly/internal/model"
	"github.com/user/learnly/internal/repository"
)

// fakeStore 内存版存储，行为与 repository 层一致：
// 购物车/收藏按 (user, course) 唯一，购买删除购物车行并建立唯一进度记录
type fakeStore struct {
	courses     map[int]model.Course
	cart        map[[2]int]bool
	saved       map[[2]int]bool
	enrollments map[[2]int]*model.Enrollment
}

func newFakeStore(courses ...model.Course) *fakeStore {
	f := &fakeStore{
		courses:     map[int]model.Course{},
		cart:        map[[2]int]bool{},
		saved:       map[[2]int]bool{},
		enrollments: map[[2]int]*model.Enrollment{},
	}
	for _, c := range courses {
		f.courses[c.ID] = c
	}
	return f
}

func (f *fakeStore) FindByID(id int) (*model.Course, error) {
	if c, ok := f.courses[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (f *fakeStore) FullCatalog() ([]model.Course, error) {
	out := make([]model.Course, 0, len(f.courses))
	for _, c := range f.courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) Add(userID, courseID int) error {
	f.cart[[2]int{userID, courseID}] = true
	return nil
}

func (f *fakeStore) Remove(userID, courseID int) error {
	delete(f.cart, [2]int{userID, courseID})
	return nil
}

func (f *fakeStore) IDsByUser(userID int) ([]int, error) {
	var ids []int
	for key := range f.cart {
		if key[0] == userID {
			ids = append(ids, key[1])
		}
	}
	sort.Ints(ids)
	return ids, nil
}

// 收藏单独包一层，Add/Remove/IDsByUser 才能和购物车分开计数
type fakeSaved struct{ f *fakeStore }

func (s fakeSaved) Add(userID, courseID int) error {
	s.f.saved[[2]int{userID, courseID}] = true
	return nil
}

func (s fakeSaved) Remove(userID, courseID int) error {
	delete(s.f.saved, [2]int{userID, courseID})
	return nil
}

func (s fakeSaved) IsSaved(userID, courseID int) (bool, error) {
	return s.f.saved[[2]int{userID, courseID}], nil
}

func (s fakeSaved) IDsByUser(userID int) ([]int, error) {
	var ids []int
	for key := range s.f.saved {
		if key[0] == userID {
			ids = append(ids, key[1])
		}
	}
	sort.Ints(ids)
	return ids, nil
}

type fakeEnrollments struct{ f *fakeStore }

func (e fakeEnrollments) Get(userID, courseID int) (*model.Enrollment, error) {
	if en, ok := e.f.enrollments[[2]int{userID, courseID}]; ok {
		copied := *en
		return &copied, nil
	}
	return nil, nil
}

func (e fakeEnrollments) Purchase(userID, courseID int) (*model.Enrollment, error) {
	key := [2]int{userID, courseID}
	if _, ok := e.f.enrollments[key]; ok {
		return nil, repository.ErrAlreadyEnrolled
	}
	delete(e.f.cart, key)
	en := &model.Enrollment{
		UserID:      userID,
		CourseID:    courseID,
		TimeWatched: 0,
		PurchasedAt: time.Now(),
	}
	e.f.enrollments[key] = en
	return en, nil
}

func (e fakeEnrollments) RecordProgress(userID, courseID, timeWatched int) (*model.Enrollment, error) {
	en, ok := e.f.enrollments[[2]int{userID, courseID}]
	if !ok {
		return nil, ErrNotEnrolled
	}
	if timeWatched > en.TimeWatched {
		en.TimeWatched = timeWatched
	}
	copied := *en
	return &copied, nil
}

func (e fakeEnrollments) ListByUser(userID int) ([]model.Enrollment, error) {
	var out []model.Enrollment
	for key, en := range e.f.enrollments {
		if key[0] == userID {
			out = append(out, *en)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CourseID < out[j].CourseID })
	return out, nil
}

func newTestLibrary(courses ...model.Course) (*LibraryService, *fakeStore) {
	f := newFakeStore(courses...)
	svc := &LibraryService{
		courses:     f,
		cart:        f,
		saved:       fakeSaved{f},
		enrollments: fakeEnrollments{f},
		catalog:     f,
	}
	return svc, f
}

func TestToggleSaved_RoundTrip(t *testing.T) {
	svc, _ := newTestLibrary(model.Course{ID: 3, Name: "Go 入门", Duration: "2h"})

	saved, err := svc.ToggleSaved(1, 3)
	require.NoError(t, err)
	assert.True(t, saved)

	collections, err := svc.Collections(1)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, collections.Saved)

	// 再切一次必须恢复原状
	saved, err = svc.ToggleSaved(1, 3)
	require.NoError(t, err)
	assert.False(t, saved)

	collections, err = svc.Collections(1)
	require.NoError(t, err)
	assert.Empty(t, collections.Saved)
}

func TestToggleSaved_UnknownCourse(t *testing.T) {
	svc, _ := newTestLibrary()

	_, err := svc.ToggleSaved(1, 99)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestAddToCart_Idempotent(t *testing.T) {
	svc, _ := newTestLibrary(model.Course{ID: 5, Name: "SQL 实战", Duration: "3h 25m"})

	require.NoError(t, svc.AddToCart(1, 5))
	// 重复加购不报错也不产生重复条目
	require.NoError(t, svc.AddToCart(1, 5))

	collections, err := svc.Collections(1)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, collections.Cart)
}

func TestAddToCart_AlreadyEnrolled(t *testing.T) {
	svc, _ := newTestLibrary(model.Course{ID: 5, Name: "SQL 实战", Duration: "3h 25m"})

	_, err := svc.Purchase(1, 5)
	require.NoError(t, err)

	err = svc.AddToCart(1, 5)
	assert.ErrorIs(t, err, repository.ErrAlreadyEnrolled)
}

func TestPurchase_RemovesCartRowAndEnrollsOnce(t *testing.T) {
	svc, f := newTestLibrary(model.Course{ID: 7, Name: "React 进阶", Duration: "1h 30m"})

	require.NoError(t, svc.AddToCart(1, 7))

	enrollment, err := svc.Purchase(1, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, enrollment.CourseID)
	assert.Equal(t, 0, enrollment.TimeWatched)

	collections, err := svc.Collections(1)
	require.NoError(t, err)
	assert.Empty(t, collections.Cart, "购买后课程必须移出购物车")
	assert.Contains(t, collections.Purchases, "7")
	assert.Len(t, f.enrollments, 1)

	// 重复购买被拒绝，进度记录仍然只有一条
	_, err = svc.Purchase(1, 7)
	assert.ErrorIs(t, err, repository.ErrAlreadyEnrolled)
	assert.Len(t, f.enrollments, 1)
}

func TestRecordProgress_Validation(t *testing.T) {
	svc, _ := newTestLibrary(model.Course{ID: 7, Name: "React 进阶", Duration: "1h 30m"})

	_, err := svc.RecordProgress(1, 7, -5)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// 未购买不能上报进度
	_, err = svc.RecordProgress(1, 7, 30)
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestCourseStatus_MovesToCompletedAtFullDuration(t *testing.T) {
	svc, _ := newTestLibrary(model.Course{ID: 7, Name: "React 进阶", Duration: "1h 30m"})

	_, err := svc.Purchase(1, 7)
	require.NoError(t, err)

	_, err = svc.RecordProgress(1, 7, 45)
	require.NoError(t, err)

	status, err := svc.CourseStatus(1)
	require.NoError(t, err)
	require.Len(t, status.Ongoing, 1)
	assert.Equal(t, 50, status.Ongoing[0].Percent)
	assert.Empty(t, status.Completed)

	_, err = svc.RecordProgress(1, 7, 90)
	require.NoError(t, err)

	status, err = svc.CourseStatus(1)
	require.NoError(t, err)
	assert.Empty(t, status.Ongoing)
	require.Len(t, status.Completed, 1)
	assert.Equal(t, 100, status.Completed[0].Percent)
}
