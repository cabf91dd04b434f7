package progress

import (
	"github.com/user/learnly/internal/model"
)

// CourseProgress 推导出的单课程进度，仅在响应渲染时存在，不落库
type CourseProgress struct {
	Course       model.Course `json:"course"`
	TimeWatched  int          `json:"time_watched"`
	TotalMinutes int          `json:"total_minutes"`
	Percent      int          `json:"percent"`
}

// Status 用户课程状态划分结果
type Status struct {
	Ongoing   []CourseProgress `json:"ongoing"`
	Completed []CourseProgress `json:"completed"`
}

// Partition 按完成百分比把用户已购课程划分为进行中/已完成两组
//  1. enrollments 为空（未登录或未购课）时返回两组空列表
//  2. 课程 id 在目录中无法解析的记录直接丢弃，不报错（悬空引用由清理服务负责修复）
//  3. 输出顺序与 enrollments 的顺序一致，同样的输入必然得到同样的输出
func Partition(enrollments []model.Enrollment, catalog []model.Course) Status {
	status := Status{
		Ongoing:   []CourseProgress{},
		Completed: []CourseProgress{},
	}

	if len(enrollments) == 0 {
		return status
	}

	// 目录按 id 建索引
	index := make(map[int]model.Course, len(catalog))
	for _, c := range catalog {
		index[c.ID] = c
	}

	for _, e := range enrollments {
		course, ok := index[e.CourseID]
		if !ok {
			// 悬空引用，静默跳过
			continue
		}

		total := Parse(course.Duration)
		cp := CourseProgress{
			Course:       course,
			TimeWatched:  e.TimeWatched,
			TotalMinutes: total,
			Percent:      Percent(total, e.TimeWatched),
		}

		if cp.Percent >= 100 {
			status.Completed = append(status.Completed, cp)
		} else {
			status.Ongoing = append(status.Ongoing, cp)
		}
	}

	return status
}
