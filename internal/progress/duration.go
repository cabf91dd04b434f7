// Package progress 实现课程进度推导核心：时长解析、完成百分比计算、
// 进行中/已完成课程划分。全部为纯函数，不依赖数据库和网络。
package progress

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	reHours   = regexp.MustCompile(`(\d+)h`)
	reMinutes = regexp.MustCompile(`(\d+)m`)
)

// Parse 解析自由格式时长字符串为分钟数
// 支持 "3h 25m"、"2h"、"45m"，空串或无法识别的内容返回 0
func Parse(duration string) int {
	if duration == "" {
		return 0
	}

	// 去掉所有空白后按小时/分钟 token 匹配
	clean := strings.Join(strings.Fields(duration), "")

	total := 0
	if h := reHours.FindStringSubmatch(clean); h != nil {
		n, _ := strconv.Atoi(h[1])
		total += n * 60
	}
	if m := reMinutes.FindStringSubmatch(clean); m != nil {
		n, _ := strconv.Atoi(m[1])
		total += n
	}

	return total
}

// Percent 计算完成百分比，结果限定在 [0, 100]
// totalMinutes 为 0 时（时长未知）固定返回 0：时长未知的课程永远不会被判定为已完成
func Percent(totalMinutes, watchedMinutes int) int {
	if totalMinutes <= 0 {
		return 0
	}

	p := int(math.Round(float64(watchedMinutes) / float64(totalMinutes) * 100))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// IsComplete 是否已完成
func IsComplete(totalMinutes, watchedMinutes int) bool {
	return Percent(totalMinutes, watchedMinutes) >= 100
}
