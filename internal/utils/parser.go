package utils

import (
	"regexp"
	"strings"
)

// CleanCourseTitle 清理上游课程标题中的杂质信息
func CleanCourseTitle(title string) string {
	if title == "" {
		return ""
	}

	// 1. 移除方括号及其内容（通常是平台、促销标签）
	reBrackets := regexp.MustCompile(`[\[【].*?[\]】]`)
	title = reBrackets.ReplaceAllString(title, " ")

	// 2. 移除常见的促销和版本说明
	rePromo := regexp.MustCompile(`(?i)(bestseller|hot|new|updated|2nd edition|3rd edition|free preview|限时|特价|新课)`)
	title = rePromo.ReplaceAllString(title, " ")

	// 3. 替换点、下划线为空格，并移除多余空格
	title = strings.ReplaceAll(title, "_", " ")

	// 4. 处理多余空格
	fields := strings.Fields(title)
	return strings.Join(fields, " ")
}

// NormalizeKeyword 搜索关键词归一化，作为缓存和 singleflight 的 key
func NormalizeKeyword(keyword string) string {
	return strings.ToLower(strings.Join(strings.Fields(keyword), " "))
}
