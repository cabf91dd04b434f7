package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		duration string
		want     int
	}{
		{"hours and minutes", "3h 25m", 205},
		{"minutes only", "45m", 45},
		{"hours only", "2h", 120},
		{"no whitespace", "1h30m", 90},
		{"extra whitespace", "  2h   5m ", 125},
		{"empty string", "", 0},
		{"garbage", "about two hours", 0},
		{"uppercase suffix not matched", "2H 30M", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.duration))
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 50, Percent(120, 60))
	assert.Equal(t, 100, Percent(120, 120))

	// 观看时间超过总时长时收敛到 100，而不是 108
	assert.Equal(t, 100, Percent(120, 130))

	// 四舍五入
	assert.Equal(t, 33, Percent(90, 30))
	assert.Equal(t, 67, Percent(90, 60))

	// 时长未知的课程百分比恒为 0
	assert.Equal(t, 0, Percent(0, 50))
	assert.Equal(t, 0, Percent(0, 0))

	assert.Equal(t, 0, Percent(120, -10))
}

func TestIsComplete(t *testing.T) {
	assert.True(t, IsComplete(90, 90))
	assert.True(t, IsComplete(90, 200))
	assert.False(t, IsComplete(90, 89))

	// 时长未知的课程无论看了多久都不算完成
	assert.False(t, IsComplete(0, 10000))
}
