package service

import (
	"encoding/json"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexInt_Unmarshal(t *testing.T) {
	tests := []struct {
		name string
		data string
		want FlexInt
	}{
		{"number", `7`, 7},
		{"numeric string", `"7"`, 7},
		{"float", `7.0`, 7},
		{"null", `null`, 0},
		{"empty string", `""`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexInt
			require.NoError(t, json.Unmarshal([]byte(tt.data), &f))
			assert.Equal(t, tt.want, f)
		})
	}

	var f FlexInt
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &f))
}

func TestFlexDuration_Unmarshal(t *testing.T) {
	tests := []struct {
		name string
		data string
		want FlexDuration
	}{
		{"free-form string kept", `"1h 30m"`, "1h 30m"},
		{"number becomes minutes", `90`, "90m"},
		{"numeric string becomes minutes", `"90"`, "90m"},
		{"float number", `90.0`, "90m"},
		{"null", `null`, ""},
		{"empty string", `""`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexDuration
			require.NoError(t, json.Unmarshal([]byte(tt.data), &f))
			assert.Equal(t, tt.want, f)
		})
	}
}

func TestRawUser_Unmarshal(t *testing.T) {
	data := `{
		"id": "3",
		"name": "Minh",
		"userName": "minh01",
		"password": "secret",
		"savedCourseList": [1, "2"],
		"cart": ["5"],
		"purchaseCourse": {"7": {"time_watched": 45}, "8": {"time_watched": "90"}}
	}`

	var u rawUser
	require.NoError(t, json.Unmarshal([]byte(data), &u))

	assert.Equal(t, FlexInt(3), u.ID)
	assert.Equal(t, []FlexInt{1, 2}, u.SavedCourseList)
	assert.Equal(t, []FlexInt{5}, u.Cart)
	assert.Equal(t, FlexInt(45), u.PurchaseCourse["7"].TimeWatched)
	assert.Equal(t, FlexInt(90), u.PurchaseCourse["8"].TimeWatched)
}

func TestCourseTags(t *testing.T) {
	// 上游给了标签：去掉空白项后原样使用
	raw := rawCourse{Category: "Web", Tags: []string{" react ", "", "frontend"}}
	assert.Equal(t, pq.StringArray{"react", "frontend"}, courseTags(raw))

	// 没给标签时退回到分类
	raw = rawCourse{Category: "Web"}
	assert.Equal(t, pq.StringArray{"Web"}, courseTags(raw))

	// 标签和分类都没有
	raw = rawCourse{}
	assert.Empty(t, courseTags(raw))
}
