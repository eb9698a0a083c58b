package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSheetName_Short(t *testing.T) {
	name := BuildSheetName("杭州", "奥克兰", "2026-09-25", "东方航空", "MU779")
	assert.Equal(t, "杭州-奥克兰_2026-09-25_东方_MU779", name)
}

func TestBuildSheetName_AirlineSuffixStripped(t *testing.T) {
	name := BuildSheetName("上海", "悉尼", "2026-10-01", "中国国际航空", "CA173")
	assert.Equal(t, "上海-悉尼_2026-10-01_中国国际_CA173", name)
}

func TestBuildSheetName_Defaults(t *testing.T) {
	// The flight-number placeholder must stay clear of characters Excel
	// forbids in sheet names.
	name := BuildSheetName("杭州", "奥克兰", "2026-09-25", "", "")
	assert.Equal(t, "杭州-奥克兰_2026-09-25_未知_NA", name)
}

func TestBuildSheetName_ForbiddenCharactersReplaced(t *testing.T) {
	name := BuildSheetName("杭州", "奥克兰", "2026-09-25", "某/某:航空", "MU*779")
	assert.Equal(t, "杭州-奥克兰_2026-09-25_某-某-_MU-779", name)
	for _, c := range []string{":", "\\", "/", "?", "*", "[", "]"} {
		assert.NotContains(t, name, c)
	}
}

func TestBuildSheetName_TruncatedWithinLimit(t *testing.T) {
	name := BuildSheetName("UNKNOWNCITY", "ANOTHERCITY", "2026-09-25", "某某某某航空", "MU7791")
	assert.LessOrEqual(t, len([]rune(name)), 31)
}

func TestBuildSheetName_DatesDoNotCollide(t *testing.T) {
	// Truncation drops the date segment; the hash suffix must keep sheets
	// for different dates apart.
	a := BuildSheetName("UNKNOWNCITY", "ANOTHERCITY", "2026-09-25", "某某某某航空", "MU7791")
	b := BuildSheetName("UNKNOWNCITY", "ANOTHERCITY", "2026-09-26", "某某某某航空", "MU7791")
	assert.NotEqual(t, a, b)
}
