package shuttle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchStopText(t *testing.T) {
	testCases := []struct {
		text     string
		expected string
	}{
		{"아산캠퍼스 출발", "아산캠퍼스"},
		{"본교 출발", "아산캠퍼스"},
		{"천안역 도착", "천안역"},
		{"천안아산역(KTX)", "천안아산역"},
		{"아산역 경유", "천안아산역"},
		{"종합터미널 하차", "천안터미널"},
		{"생활관 앞", "기숙사"},
	}

	for _, testCase := range testCases {
		stop := MatchStopText(testCase.text)
		require.NotNil(t, stop, testCase.text)
		assert.Equal(t, testCase.expected, stop.Name, testCase.text)
	}
}

func TestMatchStopTextExclusion(t *testing.T) {
	// "천안아산역" must never be misread as plain "천안역"
	stop := MatchStopText("천안아산역 도착")
	require.NotNil(t, stop)
	assert.Equal(t, "천안아산역", stop.Name)
}

func TestMatchStopTextUnknown(t *testing.T) {
	assert.Nil(t, MatchStopText("서울역"))
	assert.Nil(t, MatchStopText(""))
}

func TestCoordinatesFor(t *testing.T) {
	coordinates := CoordinatesFor([]string{"아산캠퍼스", "기숙사", "모르는곳"})

	// 기숙사 has no surveyed coordinate, 모르는곳 is not registered at all -
	// both are simply absent
	require.Len(t, coordinates, 1)
	assert.Contains(t, coordinates, "아산캠퍼스")
}

func TestStopTimeKey(t *testing.T) {
	assert.Equal(t, "천안역", StopTimeKey("천안역", false))
	assert.Equal(t, "천안역_arrival", StopTimeKey("천안역", true))
}
