package timetable

import (
	"testing"

	"github.com/campigo/campigo/pkg/shuttle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	testCases := []struct {
		cell     string
		expected string
		found    bool
	}{
		{"08:00", "08:00", true},
		{"8:05", "08:05", true},
		{"18;30", "18:30", true}, // typo'd separator
		{"08:00 (막차)", "08:00", true},
		{"없음", "", false},
		{"", "", false},
	}

	for _, testCase := range testCases {
		timeOfDay, found := ParseTimeOfDay(testCase.cell)
		assert.Equal(t, testCase.found, found, testCase.cell)
		assert.Equal(t, testCase.expected, timeOfDay, testCase.cell)
	}
}

func TestExtract(t *testing.T) {
	table := shuttle.RawTable{
		Rows: [][]string{
			{"순번", "아산캠퍼스 출발", "천안역 도착", "비고"},
			{"1", "08:00", "08:30", "없음"},
		},
	}

	roleMap, headerIndex, err := ClassifyTable(table)
	require.NoError(t, err)

	entries := Extract(table, roleMap, headerIndex)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, 1, entry.SequenceNumber)
	assert.Equal(t, map[string]string{
		"아산캠퍼스":     "08:00",
		"천안역_arrival": "08:30",
	}, entry.StopTimes)
	assert.Equal(t, "없음", entry.Note)
}

func TestExtractTwoNoteColumnsIsDeterministic(t *testing.T) {
	table := shuttle.RawTable{
		Rows: [][]string{
			{"순번", "아산캠퍼스 출발", "천안역 도착", "비고", "기타"},
			{"1", "08:00", "08:30", "막차", "월요일 미운행"},
			{"2", "09:00", "09:30", "", "금요일 미운행"},
		},
	}

	roleMap, headerIndex, err := ClassifyTable(table)
	require.NoError(t, err)

	// Repeat the extraction: with two note columns in the role map the
	// retained note must be the leftmost non-empty one on every pass
	for i := 0; i < 10; i++ {
		entries := Extract(table, roleMap, headerIndex)
		require.Len(t, entries, 2)
		assert.Equal(t, "막차", entries[0].Note)
		assert.Equal(t, "금요일 미운행", entries[1].Note)
	}
}

func TestExtractSkipsNonDataRows(t *testing.T) {
	table := shuttle.RawTable{
		Rows: [][]string{
			{"순번", "아산캠퍼스 출발", "천안역 도착"},
			{"1", "08:00", "08:30"},
			{"오전", "", ""}, // repeated sub-header
			{"", "", ""},
			{"2", "09:00", "09:30"},
			{"2-1", "09:15", "09:45"}, // not purely numeric
		},
	}

	roleMap, headerIndex, err := ClassifyTable(table)
	require.NoError(t, err)

	entries := Extract(table, roleMap, headerIndex)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].SequenceNumber)
	assert.Equal(t, 2, entries[1].SequenceNumber)
}

func TestExtractMissingTimeIsNotAnError(t *testing.T) {
	table := shuttle.RawTable{
		Rows: [][]string{
			{"순번", "아산캠퍼스 출발", "천안역 도착"},
			{"1", "미운행", "08:30"},
		},
	}

	roleMap, headerIndex, err := ClassifyTable(table)
	require.NoError(t, err)

	entries := Extract(table, roleMap, headerIndex)
	require.Len(t, entries, 1)

	_, present := entries[0].StopTimes["아산캠퍼스"]
	assert.False(t, present, "a stop with no service must stay absent, not error")
	assert.Equal(t, "08:30", entries[0].StopTimes["천안역_arrival"])
}

func TestExtractShortRows(t *testing.T) {
	table := shuttle.RawTable{
		Rows: [][]string{
			{"순번", "아산캠퍼스 출발", "천안역 도착"},
			{"1", "08:00"}, // truncated row
		},
	}

	roleMap, headerIndex, err := ClassifyTable(table)
	require.NoError(t, err)

	entries := Extract(table, roleMap, headerIndex)
	require.Len(t, entries, 1)
	assert.Equal(t, map[string]string{"아산캠퍼스": "08:00"}, entries[0].StopTimes)
}
