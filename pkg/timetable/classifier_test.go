package timetable

import (
	"testing"

	"github.com/campigo/campigo/pkg/shuttle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindHeaderRow(t *testing.T) {
	table := shuttle.RawTable{
		Rows: [][]string{
			{"2024학년도 통학버스 안내"},
			{"순번", "아산캠퍼스 출발", "천안역 도착", "비고"},
			{"1", "08:00", "08:30", ""},
		},
	}

	headerIndex, err := FindHeaderRow(table)
	require.NoError(t, err)
	assert.Equal(t, 1, headerIndex)
}

func TestFindHeaderRowTimeLabelOnly(t *testing.T) {
	// No departure/arrival marker, but a sequence marker plus a time label
	// still qualifies as a header
	table := shuttle.RawTable{
		Rows: [][]string{
			{"순번", "아산캠퍼스 시간", "천안역 시간"},
			{"1", "08:00", "08:30"},
		},
	}

	headerIndex, err := FindHeaderRow(table)
	require.NoError(t, err)
	assert.Equal(t, 0, headerIndex)
}

func TestFindHeaderRowClockShaped(t *testing.T) {
	table := shuttle.RawTable{
		Rows: [][]string{
			{"순번", "08:00 출발반"},
		},
	}

	_, err := FindHeaderRow(table)
	require.NoError(t, err)
}

func TestFindHeaderRowNone(t *testing.T) {
	table := shuttle.RawTable{
		Rows: [][]string{
			{"공지사항", "내용"},
			{"1", "방학 중 운행 없음"},
		},
	}

	_, err := FindHeaderRow(table)
	assert.ErrorIs(t, err, ErrNoHeaderFound)
}

func TestClassify(t *testing.T) {
	roleMap := Classify([]string{"순번", "아산캠퍼스 출발", "천안역 도착", "비고"})

	require.Len(t, roleMap, 4)

	assert.Equal(t, shuttle.ColumnRole{Type: shuttle.ColumnRoleSequence}, roleMap[0])
	assert.Equal(t, shuttle.ColumnRole{Type: shuttle.ColumnRoleStop, StopName: "아산캠퍼스"}, roleMap[1])
	assert.Equal(t, shuttle.ColumnRole{Type: shuttle.ColumnRoleStop, StopName: "천안역", IsArrival: true}, roleMap[2])
	assert.Equal(t, shuttle.ColumnRole{Type: shuttle.ColumnRoleNote}, roleMap[3])
}

func TestClassifyIgnoresUnknownColumns(t *testing.T) {
	roleMap := Classify([]string{"순번", "운행사", "아산캠퍼스 출발"})

	require.Len(t, roleMap, 2)
	_, present := roleMap[1]
	assert.False(t, present, "unclassifiable column must stay absent from the role map")
}

func TestClassifyInterchangeDisambiguation(t *testing.T) {
	// "천안아산역" contains the substring "아산역" but is a different physical
	// station; the longest/most specific alias must win
	roleMap := Classify([]string{"순번", "천안아산역(KTX) 출발", "아산캠퍼스 도착"})

	assert.Equal(t, "천안아산역", roleMap[1].StopName)
	assert.False(t, roleMap[1].IsArrival)
	assert.Equal(t, "아산캠퍼스", roleMap[2].StopName)
	assert.True(t, roleMap[2].IsArrival)
}

func TestClassifyArrivalNeedsNoDepartureMarker(t *testing.T) {
	// A cell carrying both markers is a departure column, not an arrival one
	roleMap := Classify([]string{"순번", "천안역 출발/도착"})

	assert.Equal(t, shuttle.ColumnRole{Type: shuttle.ColumnRoleStop, StopName: "천안역"}, roleMap[1])
}

func TestClassifyDuplicateColumnsFirstWins(t *testing.T) {
	roleMap := Classify([]string{"순번", "천안역 출발", "천안역 출발"})

	require.Len(t, roleMap, 2)
	assert.Equal(t, "천안역", roleMap[1].StopName)
	_, present := roleMap[2]
	assert.False(t, present)
}

func TestClassifyTable(t *testing.T) {
	table := shuttle.RawTable{
		Rows: [][]string{
			{"하교 시간표"},
			{"순번", "천안캠퍼스   출발", "터미널 도착"},
			{"1", "17:30", "17:55"},
		},
	}

	roleMap, headerIndex, err := ClassifyTable(table)
	require.NoError(t, err)
	assert.Equal(t, 1, headerIndex)
	assert.Equal(t, "천안캠퍼스", roleMap[1].StopName)
	assert.Equal(t, "천안터미널", roleMap[2].StopName)
}
