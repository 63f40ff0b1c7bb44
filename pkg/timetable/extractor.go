package timetable

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/campigo/campigo/pkg/shuttle"
	"github.com/campigo/campigo/pkg/util"
)

var dataRowRegex = regexp.MustCompile(`^[0-9]+$`)

// Published cells occasionally use ";" where ":" was meant, so the time parser
// accepts both separators and re-normalizes on the way out
var cellTimeRegex = regexp.MustCompile(`(\d{1,2})[:;](\d{2})`)

// ParseTimeOfDay pulls an "HH:MM" time of day out of arbitrary cell text.
// Returns false when the cell holds no time at all - a stop with no service on
// a given run is normal, not an error
func ParseTimeOfDay(text string) (string, bool) {
	match := cellTimeRegex.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}

	hour, _ := strconv.Atoi(match[1])
	minute := match[2]

	return fmt.Sprintf("%02d:%s", hour, minute), true
}

// Extract walks the data rows of a classified table into schedule entries.
// Rows strictly after headerIndex whose first cell is purely numeric are data
// rows; anything else (blank separators, repeated sub-headers) is skipped
// silently
func Extract(table shuttle.RawTable, roleMap shuttle.ColumnRoleMap, headerIndex int) []shuttle.ScheduleEntry {
	var entries []shuttle.ScheduleEntry

	for rowIndex := headerIndex + 1; rowIndex < len(table.Rows); rowIndex++ {
		row := table.Rows[rowIndex]
		if len(row) == 0 {
			continue
		}

		firstCell := util.NormalizeWhitespace(row[0])
		if !dataRowRegex.MatchString(firstCell) {
			continue
		}

		sequenceNumber, _ := strconv.Atoi(firstCell)

		entry := shuttle.ScheduleEntry{
			SequenceNumber: sequenceNumber,
			StopTimes:      map[string]string{},
		}

		// Walk columns in order, not map order: with two note columns the
		// first non-empty one must win on every run
		for columnIndex := 0; columnIndex < len(row); columnIndex++ {
			role, classified := roleMap[columnIndex]
			if !classified {
				continue
			}
			cell := util.NormalizeWhitespace(row[columnIndex])

			switch role.Type {
			case shuttle.ColumnRoleStop:
				if timeOfDay, found := ParseTimeOfDay(cell); found {
					entry.StopTimes[shuttle.StopTimeKey(role.StopName, role.IsArrival)] = timeOfDay
				}
			case shuttle.ColumnRoleNote:
				if entry.Note == "" {
					entry.Note = cell
				}
			}
		}

		entries = append(entries, entry)
	}

	return entries
}
