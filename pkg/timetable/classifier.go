package timetable

import (
	"errors"
	"regexp"
	"strings"

	"github.com/campigo/campigo/pkg/shuttle"
	"github.com/campigo/campigo/pkg/util"
)

var ErrNoHeaderFound = errors.New("no header row found in table")

// Marker vocabulary observed across the published timetable pages. Pages are
// inconsistent about wording, so each marker is a token set rather than a
// single string
var (
	sequenceMarkers  = []string{"순번", "연번", "No.", "NO"}
	departureMarkers = []string{"출발"}
	arrivalMarkers   = []string{"도착"}
	noteMarkers      = []string{"비고", "참고", "기타"}
	timeLabelMarkers = []string{"시간", "시각"}
)

var clockShapedRegex = regexp.MustCompile(`\d{1,2}:\d{2}`)

// headerRule is one step of the ordered per-cell classification. Rules are
// evaluated in slice order and the first rule to yield a role wins for that
// cell; a cell may legitimately match no rule at all
type headerRule struct {
	Name  string
	Apply func(cell string) (shuttle.ColumnRole, bool)
}

var headerRules = []headerRule{
	{
		Name: "sequence-marker",
		Apply: func(cell string) (shuttle.ColumnRole, bool) {
			for _, marker := range sequenceMarkers {
				if cell == marker || strings.HasPrefix(cell, marker) {
					return shuttle.ColumnRole{Type: shuttle.ColumnRoleSequence}, true
				}
			}
			return shuttle.ColumnRole{}, false
		},
	},
	{
		Name: "arrival-stop",
		Apply: func(cell string) (shuttle.ColumnRole, bool) {
			if !util.ContainsAnySubstring(cell, arrivalMarkers) || util.ContainsAnySubstring(cell, departureMarkers) {
				return shuttle.ColumnRole{}, false
			}

			stop := shuttle.MatchStopText(cell)
			if stop == nil {
				return shuttle.ColumnRole{}, false
			}

			return shuttle.ColumnRole{
				Type:      shuttle.ColumnRoleStop,
				StopName:  stop.Name,
				IsArrival: true,
			}, true
		},
	},
	{
		Name: "departure-stop",
		Apply: func(cell string) (shuttle.ColumnRole, bool) {
			stop := shuttle.MatchStopText(cell)
			if stop == nil {
				return shuttle.ColumnRole{}, false
			}

			return shuttle.ColumnRole{
				Type:     shuttle.ColumnRoleStop,
				StopName: stop.Name,
			}, true
		},
	},
	{
		Name: "note-marker",
		Apply: func(cell string) (shuttle.ColumnRole, bool) {
			if util.ContainsAnySubstring(cell, noteMarkers) {
				return shuttle.ColumnRole{Type: shuttle.ColumnRoleNote}, true
			}
			return shuttle.ColumnRole{}, false
		},
	},
}

// FindHeaderRow scans a whole table top-down for the first row satisfying the
// header predicate: a sequence marker together with at least one time-ish
// signal (departure/arrival marker, HH:MM shaped text or a time label).
// Returns ErrNoHeaderFound when nothing qualifies, in which case the caller
// skips the table entirely
func FindHeaderRow(table shuttle.RawTable) (int, error) {
	for index, row := range table.Rows {
		joined := util.NormalizeWhitespace(strings.Join(row, " "))

		if !util.ContainsAnySubstring(joined, sequenceMarkers) {
			continue
		}

		if util.ContainsAnySubstring(joined, departureMarkers) ||
			util.ContainsAnySubstring(joined, arrivalMarkers) ||
			clockShapedRegex.MatchString(joined) ||
			util.ContainsAnySubstring(joined, timeLabelMarkers) {
			return index, nil
		}
	}

	return 0, ErrNoHeaderFound
}

// Classify maps each header cell to its semantic role by running the ordered
// rule list over the whitespace-normalized cell text. When a header repeats
// the same stop+role pair across columns (visual grouping on some pages) the
// earliest column wins and later duplicates are dropped
func Classify(headerRow []string) shuttle.ColumnRoleMap {
	roleMap := shuttle.ColumnRoleMap{}
	seenStopRoles := map[string]bool{}

	for index, cell := range headerRow {
		text := util.NormalizeWhitespace(cell)
		if text == "" {
			continue
		}

		for _, rule := range headerRules {
			role, matched := rule.Apply(text)
			if !matched {
				continue
			}

			if role.Type == shuttle.ColumnRoleStop {
				stopRoleKey := shuttle.StopTimeKey(role.StopName, role.IsArrival)
				if seenStopRoles[stopRoleKey] {
					break
				}
				seenStopRoles[stopRoleKey] = true
			}

			roleMap[index] = role
			break
		}
	}

	return roleMap
}

// ClassifyTable locates the header row and classifies it in one go
func ClassifyTable(table shuttle.RawTable) (shuttle.ColumnRoleMap, int, error) {
	headerIndex, err := FindHeaderRow(table)
	if err != nil {
		return nil, 0, err
	}

	return Classify(table.Rows[headerIndex]), headerIndex, nil
}
