package journeyplan

import (
	"errors"
	"strings"
	"time"

	"github.com/campigo/campigo/pkg/util"
	"golang.org/x/exp/slices"
)

var ErrNoFeasibleBoarding = errors.New("no feasible boarding found")

type MatchResult struct {
	Boarding DepartureRecord `groups:"basic"`

	BoardingDepartureInstant time.Time `groups:"basic"`
	FinalArrivalInstant      time.Time `groups:"basic"`
}

// Match finds the boarding that gets the rider to the arrival stop soonest,
// given the instant they finish walking to the departure stop.
//
// Schedules repeat daily, so a departure clock time that has already passed
// today rolls forward to the same clock time tomorrow; an arrival clock time
// that would precede its own departure marks an overnight run and rolls
// forward a day as well. Records with a missing or unparsable time are
// skipped - malformed upstream data degrades the pool, it never crashes the
// query. Returns ErrNoFeasibleBoarding when the pool is empty or nothing
// survives the skips
func Match(walkingETA time.Time, pool []DepartureRecord) (*MatchResult, error) {
	if len(pool) == 0 {
		return nil, ErrNoFeasibleBoarding
	}

	candidates := make([]DepartureRecord, len(pool))
	copy(candidates, pool)

	slices.SortStableFunc(candidates, func(a DepartureRecord, b DepartureRecord) int {
		return strings.Compare(a.DepartureTime, b.DepartureTime)
	})

	var best *MatchResult

	for _, candidate := range candidates {
		departureClock, ok := util.ParseClockTime(candidate.DepartureTime)
		if !ok {
			continue
		}
		arrivalClock, ok := util.ParseClockTime(candidate.ArrivalTime)
		if !ok {
			continue
		}

		departureInstant := util.AddTimeToDate(walkingETA, departureClock)
		if departureInstant.Before(walkingETA) {
			departureInstant = departureInstant.AddDate(0, 0, 1)
		}

		arrivalInstant := util.AddTimeToDate(departureInstant, arrivalClock)
		if arrivalInstant.Before(departureInstant) {
			arrivalInstant = arrivalInstant.AddDate(0, 0, 1)
		}

		if best == nil || arrivalInstant.Before(best.FinalArrivalInstant) {
			best = &MatchResult{
				Boarding:                 candidate,
				BoardingDepartureInstant: departureInstant,
				FinalArrivalInstant:      arrivalInstant,
			}
		}
	}

	if best == nil {
		return nil, ErrNoFeasibleBoarding
	}

	return best, nil
}
