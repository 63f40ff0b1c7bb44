package routeplanner

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/campigo/campigo/pkg/shuttle"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

const RouteKeyFormat = "route-%s-%s-%s-%s-%s"

// RouteKey identifies one cached route computation. The via-stop hash is
// order insensitive: upstream schedule tables list the same intermediate
// stops in whatever order the page happens to use, and reordering must not
// invalidate the cache - only genuine membership changes may
type RouteKey struct {
	RouteKey    string
	ViaStopHash string

	DepartureStop string
	ArrivalStop   string
	Direction     shuttle.Direction
	DayType       shuttle.DayType
	ViaStopsUsed  []string
}

// KeyFor derives the cache identity for a route computation. Via stops
// without a known coordinate are dropped with a warning - the route is still
// computed from whatever resolves - and the survivors are sorted before
// hashing so permutations of the same set collapse onto one key
func KeyFor(departureStop string, arrivalStop string, direction shuttle.Direction, dayType shuttle.DayType, viaStops []string) RouteKey {
	coordinates := shuttle.CoordinatesFor(viaStops)

	var usedStops []string
	for _, stopName := range viaStops {
		if _, known := coordinates[stopName]; known {
			usedStops = append(usedStops, stopName)
		} else {
			log.Warn().Str("stop", stopName).Msg("Via stop has no known coordinate, excluding from route computation")
		}
	}

	slices.Sort(usedStops)

	hash := sha256.Sum256([]byte(strings.Join(usedStops, "|")))
	viaStopHash := fmt.Sprintf("%x", hash)

	return RouteKey{
		RouteKey:    fmt.Sprintf(RouteKeyFormat, departureStop, arrivalStop, direction, dayType, viaStopHash[:16]),
		ViaStopHash: viaStopHash,

		DepartureStop: departureStop,
		ArrivalStop:   arrivalStop,
		Direction:     direction,
		DayType:       dayType,
		ViaStopsUsed:  usedStops,
	}
}
