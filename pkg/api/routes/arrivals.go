package routes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/campigo/campigo/pkg/directions"
	"github.com/campigo/campigo/pkg/journeyplan"
	"github.com/campigo/campigo/pkg/routeplanner"
	"github.com/campigo/campigo/pkg/shuttle"
	"github.com/campigo/campigo/pkg/util"
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"

	iso8601 "github.com/senseyeio/duration"
)

type arrivalsResponse struct {
	Match *journeyplan.MatchResult       `groups:"basic"`
	Route *routeplanner.RouteCacheRecord `groups:"basic"`

	WalkingETA time.Time `groups:"basic"`
}

func ArrivalsRouter(router fiber.Router, routeCache *routeplanner.Cache, directionsProvider directions.Provider) {
	router.Get("/", func(c *fiber.Ctx) error {
		return getArrival(c, routeCache, directionsProvider)
	})
}

func getArrival(c *fiber.Ctx, routeCache *routeplanner.Cache, directionsProvider directions.Provider) error {
	departureStopName := c.Query("departure")
	arrivalStopName := c.Query("arrival")

	departureStop := shuttle.GetStop(departureStopName)
	arrivalStop := shuttle.GetStop(arrivalStopName)

	if departureStop == nil || arrivalStop == nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameters departure and arrival must name registered stops",
		})
	}

	now := time.Now()
	if datetimeString := c.Query("datetime"); datetimeString != "" {
		parsed, err := time.Parse(time.RFC3339, datetimeString)
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Parameter datetime should be an RFC3339 datetime",
			})
		}
		now = parsed
	}

	walkingETA := now
	if walkingString := c.Query("walking", "PT10M"); walkingString != "" {
		walkingDuration, err := iso8601.ParseISO8601(walkingString)
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Parameter walking should be an ISO 8601 duration",
			})
		}
		walkingETA = walkingDuration.Shift(now)
	}

	forceHoliday := c.QueryBool("holiday", false)
	dayTypes := shuttle.ResolveDayTypes(now, forceHoliday)

	pool := journeyplan.BuildPool(c.Context(), departureStop.Name, arrivalStop.Name, dayTypes)
	if len(pool) == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "no-schedule-found",
		})
	}

	matchResult, err := journeyplan.Match(walkingETA, pool)
	if err != nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "no-feasible-boarding",
		})
	}

	routeRecord, err := lookupRoute(c.Context(), routeCache, directionsProvider, matchResult)
	if err != nil {
		if errors.Is(err, directions.ErrProviderFailure) {
			c.SendStatus(fiber.StatusBadGateway)
			return c.JSON(fiber.Map{
				"error": "upstream-provider-failure",
			})
		}

		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	response := arrivalsResponse{
		Match:      matchResult,
		Route:      routeRecord,
		WalkingETA: walkingETA,
	}

	responseReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, &response)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sorry could not marshal response",
		})
	}

	return c.JSON(responseReduced)
}

func lookupRoute(ctx context.Context, routeCache *routeplanner.Cache, directionsProvider directions.Provider, matchResult *journeyplan.MatchResult) (*routeplanner.RouteCacheRecord, error) {
	boarding := matchResult.Boarding

	key := routeplanner.KeyFor(
		boarding.DepartureStop,
		boarding.ArrivalStop,
		boarding.Entry.Direction,
		boarding.Entry.DayType,
		viaStopsForEntry(boarding),
	)

	return routeCache.LookupOrCompute(ctx, key, func(ctx context.Context, viaStopsUsed []string) (*directions.Route, error) {
		startLocation := shuttle.GetStop(boarding.DepartureStop).Location
		goalLocation := shuttle.GetStop(boarding.ArrivalStop).Location

		if startLocation == nil || goalLocation == nil {
			return nil, errors.New("departure or arrival stop has no known coordinate")
		}

		viaCoordinates := shuttle.CoordinatesFor(viaStopsUsed)

		var viaLocations []*shuttle.Location
		for _, stopName := range viaStopsUsed {
			if location, known := viaCoordinates[stopName]; known {
				viaLocations = append(viaLocations, location)
			}
		}

		return directionsProvider.ComputeRoute(ctx, startLocation, goalLocation, viaLocations, "")
	})
}

// viaStopsForEntry lists the intermediate stops the matched run serves
// between its boarding and alighting points
func viaStopsForEntry(boarding journeyplan.DepartureRecord) []string {
	var viaStops []string

	for stopTimeKey := range boarding.Entry.StopTimes {
		stopName := strings.TrimSuffix(stopTimeKey, "_arrival")

		if stopName == boarding.DepartureStop || stopName == boarding.ArrivalStop {
			continue
		}

		viaStops = append(viaStops, stopName)
	}

	// The same physical stop can appear under both its departure and arrival keys
	return util.RemoveDuplicateStrings(viaStops, nil)
}
