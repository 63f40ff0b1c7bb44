package journeyplan

import (
	"context"

	"github.com/campigo/campigo/pkg/database"
	"github.com/campigo/campigo/pkg/shuttle"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
)

// DepartureRecord is one boardable run in a schedule pool - a stored schedule
// entry projected onto a concrete (departure stop, arrival stop) pair
type DepartureRecord struct {
	Entry shuttle.ScheduleEntry `groups:"basic"`

	DepartureStop string `groups:"basic"`
	ArrivalStop   string `groups:"basic"`

	DepartureTime string `groups:"basic"`
	ArrivalTime   string `groups:"basic"`
}

// BuildPool assembles the schedule pool for a query: the union of stored
// schedule entries across every bus category whose day type matches the query
// date, filtered to entries serving both stops. Built fresh per query, never
// persisted
func BuildPool(ctx context.Context, departureStop string, arrivalStop string, dayTypes map[shuttle.BusCategory]shuttle.DayType) []DepartureRecord {
	scheduleEntriesCollection := database.GetCollection("schedule_entries")

	var categoryFilters bson.A
	for category, dayType := range dayTypes {
		categoryFilters = append(categoryFilters, bson.M{
			"buscategory": category,
			"daytype":     dayType,
		})
	}

	cursor, err := scheduleEntriesCollection.Find(ctx, bson.M{"$or": categoryFilters})
	if err != nil {
		log.Error().Err(err).Msg("Failed to query schedule entries")
		return nil
	}

	var pool []DepartureRecord

	for cursor.Next(ctx) {
		var entry shuttle.ScheduleEntry
		if err := cursor.Decode(&entry); err != nil {
			log.Error().Err(err).Msg("Failed to decode schedule entry")
			continue
		}

		record, serves := departureRecordFor(entry, departureStop, arrivalStop)
		if !serves {
			continue
		}

		pool = append(pool, record)
	}

	return pool
}

// departureRecordFor projects a stored entry onto the queried stop pair.
//
// An explicit "<stop>_arrival" column is always authoritative, including for
// overnight runs whose arrival clock time precedes the departure. When the
// table only lists a departure-role time for the arrival stop, that time only
// stands in as the arrival when it is later than the boarding departure -
// otherwise the run serves the stops in the opposite order and the entry does
// not serve this query at all
func departureRecordFor(entry shuttle.ScheduleEntry, departureStop string, arrivalStop string) (DepartureRecord, bool) {
	departureTime, hasDeparture := entry.StopTimes[shuttle.StopTimeKey(departureStop, false)]
	if !hasDeparture {
		return DepartureRecord{}, false
	}

	arrivalTime, hasArrival := entry.StopTimes[shuttle.StopTimeKey(arrivalStop, true)]
	if !hasArrival {
		fallbackTime, hasFallback := entry.StopTimes[shuttle.StopTimeKey(arrivalStop, false)]

		// Normalized "HH:MM" strings order lexicographically
		if !hasFallback || fallbackTime <= departureTime {
			return DepartureRecord{}, false
		}

		arrivalTime = fallbackTime
	}

	record := DepartureRecord{
		DepartureStop: departureStop,
		ArrivalStop:   arrivalStop,
		DepartureTime: departureTime,
		ArrivalTime:   arrivalTime,
	}

	// Deep copy so pool records never alias the decoded entry's StopTimes map
	if err := copier.CopyWithOption(&record.Entry, &entry, copier.Option{DeepCopy: true}); err != nil {
		log.Error().Err(err).Str("entry", entry.PrimaryIdentifier).Msg("Failed to copy schedule entry")
		return DepartureRecord{}, false
	}

	return record, true
}
