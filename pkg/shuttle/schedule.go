package shuttle

import (
	"fmt"
	"time"
)

// RawTable is the markup-free form of one scraped HTML table. It only lives
// between page fetch and extraction, nothing persists it
type RawTable struct {
	Rows [][]string
}

type ColumnRoleType string

const (
	ColumnRoleSequence ColumnRoleType = "Sequence"
	ColumnRoleStop                    = "Stop"
	ColumnRoleNote                    = "Note"
)

type ColumnRole struct {
	Type ColumnRoleType

	// Only set for ColumnRoleStop
	StopName  string
	IsArrival bool
}

// ColumnRoleMap maps a column index in a RawTable to its semantic role.
// Columns with no recognised role are absent from the map and must be treated
// as non-authoritative by consumers
type ColumnRoleMap map[int]ColumnRole

// StopTimeKey is the key a stop's time is stored under in
// ScheduleEntry.StopTimes. Arrival columns are kept distinct from departure
// columns for the same physical stop
func StopTimeKey(stopName string, isArrival bool) string {
	if isArrival {
		return fmt.Sprintf("%s_arrival", stopName)
	}

	return stopName
}

type BusCategory string

const (
	BusCategoryShuttle BusCategory = "shuttle"
	BusCategoryStation             = "station"
)

type Direction string

const (
	DirectionToCampus   Direction = "to-campus"
	DirectionFromCampus           = "from-campus"
)

const ScheduleEntryIDFormat = "entry-%s-%s-%s-%s-%d"

type ScheduleEntry struct {
	PrimaryIdentifier string `groups:"basic" bson:"primaryidentifier"`

	CreationDateTime     time.Time `groups:"detailed" bson:"creationdatetime"`
	ModificationDateTime time.Time `groups:"detailed" bson:"modificationdatetime"`

	SourceRef   string      `groups:"detailed" bson:"sourceref"`
	BusCategory BusCategory `groups:"basic" bson:"buscategory"`
	Direction   Direction   `groups:"basic" bson:"direction"`
	DayType     DayType     `groups:"basic" bson:"daytype"`

	SequenceNumber int `groups:"basic" bson:"sequencenumber"`

	// Stop name (or "<stop>_arrival") to "HH:MM". A stop with no service on
	// this run is simply absent
	StopTimes map[string]string `groups:"basic" bson:"stoptimes"`

	Note string `groups:"basic" bson:"note"`
}

func (e *ScheduleEntry) GenerateIdentifier() {
	e.PrimaryIdentifier = fmt.Sprintf(ScheduleEntryIDFormat, e.SourceRef, e.BusCategory, e.Direction, e.DayType, e.SequenceNumber)
}
