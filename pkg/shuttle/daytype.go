package shuttle

import (
	"time"
)

type DayType string

const (
	DayTypeWeekday    DayType = "weekday"
	DayTypeMonThu             = "mon-thu"
	DayTypeFriday             = "friday"
	DayTypeSatHoliday         = "sat-holiday"
	DayTypeSunday             = "sunday"
)

// BusCategoryDayTypes lists every day-type bucket each category's timetable is
// published under. The categories partition the week differently - the shuttle
// lumps Mon-Fri together while the station bus splits Friday out
var BusCategoryDayTypes = map[BusCategory][]DayType{
	BusCategoryShuttle: {DayTypeWeekday, DayTypeSatHoliday, DayTypeSunday},
	BusCategoryStation: {DayTypeMonThu, DayTypeFriday, DayTypeSatHoliday, DayTypeSunday},
}

// ResolveDayTypes maps a calendar date to the applicable day-type bucket for
// every bus category. Pure weekday arithmetic - no holiday calendar is
// consulted; a caller that knows the date is a holiday passes forceHoliday to
// get the Saturday/Holiday timetable instead
func ResolveDayTypes(date time.Time, forceHoliday bool) map[BusCategory]DayType {
	dayTypes := map[BusCategory]DayType{}

	if forceHoliday {
		for category := range BusCategoryDayTypes {
			dayTypes[category] = DayTypeSatHoliday
		}

		return dayTypes
	}

	switch date.Weekday() {
	case time.Monday, time.Tuesday, time.Wednesday, time.Thursday:
		dayTypes[BusCategoryShuttle] = DayTypeWeekday
		dayTypes[BusCategoryStation] = DayTypeMonThu
	case time.Friday:
		dayTypes[BusCategoryShuttle] = DayTypeWeekday
		dayTypes[BusCategoryStation] = DayTypeFriday
	case time.Saturday:
		dayTypes[BusCategoryShuttle] = DayTypeSatHoliday
		dayTypes[BusCategoryStation] = DayTypeSatHoliday
	case time.Sunday:
		dayTypes[BusCategoryShuttle] = DayTypeSunday
		dayTypes[BusCategoryStation] = DayTypeSunday
	}

	return dayTypes
}
