package shuttle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestResolveDayTypes(t *testing.T) {
	// 2026-08-31 is a Monday
	monday := ResolveDayTypes(date(2026, 8, 31), false)
	assert.Equal(t, DayType(DayTypeWeekday), monday[BusCategoryShuttle])
	assert.Equal(t, DayType(DayTypeMonThu), monday[BusCategoryStation])

	friday := ResolveDayTypes(date(2026, 9, 4), false)
	assert.Equal(t, DayType(DayTypeWeekday), friday[BusCategoryShuttle])
	assert.Equal(t, DayType(DayTypeFriday), friday[BusCategoryStation])

	saturday := ResolveDayTypes(date(2026, 9, 5), false)
	assert.Equal(t, DayType(DayTypeSatHoliday), saturday[BusCategoryShuttle])
	assert.Equal(t, DayType(DayTypeSatHoliday), saturday[BusCategoryStation])

	sunday := ResolveDayTypes(date(2026, 9, 6), false)
	assert.Equal(t, DayType(DayTypeSunday), sunday[BusCategoryShuttle])
	assert.Equal(t, DayType(DayTypeSunday), sunday[BusCategoryStation])
}

func TestResolveDayTypesEveryCategoryCovered(t *testing.T) {
	for day := 0; day < 7; day++ {
		dayTypes := ResolveDayTypes(date(2026, 8, 31).AddDate(0, 0, day), false)

		for category := range BusCategoryDayTypes {
			assert.Contains(t, dayTypes, category)
			assert.Contains(t, BusCategoryDayTypes[category], dayTypes[category])
		}
	}
}

func TestResolveDayTypesForceHoliday(t *testing.T) {
	// A weekday that is a public holiday runs the Saturday/Holiday timetable
	dayTypes := ResolveDayTypes(date(2026, 8, 31), true)

	assert.Equal(t, DayType(DayTypeSatHoliday), dayTypes[BusCategoryShuttle])
	assert.Equal(t, DayType(DayTypeSatHoliday), dayTypes[BusCategoryStation])
}
