package dataimporter

import (
	"os"

	"github.com/campigo/campigo/pkg/shuttle"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// TimetableSource is one published timetable page. Each page carries the
// tables for a single (category, direction, day type) variant; the transport
// office restructures the tables inside a page often, but the page list itself
// is stable
type TimetableSource struct {
	Identifier string `yaml:"identifier"`
	Name       string `yaml:"name"`
	URL        string `yaml:"url"`

	BusCategory shuttle.BusCategory `yaml:"bus_category"`
	Direction   shuttle.Direction   `yaml:"direction"`
	DayType     shuttle.DayType     `yaml:"day_type"`
}

var registeredSources = []TimetableSource{
	{
		Identifier:  "shuttle-weekday-to-campus",
		Name:        "캠퍼스 셔틀 평일 등교",
		URL:         "https://www.campus.ac.kr/bus/shuttle/weekday",
		BusCategory: shuttle.BusCategoryShuttle,
		Direction:   shuttle.DirectionToCampus,
		DayType:     shuttle.DayTypeWeekday,
	},
	{
		Identifier:  "shuttle-satholiday-to-campus",
		Name:        "캠퍼스 셔틀 토요일/공휴일 등교",
		URL:         "https://www.campus.ac.kr/bus/shuttle/saturday",
		BusCategory: shuttle.BusCategoryShuttle,
		Direction:   shuttle.DirectionToCampus,
		DayType:     shuttle.DayTypeSatHoliday,
	},
	{
		Identifier:  "shuttle-sunday-to-campus",
		Name:        "캠퍼스 셔틀 일요일 등교",
		URL:         "https://www.campus.ac.kr/bus/shuttle/sunday",
		BusCategory: shuttle.BusCategoryShuttle,
		Direction:   shuttle.DirectionToCampus,
		DayType:     shuttle.DayTypeSunday,
	},
	{
		Identifier:  "station-monthu-from-campus",
		Name:        "천안역 버스 월-목 하교",
		URL:         "https://www.campus.ac.kr/bus/station/mon-thu",
		BusCategory: shuttle.BusCategoryStation,
		Direction:   shuttle.DirectionFromCampus,
		DayType:     shuttle.DayTypeMonThu,
	},
	{
		Identifier:  "station-friday-from-campus",
		Name:        "천안역 버스 금요일 하교",
		URL:         "https://www.campus.ac.kr/bus/station/friday",
		BusCategory: shuttle.BusCategoryStation,
		Direction:   shuttle.DirectionFromCampus,
		DayType:     shuttle.DayTypeFriday,
	},
}

// GetRegisteredSources returns the timetable page registry, replaced wholesale
// from a YAML file when CAMPIGO_SOURCES_FILE is set
func GetRegisteredSources() []TimetableSource {
	path := os.Getenv("CAMPIGO_SOURCES_FILE")
	if path == "" {
		return registeredSources
	}

	sourcesYaml, err := os.ReadFile(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to read timetable sources file")
		return registeredSources
	}

	var sources []TimetableSource
	if err := yaml.Unmarshal(sourcesYaml, &sources); err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to parse timetable sources file")
		return registeredSources
	}

	log.Info().Int("sources", len(sources)).Str("path", path).Msg("Loaded timetable sources")

	return sources
}
