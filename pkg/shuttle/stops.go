package shuttle

import (
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type StopAlias struct {
	Contains    string   `yaml:"contains"`
	NotContains []string `yaml:"not_contains,omitempty"`
}

type Stop struct {
	Name     string      `yaml:"name" groups:"basic"`
	Aliases  []StopAlias `yaml:"aliases"`
	Location *Location   `yaml:"-" groups:"basic"`

	Longitude float64 `yaml:"longitude,omitempty" groups:"internal"`
	Latitude  float64 `yaml:"latitude,omitempty" groups:"internal"`
}

// RegisteredStops is the known-stop registry for the campus network. Header
// classification only ever names stops from this table, so a typo'd or novel
// header label can never invent a stop that nothing downstream knows about.
//
// Alias matching is substring based on whitespace-normalized header text, so
// exclusions matter: "천안아산역" (the KTX interchange) contains the substring
// "아산역", and a bare "아산역" alias would silently rename it to the wrong
// physical station without the not_contains condition
var RegisteredStops = []Stop{
	{
		Name: "아산캠퍼스",
		Aliases: []StopAlias{
			{Contains: "아산캠퍼스"},
			{Contains: "아산캠"},
			{Contains: "본교"},
		},
		Location: NewPointLocation(127.0743, 36.8005),
	},
	{
		Name: "천안캠퍼스",
		Aliases: []StopAlias{
			{Contains: "천안캠퍼스"},
			{Contains: "천안캠"},
		},
		Location: NewPointLocation(127.1330, 36.8330),
	},
	{
		Name: "천안역",
		Aliases: []StopAlias{
			{Contains: "천안역", NotContains: []string{"천안아산"}},
		},
		Location: NewPointLocation(127.1465, 36.8101),
	},
	{
		Name: "천안아산역",
		Aliases: []StopAlias{
			{Contains: "천안아산역"},
			{Contains: "천안아산"},
			{Contains: "아산역", NotContains: []string{"천안아산"}},
			{Contains: "KTX"},
		},
		Location: NewPointLocation(127.1045, 36.7944),
	},
	{
		Name: "천안터미널",
		Aliases: []StopAlias{
			{Contains: "터미널"},
		},
		Location: NewPointLocation(127.1563, 36.8194),
	},
	{
		Name: "기숙사",
		Aliases: []StopAlias{
			{Contains: "기숙사"},
			{Contains: "생활관"},
		},
		// No surveyed coordinate yet - excluded from route computations
	},
}

// LoadStopRegistry replaces the built-in registry from a YAML file when
// CAMPIGO_STOPS_FILE is set, so new stops and alias exclusions ship without a
// code change
func LoadStopRegistry() {
	path := os.Getenv("CAMPIGO_STOPS_FILE")
	if path == "" {
		return
	}

	stopsYaml, err := os.ReadFile(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to read stop registry file")
		return
	}

	var stops []Stop
	if err := yaml.Unmarshal(stopsYaml, &stops); err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to parse stop registry file")
		return
	}

	for i := range stops {
		if stops[i].Longitude != 0 || stops[i].Latitude != 0 {
			stops[i].Location = NewPointLocation(stops[i].Longitude, stops[i].Latitude)
		}
	}

	RegisteredStops = stops
	log.Info().Int("stops", len(stops)).Str("path", path).Msg("Loaded stop registry")
}

// MatchStopText finds the registered stop whose alias matches the given
// whitespace-normalized header text. Candidate aliases match by substring;
// an alias is rejected when any of its not_contains conditions also appear.
// Ties between stops are broken by the longest (most specific) matching alias
func MatchStopText(text string) *Stop {
	var matched *Stop
	matchedAliasLength := 0

	for i := range RegisteredStops {
		stop := &RegisteredStops[i]

		for _, alias := range stop.Aliases {
			if !strings.Contains(text, alias.Contains) {
				continue
			}

			excluded := false
			for _, exclusion := range alias.NotContains {
				if strings.Contains(text, exclusion) {
					excluded = true
					break
				}
			}
			if excluded {
				continue
			}

			if len(alias.Contains) > matchedAliasLength {
				matched = stop
				matchedAliasLength = len(alias.Contains)
			}
		}
	}

	return matched
}

func GetStop(name string) *Stop {
	for i := range RegisteredStops {
		if RegisteredStops[i].Name == name {
			return &RegisteredStops[i]
		}
	}

	return nil
}

// CoordinatesFor returns the known coordinates for the given stop names.
// Stops without a surveyed coordinate are simply absent from the result
func CoordinatesFor(stopNames []string) map[string]*Location {
	coordinates := map[string]*Location{}

	for _, name := range stopNames {
		stop := GetStop(name)
		if stop != nil && stop.Location != nil {
			coordinates[name] = stop.Location
		}
	}

	return coordinates
}
