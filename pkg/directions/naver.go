package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/campigo/campigo/pkg/shuttle"
	"github.com/campigo/campigo/pkg/util"
	"github.com/rs/zerolog/log"
)

const defaultEndpoint = "https://maps.apigw.ntruss.com/map-direction/v1/driving"

// NaverProvider computes driving routes against the NAVER Cloud Directions 5
// API. The API is rate limited and slow, which is why computed routes are
// cached by the routeplanner rather than recomputed per query
type NaverProvider struct {
	Endpoint string
	KeyID    string
	Key      string

	HTTPClient *http.Client
}

func NewNaverProvider() *NaverProvider {
	env := util.GetEnvironmentVariables()

	endpoint := defaultEndpoint
	if env["CAMPIGO_DIRECTIONS_ENDPOINT"] != "" {
		endpoint = env["CAMPIGO_DIRECTIONS_ENDPOINT"]
	}

	return &NaverProvider{
		Endpoint: endpoint,
		KeyID:    env["CAMPIGO_DIRECTIONS_KEY_ID"],
		Key:      env["CAMPIGO_DIRECTIONS_KEY"],

		HTTPClient: &http.Client{
			Timeout: RequestTimeout,
		},
	}
}

type naverDirectionsResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`

	Route map[string][]struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"` // milliseconds
		} `json:"summary"`
		Path [][]float64 `json:"path"`
	} `json:"route"`
}

func formatCoordinate(location *shuttle.Location) string {
	return fmt.Sprintf("%f,%f", location.Coordinates[0], location.Coordinates[1])
}

func (p *NaverProvider) ComputeRoute(ctx context.Context, start *shuttle.Location, goal *shuttle.Location, via []*shuttle.Location, option string) (*Route, error) {
	if len(via) > MaxViaStops {
		log.Warn().Int("requested", len(via)).Int("max", MaxViaStops).Msg("Truncating via stops to provider maximum")
		via = via[:MaxViaStops]
	}

	if option == "" {
		option = "trafast"
	}

	query := url.Values{}
	query.Set("start", formatCoordinate(start))
	query.Set("goal", formatCoordinate(goal))
	query.Set("option", option)

	if len(via) > 0 {
		var waypoints []string
		for _, location := range via {
			waypoints = append(waypoints, formatCoordinate(location))
		}
		query.Set("waypoints", strings.Join(waypoints, "|"))
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", p.Endpoint, query.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProviderFailure, err)
	}

	request.Header.Set("x-ncp-apigw-api-key-id", p.KeyID)
	request.Header.Set("x-ncp-apigw-api-key", p.Key)

	response, err := p.HTTPClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProviderFailure, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrProviderFailure, response.StatusCode)
	}

	var directionsResponse naverDirectionsResponse
	if err := json.NewDecoder(response.Body).Decode(&directionsResponse); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProviderFailure, err)
	}

	if directionsResponse.Code != 0 {
		return nil, fmt.Errorf("%w: code %d %s", ErrProviderFailure, directionsResponse.Code, directionsResponse.Message)
	}

	paths := directionsResponse.Route[option]
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: empty route", ErrProviderFailure)
	}

	summary := paths[0].Summary

	return &Route{
		Distance: summary.Distance,
		Duration: time.Duration(summary.Duration) * time.Millisecond,
		Geometry: paths[0].Path,
	}, nil
}
