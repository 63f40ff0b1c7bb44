package directions

import (
	"context"
	"errors"
	"time"

	"github.com/campigo/campigo/pkg/shuttle"
)

var ErrProviderFailure = errors.New("directions provider failure")

// MaxViaStops is the most waypoints the upstream directions API accepts in a
// single request; longer via lists are truncated, not rejected
const MaxViaStops = 5

const RequestTimeout = 15 * time.Second

type Route struct {
	Distance float64       `groups:"basic"` // metres
	Duration time.Duration `groups:"basic"`

	// Ordered (lon, lat) pairs
	Geometry [][]float64 `groups:"basic"`
}

type Provider interface {
	ComputeRoute(ctx context.Context, start *shuttle.Location, goal *shuttle.Location, via []*shuttle.Location, option string) (*Route, error)
}
