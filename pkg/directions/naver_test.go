package directions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/campigo/campigo/pkg/shuttle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const routeResponse = `{
	"code": 0,
	"route": {
		"trafast": [{
			"summary": {"distance": 18200, "duration": 1620000},
			"path": [[127.0743, 36.8005], [127.1465, 36.8101]]
		}]
	}
}`

func testProvider(server *httptest.Server) *NaverProvider {
	return &NaverProvider{
		Endpoint:   server.URL,
		KeyID:      "test-key-id",
		Key:        "test-key",
		HTTPClient: server.Client(),
	}
}

func TestComputeRoute(t *testing.T) {
	var requestedWaypoints string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key-id", r.Header.Get("x-ncp-apigw-api-key-id"))
		requestedWaypoints = r.URL.Query().Get("waypoints")
		w.Write([]byte(routeResponse))
	}))
	defer server.Close()

	provider := testProvider(server)

	start := shuttle.NewPointLocation(127.0743, 36.8005)
	goal := shuttle.NewPointLocation(127.1465, 36.8101)
	via := []*shuttle.Location{shuttle.NewPointLocation(127.1563, 36.8194)}

	route, err := provider.ComputeRoute(context.Background(), start, goal, via, "")
	require.NoError(t, err)

	assert.Equal(t, 18200.0, route.Distance)
	assert.Equal(t, 27*time.Minute, route.Duration)
	assert.Len(t, route.Geometry, 2)
	assert.Contains(t, requestedWaypoints, "127.15")
}

func TestComputeRouteTruncatesWaypoints(t *testing.T) {
	var requestedWaypoints string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedWaypoints = r.URL.Query().Get("waypoints")
		w.Write([]byte(routeResponse))
	}))
	defer server.Close()

	provider := testProvider(server)

	var via []*shuttle.Location
	for i := 0; i < 8; i++ {
		via = append(via, shuttle.NewPointLocation(127.0+float64(i)/100, 36.8))
	}

	_, err := provider.ComputeRoute(context.Background(), shuttle.NewPointLocation(127, 36.8), shuttle.NewPointLocation(127.2, 36.8), via, "")
	require.NoError(t, err)

	assert.Len(t, strings.Split(requestedWaypoints, "|"), MaxViaStops)
}

func TestComputeRouteProviderFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := testProvider(server)

	_, err := provider.ComputeRoute(context.Background(), shuttle.NewPointLocation(127, 36.8), shuttle.NewPointLocation(127.2, 36.8), nil, "")
	assert.ErrorIs(t, err, ErrProviderFailure)
}

func TestComputeRouteErrorCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": 5, "message": "요청 처리 실패", "route": {}}`))
	}))
	defer server.Close()

	provider := testProvider(server)

	_, err := provider.ComputeRoute(context.Background(), shuttle.NewPointLocation(127, 36.8), shuttle.NewPointLocation(127.2, 36.8), nil, "")
	assert.ErrorIs(t, err, ErrProviderFailure)
}
