package routeplanner

import (
	"context"
	"encoding/json"
	"time"

	"github.com/campigo/campigo/pkg/database"
	"github.com/campigo/campigo/pkg/directions"
	"github.com/campigo/campigo/pkg/redis_client"
	"github.com/campigo/campigo/pkg/shuttle"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RouteCacheRecord struct {
	RouteKey string `json:"route_key" groups:"internal" bson:"routekey"`

	CreationDateTime     time.Time `json:"creation_datetime" groups:"detailed" bson:"creationdatetime"`
	ModificationDateTime time.Time `json:"modification_datetime" groups:"detailed" bson:"modificationdatetime"`

	DepartureStop string            `json:"departure_stop" groups:"basic" bson:"departurestop"`
	ArrivalStop   string            `json:"arrival_stop" groups:"basic" bson:"arrivalstop"`
	Direction     shuttle.Direction `json:"direction" groups:"basic" bson:"direction"`
	DayType       shuttle.DayType   `json:"day_type" groups:"basic" bson:"daytype"`

	ViaStopsUsed []string `json:"via_stops_used" groups:"basic" bson:"viastopsused"`
	ViaStopHash  string   `json:"via_stop_hash" groups:"internal" bson:"viastophash"`

	Geometry [][]float64 `json:"geometry" groups:"basic" bson:"geometry"`
	Distance float64     `json:"distance" groups:"basic" bson:"distance"`
	Duration float64     `json:"duration" groups:"basic" bson:"duration"` // seconds
}

func (r *RouteCacheRecord) MarshalBinary() ([]byte, error) {
	return json.Marshal(r)
}

func (r *RouteCacheRecord) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, r)
}

// Cache looks up computed route geometry by RouteKey: a redis hot layer in
// front of the route_paths collection, with the external directions provider
// as the computation of last resort
type Cache struct {
	recordCache *cache.Cache[*RouteCacheRecord]

	// Storage accessors, swappable so the lookup contract is testable
	// without a live collection
	findStored  func(ctx context.Context, key RouteKey) *RouteCacheRecord
	storeRecord func(ctx context.Context, key RouteKey, record *RouteCacheRecord)
}

func (c *Cache) Setup() {
	redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(24*time.Hour))

	c.recordCache = cache.New[*RouteCacheRecord](redisStore)

	c.findStored = findStoredRoutePath
	c.storeRecord = upsertRoutePath
}

func naturalKeyFilter(key RouteKey) bson.M {
	return bson.M{
		"departurestop": key.DepartureStop,
		"arrivalstop":   key.ArrivalStop,
		"direction":     key.Direction,
		"daytype":       key.DayType,
	}
}

func findStoredRoutePath(ctx context.Context, key RouteKey) *RouteCacheRecord {
	routePathsCollection := database.GetCollection("route_paths")

	var storedRecord *RouteCacheRecord
	routePathsCollection.FindOne(ctx, naturalKeyFilter(key)).Decode(&storedRecord)

	return storedRecord
}

func upsertRoutePath(ctx context.Context, key RouteKey, record *RouteCacheRecord) {
	routePathsCollection := database.GetCollection("route_paths")

	opts := options.Replace().SetUpsert(true)
	if _, err := routePathsCollection.ReplaceOne(ctx, naturalKeyFilter(key), record, opts); err != nil {
		log.Error().Err(err).Str("routekey", key.RouteKey).Msg("Failed to upsert route path")
	}
}

// ComputeFunc invokes the external directions provider for a route the cache
// cannot answer
type ComputeFunc func(ctx context.Context, viaStopsUsed []string) (*directions.Route, error)

// LookupOrCompute returns the stored route for the key, invoking computeFn
// only on a genuine miss or when the stored record's via-stop hash no longer
// matches (the via-stop set changed upstream). Repeated calls with an
// unchanged via-stop set never recompute. Records are upserted by the
// (departure, arrival, direction, day type) natural key and never deleted here -
// eviction is someone else's job
func (c *Cache) LookupOrCompute(ctx context.Context, key RouteKey, computeFn ComputeFunc) (*RouteCacheRecord, error) {
	if c.recordCache != nil {
		cachedRecord, err := c.recordCache.Get(ctx, key.RouteKey)
		if err == nil && cachedRecord != nil && cachedRecord.ViaStopHash == key.ViaStopHash {
			return cachedRecord, nil
		}
	}

	var storedRecord *RouteCacheRecord
	if c.findStored != nil {
		storedRecord = c.findStored(ctx, key)
	}

	if storedRecord != nil && storedRecord.ViaStopHash == key.ViaStopHash {
		c.setHotRecord(ctx, storedRecord)
		return storedRecord, nil
	}

	if storedRecord != nil {
		log.Info().
			Str("routekey", key.RouteKey).
			Msg("Via stop set changed upstream, recomputing route")
	}

	route, err := computeFn(ctx, key.ViaStopsUsed)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record := &RouteCacheRecord{
		RouteKey: key.RouteKey,

		CreationDateTime:     now,
		ModificationDateTime: now,

		DepartureStop: key.DepartureStop,
		ArrivalStop:   key.ArrivalStop,
		Direction:     key.Direction,
		DayType:       key.DayType,

		ViaStopsUsed: key.ViaStopsUsed,
		ViaStopHash:  key.ViaStopHash,

		Geometry: route.Geometry,
		Distance: route.Distance,
		Duration: route.Duration.Seconds(),
	}

	if storedRecord != nil {
		record.CreationDateTime = storedRecord.CreationDateTime
	}

	if c.storeRecord != nil {
		c.storeRecord(ctx, key, record)
	}

	c.setHotRecord(ctx, record)

	return record, nil
}

func (c *Cache) setHotRecord(ctx context.Context, record *RouteCacheRecord) {
	if c.recordCache == nil {
		return
	}

	if err := c.recordCache.Set(ctx, record.RouteKey, record); err != nil {
		log.Debug().Err(err).Str("routekey", record.RouteKey).Msg("Failed to store route path in hot cache")
	}
}
