package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func createIndexes() {
	createScheduleEntriesIndexes()
	createRoutePathsIndexes()
}

func createScheduleEntriesIndexes() {
	scheduleEntriesCollection := GetCollection("schedule_entries")
	scheduleEntriesIndex := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "primaryidentifier", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "buscategory", Value: 1},
				{Key: "daytype", Value: 1},
			},
		},
	}

	opts := options.CreateIndexes()
	_, err := scheduleEntriesCollection.Indexes().CreateMany(context.Background(), scheduleEntriesIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create schedule_entries indexes")
	}
}

func createRoutePathsIndexes() {
	routePathsCollection := GetCollection("route_paths")
	routePathsIndex := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "routekey", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	opts := options.CreateIndexes()
	_, err := routePathsCollection.Indexes().CreateMany(context.Background(), routePathsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create route_paths indexes")
	}
}
