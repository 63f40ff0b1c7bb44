package redis_client

import (
	"context"
	"strconv"

	"github.com/campigo/campigo/pkg/util"
	"github.com/redis/go-redis/v9"
)

var Client *redis.Client

const defaultConnectionAddress = "localhost:6379"
const defaultConnectionPassword = ""
const defaultDatabase = 0

func Connect() error {
	address := defaultConnectionAddress
	password := defaultConnectionPassword
	database := defaultDatabase

	env := util.GetEnvironmentVariables()

	if env["CAMPIGO_REDIS_ADDRESS"] != "" {
		address = env["CAMPIGO_REDIS_ADDRESS"]
	}

	if env["CAMPIGO_REDIS_PASSWORD"] != "" {
		password = env["CAMPIGO_REDIS_PASSWORD"]
	}

	if env["CAMPIGO_REDIS_DATABASE"] != "" {
		if n, err := strconv.Atoi(env["CAMPIGO_REDIS_DATABASE"]); err == nil {
			database = n
		} else {
			return err
		}
	}

	Client = redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       database,
	})

	statusCmd := Client.Ping(context.Background())

	return statusCmd.Err()
}
