package initializers

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// ConnectRedis sets up the client used for the revoked-token denylist.
// The app still runs without redis, logout revocation just degrades.
func ConnectRedis(config *Config) {
	if config.RedisURL == "" {
		log.Println("REDIS_URL not set, token revocation disabled")
		return
	}

	opt, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		log.Fatal("Invalid REDIS_URL: ", err)
	}

	RedisClient = redis.NewClient(opt)
	if err := RedisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to redis: ", err)
	}

	log.Println("Connected to redis")
}
