package config

import (
	"log"
	"os"

	"github.com/go-redis/redis/v8"
)

var Redis *redis.Client

// InitRedis connects the refresh-token allowlist store. Optional: without
// REDIS_URL refresh tokens stay stateless (signature + expiry only).
func InitRedis() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Println("⚠️  REDIS_URL not set, refresh tokens will not be tracked server-side")
		return
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	log.Println("🔧 Redis initialized with address:", redisURL)
}
