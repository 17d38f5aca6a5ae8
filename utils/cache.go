// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"pulsefolio/config"

	"github.com/go-redis/redis/v8"
)

// SessionClient is the dedicated Redis client for session storage.
var SessionClient *redis.Client

// InitSessionCache initializes the Redis client backing session storage.
func InitSessionCache() {
	SessionClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := SessionClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Sessions): %v", err)
	}
}

// GetSessionCacheClient returns the Redis client for session storage.
func GetSessionCacheClient() *redis.Client {
	if SessionClient == nil {
		InitSessionCache()
	}
	return SessionClient
}
