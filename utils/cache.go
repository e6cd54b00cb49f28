// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"hospitalpanel/config"

	"github.com/go-redis/redis/v8"
)

var (
	// AttemptCacheClient is the dedicated client for in-flight login attempts.
	AttemptCacheClient *redis.Client
	// DraftCacheClient is the dedicated client for bill drafts.
	DraftCacheClient *redis.Client
)

// InitAttemptCache initializes the Redis client for login attempt state.
func InitAttemptCache() {
	AttemptCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAttemptDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := AttemptCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Attempt Cache): %v", err)
	}
}

// GetAttemptCacheClient returns the Redis client for login attempt state.
func GetAttemptCacheClient() *redis.Client {
	if AttemptCacheClient == nil {
		InitAttemptCache()
	}
	return AttemptCacheClient
}

// InitDraftCache initializes the Redis client for bill drafts.
func InitDraftCache() {
	DraftCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDraftDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := DraftCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Draft Cache): %v", err)
	}
}

// GetDraftCacheClient returns the Redis client for bill drafts.
func GetDraftCacheClient() *redis.Client {
	if DraftCacheClient == nil {
		InitDraftCache()
	}
	return DraftCacheClient
}

// InitRedis eagerly initializes every Redis client so a bad address fails at startup.
func InitRedis() {
	InitAttemptCache()
	InitDraftCache()
}
