// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"gemtrade/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client, used for session-token revocation.
	CacheClient *redis.Client
	// CodesCacheClient is the dedicated client for confirmation and reset codes.
	CodesCacheClient *redis.Client
)

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitCodesCache initializes the Redis client for confirmation/reset codes.
func InitCodesCache() {
	CodesCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCodesDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CodesCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Codes Cache): %v", err)
	}
}

// GetCodesCacheClient returns the Redis client for confirmation/reset codes.
func GetCodesCacheClient() *redis.Client {
	if CodesCacheClient == nil {
		InitCodesCache()
	}
	return CodesCacheClient
}
