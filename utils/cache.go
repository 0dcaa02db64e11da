// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"armora/config"

	"github.com/go-redis/redis/v8"
)

// BookingCacheClient is the Redis client backing the booking state store.
var BookingCacheClient *redis.Client

// InitCache initializes the Redis client used for booking persistence.
func InitCache() {
	BookingCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisBookingDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := BookingCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (booking store): %v", err)
	}
}

// GetBookingCacheClient returns the booking store client.
func GetBookingCacheClient() *redis.Client {
	if BookingCacheClient == nil {
		InitCache()
	}
	return BookingCacheClient
}
