// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"glowtheory/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client, used for cart sessions.
	CacheClient *redis.Client
	// AuthCacheClient is the dedicated client for authorization caching.
	AuthCacheClient *redis.Client
	// OTPCacheClient is the dedicated client for OTP issuance cooldowns.
	OTPCacheClient *redis.Client
)

// InitRedis initializes all Redis clients up front.
func InitRedis() {
	InitCache()
	InitAuthCache()
	InitOTPCache()
}

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = newClient(config.AppConfig.RedisCacheDB, "Cache")
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitAuthCache initializes the Redis client for authorization caching.
func InitAuthCache() {
	AuthCacheClient = newClient(config.AppConfig.RedisAuthDB, "Auth Cache")
}

// GetAuthCacheClient returns the Redis client for authorization caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}

// InitOTPCache initializes the Redis client for OTP cooldown keys.
func InitOTPCache() {
	OTPCacheClient = newClient(config.AppConfig.RedisOTPDB, "OTP Cache")
}

// GetOTPCacheClient returns the Redis client for OTP cooldown keys.
func GetOTPCacheClient() *redis.Client {
	if OTPCacheClient == nil {
		InitOTPCache()
	}
	return OTPCacheClient
}

func newClient(db int, label string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", label, err)
	}
	return client
}
