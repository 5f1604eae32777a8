package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const feeSummaryKeyPrefix = "fees:summary:"

var client *redis.Client

// Init initializes the Redis connection. The cache is optional; callers
// degrade gracefully when it is unavailable.
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client (nil when the cache is disabled)
func GetClient() *redis.Client {
	return client
}

// hashCredentials creates a hash of username+password for cache key
func hashCredentials(username, password string) string {
	h := sha256.New()
	h.Write([]byte(username + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if credentials are cached and valid
func GetCachedAuth(ctx context.Context, username, password string) (int64, bool) {
	if client == nil {
		return 0, false
	}
	key := hashCredentials(username, password)
	userID, err := client.Get(ctx, key).Int64()
	if err != nil {
		return 0, false
	}
	return userID, true
}

// CacheAuth caches valid credentials for 15 minutes
func CacheAuth(ctx context.Context, username, password string, userID int64) {
	if client == nil {
		return
	}
	client.Set(ctx, hashCredentials(username, password), userID, 15*time.Minute)
}

// InvalidateAuth removes cached auth for a user (on password change)
func InvalidateAuth(ctx context.Context, username, password string) {
	if client == nil {
		return
	}
	client.Del(ctx, hashCredentials(username, password))
}

// GetCachedFeeSummary returns the cached fee summary JSON for a student
func GetCachedFeeSummary(ctx context.Context, studentID string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, feeSummaryKeyPrefix+studentID).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheFeeSummary caches a student's fee summary for 5 minutes
func CacheFeeSummary(ctx context.Context, studentID string, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, feeSummaryKeyPrefix+studentID, data, 5*time.Minute)
}

// InvalidateFeeSummary drops the cached summary after a payment mutates it
func InvalidateFeeSummary(ctx context.Context, studentID string) {
	if client == nil {
		return
	}
	client.Del(ctx, feeSummaryKeyPrefix+studentID)
}
