package database

import (
	"context"

	"github.com/google/logger"
	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client
var RedisURI string
var RedisCtx = context.Background()

// InitRedis เชื่อมต่อ Redis ถ้ามี REDIS_URI; ไม่มีก็ทำงานต่อได้ (dev mode)
func InitRedis(uri string) error {
	if uri == "" {
		logger.Warning("⚠️ REDIS_URI not set. Cache, pub/sub and background jobs run in-process.")
		return nil
	}

	c := redis.NewClient(&redis.Options{
		Addr:     uri, // เช่น localhost:6379
		Password: "",  // ถ้าไม่มีรหัสผ่าน
		DB:       0,
	})
	if _, err := c.Ping(RedisCtx).Result(); err != nil {
		logger.Errorf("❌ Failed to connect Redis: %v", err)
		return err
	}

	RedisClient = c
	RedisURI = uri
	logger.Info("✅ Redis connected successfully")
	return nil
}
