package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	DB "Backend-TanyaPintar/src/database"

	"github.com/google/logger"
	"github.com/redis/go-redis/v9"
)

var Ctx = context.Background()

// ensureClient returns the shared Redis client managed by the database package.
// nil means Redis is not configured and callers fall back to in-process state.
func ensureClient() *redis.Client {
	return DB.RedisClient
}

// --- Redis Cache Helper ---

// SetCache stores value as JSON. No-op without Redis.
func SetCache(key string, value interface{}, ttl time.Duration) {
	client := ensureClient()
	if client == nil {
		return
	}
	b, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := client.Set(Ctx, key, b, ttl).Err(); err != nil {
		logger.Warningf("⚠️ cache set %s failed: %v", key, err)
	}
}

// GetCache decodes a cached JSON value into dest; false on miss.
func GetCache(key string, dest interface{}) bool {
	client := ensureClient()
	if client == nil {
		return false
	}
	val, err := client.Get(Ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(val, dest) == nil
}

// DelCache removes keys. No-op without Redis.
func DelCache(keys ...string) {
	client := ensureClient()
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(Ctx, keys...)
}

// BlacklistToken เพิ่ม access token เข้า blacklist (ใช้ตอน logout)
// Returns nil if Redis is not available (development mode)
func BlacklistToken(token string, expiresIn time.Duration) error {
	client := ensureClient()
	if client == nil {
		// ไม่มี Redis ใน dev mode - ข้าม
		return nil
	}
	if expiresIn <= 0 {
		return nil
	}

	key := fmt.Sprintf("blacklist:%s", token)
	if err := client.Set(Ctx, key, "1", expiresIn).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %v", err)
	}
	return nil
}

// IsTokenBlacklisted ตรวจสอบว่า token อยู่ใน blacklist หรือไม่
// Returns false if Redis is not available (development mode - allow all tokens)
func IsTokenBlacklisted(token string) (bool, error) {
	client := ensureClient()
	if client == nil {
		return false, nil
	}

	key := fmt.Sprintf("blacklist:%s", token)
	_, err := client.Get(Ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil // Token ไม่อยู่ใน blacklist
		}
		return false, fmt.Errorf("failed to check blacklist: %v", err)
	}
	return true, nil
}

// --- confirmation codes ---

type localCode struct {
	code    string
	expires time.Time
}

var (
	localCodesMu sync.Mutex
	localCodes   = map[string]localCode{}
)

// StoreCode keeps a short-lived confirmation code under purpose. Without
// Redis the code lives in process memory.
func StoreCode(purpose, code string, ttl time.Duration) error {
	client := ensureClient()
	if client == nil {
		localCodesMu.Lock()
		localCodes[purpose] = localCode{code: code, expires: time.Now().Add(ttl)}
		localCodesMu.Unlock()
		return nil
	}
	if err := client.Set(Ctx, "code:"+purpose, code, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store code: %v", err)
	}
	return nil
}

// ConsumeCode reports whether code matches the stored one. A match deletes
// the stored code so it can be used once.
func ConsumeCode(purpose, code string) (bool, error) {
	if code == "" {
		return false, nil
	}
	client := ensureClient()
	if client == nil {
		localCodesMu.Lock()
		defer localCodesMu.Unlock()
		stored, ok := localCodes[purpose]
		if !ok || time.Now().After(stored.expires) {
			delete(localCodes, purpose)
			return false, nil
		}
		if stored.code != code {
			return false, nil
		}
		delete(localCodes, purpose)
		return true, nil
	}

	// compare and delete in one step so two requests cannot both use the code
	n, err := consumeCodeScript.Run(Ctx, client, []string{"code:" + purpose}, code).Int()
	if err != nil {
		return false, fmt.Errorf("failed to consume code: %v", err)
	}
	return n == 1, nil
}

// consumeCodeScript deletes KEYS[1] only when it holds ARGV[1]. A wrong
// guess leaves the code in place.
var consumeCodeScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)
