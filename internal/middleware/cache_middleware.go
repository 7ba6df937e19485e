package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// CacheMiddleware exposes the Redis client to handlers. The client may be nil
// when REDIS_ADDR is not configured; callers must handle that.
func CacheMiddleware(client *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("cache", client)
		c.Next()
	}
}

func GetCacheClient(c *gin.Context) *redis.Client {
	client, exists := c.Get("cache")
	if !exists {
		return nil
	}
	if client == nil {
		return nil
	}
	rc, ok := client.(*redis.Client)
	if !ok {
		return nil
	}
	return rc
}
