package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter 基于 Redis 的 IP 限流器
type RateLimiter struct {
	redisClient *redis.Client
}

// NewRateLimiter 创建限流器，client 为 nil 时所有请求直接放行
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{redisClient: client}
}

// Limit 按 IP 限流：window 时间窗口内最多 limit 次请求
func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.redisClient == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", keySuffix, c.ClientIP())

		count, err := rl.redisClient.Incr(c, key).Result()
		if err != nil {
			// Redis 不可用时放行，不因限流组件拖垮主流程
			c.Next()
			return
		}

		// 第一个请求负责设置时间窗口
		if count == 1 {
			rl.redisClient.Expire(c, key, window)
		}

		if count > int64(limit) {
			ttl, _ := rl.redisClient.TTL(c, key).Result()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "请求过于频繁",
				"retry_after": fmt.Sprintf("%.0fs", ttl.Seconds()),
			})
			return
		}
		c.Next()
	}
}
