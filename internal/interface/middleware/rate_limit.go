package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-videotube/internal/metrics"
	"github.com/oksasatya/go-videotube/pkg/response"
)

// KeyFunc names the caller a limiter counts against, e.g. "ip:203.0.113.5".
type KeyFunc func(c *gin.Context) string

// AllowFunc returns true to skip the limiter for a request.
type AllowFunc func(*gin.Context) bool

func clientIP(c *gin.Context) string {
	if ip := c.GetString(CtxRealIPKey); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

func KeyByIP() KeyFunc {
	return func(c *gin.Context) string { return "ip:" + clientIP(c) }
}

// KeyByIPAndPath counts each matched route separately.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		return "path:" + path + ":ip:" + clientIP(c)
	}
}

// KeyByUserID counts per authenticated user; anonymous callers fall back to their IP.
func KeyByUserID() KeyFunc {
	return func(c *gin.Context) string {
		if uid := UserID(c); uid != "" {
			return "user:" + uid
		}
		return "user:anon:ip:" + clientIP(c)
	}
}

// Returns {count, pttl}. The window starts on the first hit.
var hitScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {n, redis.call("PTTL", KEYS[1])}
`)

// Limit is one fixed-window limiter. Scope labels metrics and namespaces the Redis keys, so
// limiters sharing a KeyFunc keep separate counters.
type Limit struct {
	Scope  string
	Max    int
	Window time.Duration
	Key    KeyFunc
	Allow  AllowFunc
}

func (l Limit) redisKey(c *gin.Context) string { return "rl:" + l.Scope + ":" + l.Key(c) }

// RateLimit counts requests in Redis and answers 429 once Max is passed within Window.
// Redis failures let the request through.
func RateLimit(rdb *redis.Client, l Limit) gin.HandlerFunc {
	if rdb == nil || l.Max <= 0 || l.Window <= 0 || l.Key == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (l.Allow != nil && l.Allow(c)) {
			c.Next()
			return
		}

		res, err := hitScript.Run(c.Request.Context(), rdb, []string{l.redisKey(c)}, l.Window.Milliseconds()).Int64Slice()
		if err != nil || len(res) != 2 {
			c.Next()
			return
		}
		count, ttl := int(res[0]), time.Duration(res[1])*time.Millisecond

		reset := 0
		if ttl > 0 {
			reset = int((ttl + time.Second - 1) / time.Second)
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(l.Max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(l.Max-count, 0)))
		c.Header("X-RateLimit-Reset", strconv.Itoa(reset))

		if count > l.Max {
			if reset > 0 {
				c.Header("Retry-After", strconv.Itoa(reset))
			}
			metrics.RateLimitRejections.WithLabelValues(l.Scope).Inc()
			response.Error(c, http.StatusTooManyRequests, "rate limit exceeded", nil)
			return
		}
		c.Next()
	}
}
