package modules

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/oksasatya/go-videotube/internal/container"
	"github.com/oksasatya/go-videotube/internal/interface/middleware"
	"github.com/oksasatya/go-videotube/pkg/helpers"
	"github.com/oksasatya/go-videotube/pkg/response"
)

// DebugModule serves the health check and, when enabled, the Prometheus scrape endpoint.
type DebugModule struct {
	MetricsEnabled bool
}

func NewDebugModule(metricsEnabled bool) *DebugModule { return &DebugModule{MetricsEnabled: metricsEnabled} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", healthz)

	if !m.MetricsEnabled {
		return
	}
	rl := middleware.RateLimit(container.GetRedis(), middleware.Limit{
		Scope:  "debug",
		Max:    120,
		Window: time.Minute,
		Key:    middleware.KeyByIP(),
		Allow:  middleware.AllowPrivateIP(),
	})
	rg.GET("/debug/metrics", rl, gin.WrapH(promhttp.Handler()))
}

func healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"mongo": "ok", "redis": "ok"}
	healthy := true
	if err := container.GetMongo().Ping(ctx, readpref.Primary()); err != nil {
		status["mongo"] = err.Error()
		healthy = false
	}
	if err := helpers.PingRedis(ctx, container.GetRedis()); err != nil {
		status["redis"] = err.Error()
		healthy = false
	}
	if !healthy {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, response.APIResponse[gin.H]{
			StatusCode: http.StatusServiceUnavailable,
			Data:       status,
			Message:    "unhealthy",
			RequestID:  c.GetString(middleware.CtxRequestIDKey),
		})
		return
	}
	response.Success(c, http.StatusOK, status, "healthy")
}
