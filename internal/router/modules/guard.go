package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-videotube/internal/container"
	"github.com/oksasatya/go-videotube/internal/interface/middleware"
)

// Guard is the chain in front of every authenticated route: the token check, then a softer
// per-IP limit and a per-user limit.
func Guard(tokens middleware.AccessTokenParser, users middleware.UserFinder) gin.HandlersChain {
	rdb := container.GetRedis()
	return gin.HandlersChain{
		middleware.Auth(tokens, users),
		middleware.RateLimit(rdb, middleware.Limit{Scope: "authed_ip", Max: 300, Window: time.Minute, Key: middleware.KeyByIP()}),
		middleware.RateLimit(rdb, middleware.Limit{Scope: "authed_user", Max: 120, Window: time.Minute, Key: middleware.KeyByUserID()}),
	}
}
