package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-videotube/internal/container"
	handlers "github.com/oksasatya/go-videotube/internal/interface/http"
	"github.com/oksasatya/go-videotube/internal/interface/middleware"
)

// UserModule serves /v1/users.
// Public: register, login, refresh-token. Everything else needs a session.
type UserModule struct {
	Handler *handlers.UserHandler
	Guard   gin.HandlersChain
}

func NewUserModule(h *handlers.UserHandler, guard gin.HandlersChain) *UserModule {
	return &UserModule{Handler: h, Guard: guard}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	registerLimiter := middleware.RateLimit(rdb, middleware.Limit{Scope: "register", Max: 10, Window: time.Minute, Key: middleware.KeyByIP()})
	loginLimiter := middleware.RateLimit(rdb, middleware.Limit{Scope: "login", Max: 10, Window: time.Minute, Key: middleware.KeyByIP()})
	refreshLimiter := middleware.RateLimit(rdb, middleware.Limit{Scope: "refresh", Max: 60, Window: time.Minute, Key: middleware.KeyByIP()})

	g := rg.Group("/v1/users")
	g.POST("/register", registerLimiter, m.Handler.Register)
	g.POST("/login", loginLimiter, m.Handler.Login)
	g.POST("/refresh-token", refreshLimiter, m.Handler.Refresh)

	auth := g.Group("/", m.Guard...)
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.PATCH("/change-password", m.Handler.ChangePassword)
		auth.GET("/get-user", m.Handler.CurrentUser)
		auth.PATCH("/update-details", m.Handler.UpdateDetails)
		auth.PATCH("/image-update", m.Handler.UpdateImages)
		auth.GET("/channel/:username", m.Handler.ChannelProfile)
		auth.GET("/watched", m.Handler.WatchHistory)
	}
}
