package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-videotube/internal/interface/http"
)

type VideoModule struct {
	Handler *handlers.VideoHandler
	Guard   gin.HandlersChain
}

func NewVideoModule(h *handlers.VideoHandler, guard gin.HandlersChain) *VideoModule {
	return &VideoModule{Handler: h, Guard: guard}
}

func (m *VideoModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/v1/videos", m.Guard...)
	g.GET("", m.Handler.Search)
	g.POST("/publish", m.Handler.Publish)
	g.GET("/:videoId", m.Handler.Get)
	g.PATCH("/:videoId", m.Handler.Update)
	g.DELETE("/:videoId", m.Handler.Delete)
	g.PATCH("/toggle/publish/:videoId", m.Handler.TogglePublish)
}
