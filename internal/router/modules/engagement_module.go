package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-videotube/internal/interface/http"
)

// CommentModule serves /v1/comments.
type CommentModule struct {
	Handler *handlers.CommentHandler
	Guard   gin.HandlersChain
}

func NewCommentModule(h *handlers.CommentHandler, guard gin.HandlersChain) *CommentModule {
	return &CommentModule{Handler: h, Guard: guard}
}

func (m *CommentModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/v1/comments", m.Guard...)
	g.GET("/:videoId", m.Handler.List)
	g.POST("/:videoId", m.Handler.Add)
	g.PATCH("/c/:commentId", m.Handler.Update)
	g.DELETE("/c/:commentId", m.Handler.Delete)
}

// LikeModule serves /v1/likes.
type LikeModule struct {
	Handler *handlers.LikeHandler
	Guard   gin.HandlersChain
}

func NewLikeModule(h *handlers.LikeHandler, guard gin.HandlersChain) *LikeModule {
	return &LikeModule{Handler: h, Guard: guard}
}

func (m *LikeModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/v1/likes", m.Guard...)
	g.POST("/toggle/v/:videoId", m.Handler.ToggleVideo)
	g.POST("/toggle/c/:commentId", m.Handler.ToggleComment)
	g.GET("/user", m.Handler.LikedVideos)
}

// SubscriptionModule serves /v1/subscription.
type SubscriptionModule struct {
	Handler *handlers.SubscriptionHandler
	Guard   gin.HandlersChain
}

func NewSubscriptionModule(h *handlers.SubscriptionHandler, guard gin.HandlersChain) *SubscriptionModule {
	return &SubscriptionModule{Handler: h, Guard: guard}
}

func (m *SubscriptionModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/v1/subscription", m.Guard...)
	g.POST("/channel/:channelId", m.Handler.Toggle)
	g.GET("/channel/:channelId", m.Handler.Channel)
}

// PlaylistModule serves /v1/playlist.
type PlaylistModule struct {
	Handler *handlers.PlaylistHandler
	Guard   gin.HandlersChain
}

func NewPlaylistModule(h *handlers.PlaylistHandler, guard gin.HandlersChain) *PlaylistModule {
	return &PlaylistModule{Handler: h, Guard: guard}
}

func (m *PlaylistModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/v1/playlist", m.Guard...)
	g.POST("", m.Handler.Create)
	g.GET("", m.Handler.ListMine)
	g.GET("/:playlistId", m.Handler.Get)
	g.PATCH("/:playlistId", m.Handler.Update)
	g.DELETE("/:playlistId", m.Handler.Delete)
	g.PATCH("/add/:videoId/:playlistId", m.Handler.AddVideo)
	g.DELETE("/del/:videoId/:playlistId", m.Handler.RemoveVideo)
}
