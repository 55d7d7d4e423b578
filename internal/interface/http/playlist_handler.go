package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-videotube/internal/application"
	"github.com/oksasatya/go-videotube/internal/interface/middleware"
	"github.com/oksasatya/go-videotube/pkg/response"
)

type PlaylistHandler struct {
	Svc    PlaylistUseCases
	Logger *logrus.Logger
}

func NewPlaylistHandler(svc PlaylistUseCases, logger *logrus.Logger) *PlaylistHandler {
	return &PlaylistHandler{Svc: svc, Logger: logger}
}

type createPlaylistRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
}

type updatePlaylistRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

func (h *PlaylistHandler) Create(c *gin.Context) {
	var req createPlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), middleware.UserID(c), req.Name, req.Description)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "playlist created successfully")
}

func (h *PlaylistHandler) ListMine(c *gin.Context) {
	list, err := h.Svc.ListMine(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list, "playlists fetched successfully")
}

func (h *PlaylistHandler) Get(c *gin.Context) {
	id, ok := objectIDParam(c, "playlistId")
	if !ok {
		return
	}
	p, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "playlist fetched successfully")
}

func (h *PlaylistHandler) Update(c *gin.Context) {
	id, ok := objectIDParam(c, "playlistId")
	if !ok {
		return
	}
	var req updatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), middleware.UserID(c), id, application.UpdatePlaylistInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "playlist updated successfully")
}

func (h *PlaylistHandler) Delete(c *gin.Context) {
	id, ok := objectIDParam(c, "playlistId")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "playlist deleted successfully")
}

// membership reads both ids for the add/remove routes.
func membership(c *gin.Context) (videoID, playlistID string, ok bool) {
	if videoID, ok = objectIDParam(c, "videoId"); !ok {
		return
	}
	playlistID, ok = objectIDParam(c, "playlistId")
	return
}

func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	videoID, playlistID, ok := membership(c)
	if !ok {
		return
	}
	p, err := h.Svc.AddVideo(c.Request.Context(), middleware.UserID(c), playlistID, videoID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "video added to playlist")
}

func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	videoID, playlistID, ok := membership(c)
	if !ok {
		return
	}
	p, err := h.Svc.RemoveVideo(c.Request.Context(), middleware.UserID(c), playlistID, videoID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "video removed from playlist")
}
