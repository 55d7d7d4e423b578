package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-videotube/internal/application"
	"github.com/oksasatya/go-videotube/internal/interface/middleware"
	"github.com/oksasatya/go-videotube/pkg/apperror"
	"github.com/oksasatya/go-videotube/pkg/response"
)

type VideoHandler struct {
	Svc     VideoUseCases
	Uploads Uploads
	Logger  *logrus.Logger
}

func NewVideoHandler(svc VideoUseCases, uploads Uploads, logger *logrus.Logger) *VideoHandler {
	return &VideoHandler{Svc: svc, Uploads: uploads, Logger: logger}
}

type searchQuery struct {
	pageQuery
	Q string `form:"q"`
}

// Search answers GET /videos with a full-text page over published videos.
func (h *VideoHandler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 10
	}
	res, err := h.Svc.Search(c.Request.Context(), q.Q, q.Page, q.Limit)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "videos fetched successfully")
}

func (h *VideoHandler) Publish(c *gin.Context) {
	if err := h.Uploads.Parse(c); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	duration, err := formDuration(c)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	files, err := h.Uploads.Stage(c, "videoFile", "thumbnail")
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	v, err := h.Svc.Publish(c.Request.Context(), middleware.UserID(c), application.PublishInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Duration:    duration,
		VideoFile:   files["videoFile"],
		Thumbnail:   files["thumbnail"],
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, v, "video published successfully")
}

// formDuration reads the optional duration field in seconds.
func formDuration(c *gin.Context) (float64, error) {
	raw, ok := c.GetPostForm("duration")
	if !ok || raw == "" {
		return 0, nil
	}
	d, err := strconv.ParseFloat(raw, 64)
	if err != nil || d < 0 {
		return 0, apperror.Validation("duration must be a non-negative number")
	}
	return d, nil
}

func (h *VideoHandler) Get(c *gin.Context) {
	id, ok := objectIDParam(c, "videoId")
	if !ok {
		return
	}
	v, err := h.Svc.Get(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, v, "video fetched successfully")
}

func (h *VideoHandler) Update(c *gin.Context) {
	id, ok := objectIDParam(c, "videoId")
	if !ok {
		return
	}
	if err := h.Uploads.Parse(c); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	files, err := h.Uploads.Stage(c, "thumbnail")
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	v, err := h.Svc.Update(c.Request.Context(), middleware.UserID(c), id, application.UpdateVideoInput{
		Title:       optionalForm(c, "title"),
		Description: optionalForm(c, "description"),
		Thumbnail:   files["thumbnail"],
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, v, "video updated successfully")
}

func (h *VideoHandler) Delete(c *gin.Context) {
	id, ok := objectIDParam(c, "videoId")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "video deleted successfully")
}

func (h *VideoHandler) TogglePublish(c *gin.Context) {
	id, ok := objectIDParam(c, "videoId")
	if !ok {
		return
	}
	v, err := h.Svc.TogglePublish(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, v, "publish status toggled")
}
