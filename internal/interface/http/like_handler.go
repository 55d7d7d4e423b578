package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-videotube/internal/interface/middleware"
	"github.com/oksasatya/go-videotube/pkg/response"
)

type LikeHandler struct {
	Svc    LikeUseCases
	Logger *logrus.Logger
}

func NewLikeHandler(svc LikeUseCases, logger *logrus.Logger) *LikeHandler {
	return &LikeHandler{Svc: svc, Logger: logger}
}

func (h *LikeHandler) ToggleVideo(c *gin.Context) {
	id, ok := objectIDParam(c, "videoId")
	if !ok {
		return
	}
	st, err := h.Svc.ToggleVideoLike(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, st, likeMessage(st.IsLiked))
}

func (h *LikeHandler) ToggleComment(c *gin.Context) {
	id, ok := objectIDParam(c, "commentId")
	if !ok {
		return
	}
	st, err := h.Svc.ToggleCommentLike(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, st, likeMessage(st.IsLiked))
}

func likeMessage(liked bool) string {
	if liked {
		return "liked"
	}
	return "unliked"
}

func (h *LikeHandler) LikedVideos(c *gin.Context) {
	list, err := h.Svc.LikedVideos(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list, "liked videos fetched successfully")
}
