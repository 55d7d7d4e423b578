package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-videotube/internal/interface/middleware"
	"github.com/oksasatya/go-videotube/pkg/response"
)

type CommentHandler struct {
	Svc    CommentUseCases
	Logger *logrus.Logger
}

func NewCommentHandler(svc CommentUseCases, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Svc: svc, Logger: logger}
}

type commentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

func (h *CommentHandler) List(c *gin.Context) {
	videoID, ok := objectIDParam(c, "videoId")
	if !ok {
		return
	}
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}
	list, err := h.Svc.List(c.Request.Context(), videoID, q.Page, q.Limit)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list, "comments fetched successfully")
}

func (h *CommentHandler) Add(c *gin.Context) {
	videoID, ok := objectIDParam(c, "videoId")
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	cm, err := h.Svc.Add(c.Request.Context(), middleware.UserID(c), videoID, req.Content)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, cm, "comment added successfully")
}

func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := objectIDParam(c, "commentId")
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	cm, err := h.Svc.Update(c.Request.Context(), middleware.UserID(c), id, req.Content)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, cm, "comment updated successfully")
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := objectIDParam(c, "commentId")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "comment deleted successfully")
}
