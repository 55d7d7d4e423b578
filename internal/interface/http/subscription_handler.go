package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-videotube/internal/interface/middleware"
	"github.com/oksasatya/go-videotube/pkg/response"
)

type SubscriptionHandler struct {
	Svc    SubscriptionUseCases
	Logger *logrus.Logger
}

func NewSubscriptionHandler(svc SubscriptionUseCases, logger *logrus.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{Svc: svc, Logger: logger}
}

func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	id, ok := objectIDParam(c, "channelId")
	if !ok {
		return
	}
	st, err := h.Svc.Toggle(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	msg := "unsubscribed"
	if st.IsSubscribed {
		msg = "subscribed"
	}
	response.Success(c, http.StatusOK, st, msg)
}

func (h *SubscriptionHandler) Channel(c *gin.Context) {
	id, ok := objectIDParam(c, "channelId")
	if !ok {
		return
	}
	res, err := h.Svc.Channel(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "subscriptions fetched successfully")
}
