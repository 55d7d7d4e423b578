package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-videotube/internal/interface/middleware"
	"github.com/oksasatya/go-videotube/pkg/apperror"
	"github.com/oksasatya/go-videotube/pkg/helpers"
	"github.com/oksasatya/go-videotube/pkg/response"
	"github.com/oksasatya/go-videotube/pkg/validation"
)

// respondError writes the error envelope for err. Anything that is not an *apperror.Error is a 500
// with a generic message; server-side failures are logged with their cause.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	ae, ok := apperror.As(err)
	if !ok {
		helpers.LogError(logger, "unhandled error", err, requestFields(c))
		response.Error(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	status := ae.HTTPStatus()
	if status >= http.StatusInternalServerError {
		helpers.LogError(logger, ae.Message, ae.Cause, requestFields(c))
	}
	response.Error(c, status, ae.Message, nil)
}

func requestFields(c *gin.Context) logrus.Fields {
	return logrus.Fields{
		"request_id": c.GetString(middleware.CtxRequestIDKey),
		"route":      c.FullPath(),
		"user_id":    middleware.UserID(c),
	}
}

func bindFailed(c *gin.Context, err error) {
	response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}

// objectIDParam reads a path parameter that must be a document id, answering 400 otherwise.
func objectIDParam(c *gin.Context, name string) (string, bool) {
	v := c.Param(name)
	if !validation.IsObjectID(v) {
		response.Error(c, http.StatusBadRequest, "invalid "+name, nil)
		return "", false
	}
	return v, true
}

// optionalForm returns nil when key is absent from the form, so merges can tell "unset" from "".
func optionalForm(c *gin.Context, key string) *string {
	v, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	return &v
}

type pageQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}
