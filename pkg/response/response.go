package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the success envelope every endpoint returns.
type APIResponse[T any] struct {
	StatusCode int    `json:"statusCode"`
	Data       T      `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
	RequestID  string `json:"requestId,omitempty"`
}

// ErrorResponse is the failure envelope. Errors carries per-field details when there are any.
type ErrorResponse struct {
	StatusCode int               `json:"statusCode"`
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Errors     map[string]string `json:"errors,omitempty"`
	RequestID  string            `json:"requestId,omitempty"`
}

// Success writes the envelope with status (200 when zero) and returns it.
func Success[T any](ctx *gin.Context, status int, data T, message string) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	res := APIResponse[T]{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
		RequestID:  ctx.GetString("request_id"),
	}
	ctx.JSON(status, res)
	return res
}

// Error writes the failure envelope and aborts the chain.
func Error(ctx *gin.Context, status int, message string, details map[string]string) ErrorResponse {
	if status == 0 {
		status = http.StatusBadRequest
	}
	res := ErrorResponse{
		StatusCode: status,
		Success:    false,
		Message:    message,
		Errors:     details,
		RequestID:  ctx.GetString("request_id"),
	}
	ctx.AbortWithStatusJSON(status, res)
	return res
}
