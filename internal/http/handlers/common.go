package handlers

import (
	"net/http"

	intconfig "boardinghouse-backend/internal/config"
	"boardinghouse-backend/internal/gateway"
	"boardinghouse-backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

var (
	env           intconfig.Env
	intentCreator gateway.IntentCreator
)

// Init wires handler-level configuration. Called once by the router; tests
// swap in fakes.
func Init(e intconfig.Env, creator gateway.IntentCreator) {
	env = e
	intentCreator = creator
}

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}
