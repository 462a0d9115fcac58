package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stayhub/rental-api/pkg/apperr"
)

// APIResponse is the envelope for every JSON response.
type APIResponse struct {
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	Error     any       `json:"error,omitempty"`
}

// OK writes a success envelope with the given status.
func OK(c *gin.Context, status int, data any, message string) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, APIResponse{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: c.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
	})
}

// NoContent writes an empty 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Fail writes the error envelope for an application error. 4xx errors carry
// their structured details; 5xx errors expose only a generic message.
func Fail(c *gin.Context, err *apperr.Error) {
	status := err.HTTPStatus()
	var details any
	if status < http.StatusInternalServerError {
		details = err.Details
	}
	c.JSON(status, APIResponse{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: c.GetString("request_id"),
		Success:   false,
		Message:   err.Message(),
		Error:     details,
	})
}
