package respond

import (
	"github.com/gin-gonic/gin"

	"github.com/hongminglow/bank-console/internal/alerts"
)

// Envelope is the standard API response wrapper used across handlers.
type Envelope struct {
	Code     int           `json:"code"`
	Message  string        `json:"message"`
	Data     any           `json:"data,omitempty"`
	Alert    *alerts.Alert `json:"alert,omitempty"`
	Retry    bool          `json:"retry,omitempty"`
	Redirect string        `json:"redirect,omitempty"`
}

// JSON writes a success or informational response using the common envelope.
func JSON(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Code: status, Message: message, Data: data})
}

// WithAlert writes a response that also carries the form's active alert.
func WithAlert(c *gin.Context, status int, alert alerts.Alert, data any) {
	c.JSON(status, Envelope{Code: status, Message: alert.Message, Data: data, Alert: &alert})
}

// Error writes an error response with the shared envelope structure.
func Error(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Code: status, Message: message})
}

// Retryable writes an error for a load the client may try again.
func Retryable(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Code: status, Message: message, Retry: true})
}

// Redirect refuses a view and names where the client should go instead.
func Redirect(c *gin.Context, status int, message, location string) {
	c.AbortWithStatusJSON(status, Envelope{Code: status, Message: message, Redirect: location})
}
