package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/mobilehub-pos/pkg/apperror"
)

// APIResponse is the envelope of every JSON answer
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Reason  string      `json:"reason,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// Meta identifies the answer for log correlation
type Meta struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
}

func write(c *gin.Context, status int, body APIResponse) {
	requestID := c.GetString("request_id")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-ID")
	}
	if requestID == "" {
		requestID = uuid.New().String()
	}
	body.Meta = &Meta{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID,
	}
	c.JSON(status, body)
}

func OK(c *gin.Context, message string, data interface{}) {
	write(c, http.StatusOK, APIResponse{Success: true, Message: message, Data: data})
}

func Created(c *gin.Context, message string, data interface{}) {
	write(c, http.StatusCreated, APIResponse{Success: true, Message: message, Data: data})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error answers with the status of err. Unclassified errors are attached to
// the context for the logger and reported as a bare 500.
func Error(c *gin.Context, err error) {
	if !apperror.IsAppError(err) {
		_ = c.Error(err)
		err = apperror.ErrInternalServer
	}
	appErr := apperror.GetAppError(err)
	if appErr.Reason == "" && len(appErr.Errors) > 0 {
		ValidationError(c, appErr.Errors)
		return
	}
	write(c, appErr.Code, APIResponse{
		Message: appErr.Message,
		Reason:  appErr.Reason,
		Errors:  appErr.Errors,
	})
}

// ValidationError reports field problems found outside the record rules,
// such as a malformed date.
func ValidationError(c *gin.Context, errors []apperror.FieldError) {
	write(c, http.StatusUnprocessableEntity, APIResponse{Message: "Validation failed", Errors: errors})
}

func Unauthorized(c *gin.Context, message string) {
	write(c, apperror.ErrUnauthorized.Code, APIResponse{Message: message})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, apperror.NewBadRequestError(message))
}
