package response

import (
	"net/http"

	"anoa.com/magangportal/pkg/apperror"
	"anoa.com/magangportal/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Envelope is the body shape of every JSON response.
type Envelope struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Data    any            `json:"data,omitempty"`
	Kind    string         `json:"kind,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return userID, nil
}

// Error writes err with the status and kind derived from it.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		zap.L().Error("internal error",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err),
		)
	}

	c.AbortWithStatusJSON(code, Envelope{
		Success: false,
		Message: err.Error(),
		Kind:    apperror.KindOf(err),
		Details: apperror.MetaOf(err),
	})
}

// BindError reports a request binding or validation failure.
func BindError(c *gin.Context, err error) {
	Error(c, apperror.New(apperror.ErrInvalidInput, validator.FormatValidationError(err), err))
}

// PayloadTooLarge rejects a request body over the endpoint's size cap.
func PayloadTooLarge(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, Envelope{
		Success: false,
		Message: "ukuran permintaan melebihi batas",
		Kind:    apperror.KindInvalidAttachment,
	})
}
