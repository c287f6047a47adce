package middleware

import (
	"net/http"

	"anoa.com/magangportal/pkg/response"
	"github.com/gin-gonic/gin"
)

// BodyLimit caps the request body at maxBytes. A declared Content-Length
// over the cap is refused before reading; otherwise reads past the cap fail
// with *http.MaxBytesError.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.PayloadTooLarge(c)
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
