package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AndyMuloki/zen-spa/internal/handler"
)

const DefaultMaxBodySize = 1 << 20 // 1MB

// SizeLimit rejects oversized bodies up front and caps the reader for the rest.
func SizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, handler.NewErrorResponse("Request body too large"))
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
