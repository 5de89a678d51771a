package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopizer/backend/internal/interfaces/http/dto"
)

// BodyLimit rejects requests that declare more than maxBytes with 413.
// Bodies sent without a length fail on read once maxBytes is passed.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	tooLarge := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
			dto.NewErrorResponse(dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size", GetRequestID(c)))
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			tooLarge(c)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
