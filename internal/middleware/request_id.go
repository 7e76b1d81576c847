package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

const ContextRequestIDKey = "request_id"

// RequestID tags every request with a correlation ID, honoring one
// supplied by the client.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader(RequestIDHeader)

		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx.Set(ContextRequestIDKey, requestID)
		ctx.Writer.Header().Set(RequestIDHeader, requestID)
		ctx.Next()
	}
}
