package middleware

import (
	"release-desk/internal/apperr"
	"release-desk/internal/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler renders the last error a handler attached with c.Error. Client errors are
// logged at info, everything else at error with its cause.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		status := apperr.Status(err)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Int("status", status),
			zap.String("kind", apperr.KindOf(err).String()),
			zap.Error(err),
		}
		if status >= 500 {
			logger.Error("request failed", fields...)
		} else {
			logger.Info("request rejected", fields...)
		}

		if c.Writer.Written() {
			return
		}

		resp := dto.ErrorResponse{Success: false, Message: apperr.Message(err)}
		if status >= 500 {
			resp.Error = apperr.Cause(err)
		}
		c.JSON(status, resp)
	}
}

// NotFound answers unknown routes in the same envelope as every other error.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(apperr.NotFound("Route " + c.Request.Method + " " + c.Request.URL.Path + " not found"))
	}
}
