package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"book-catalog-api/internal/shared/apperror"
)

// ErrorReporter is the single stage that turns handler errors into responses.
// Handlers attach failures with c.Error and return; the last error is logged
// and classified here. Responses already written upstream are left alone.
func ErrorReporter() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		status, body := apperror.Classify(err)

		event := log.Warn()
		if status >= 500 {
			event = log.Error()
		}
		event.
			Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("url", c.Request.URL.String()).
			Err(err).
			Msg("Request failed")

		if c.Writer.Written() {
			return
		}
		c.JSON(status, body)
	}
}
