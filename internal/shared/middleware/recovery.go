package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"book-catalog-api/internal/shared/apperror"
)

// Recovery turns a panic into a 500 with the same body shape as unhandled errors
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Str("method", c.Request.Method).
					Str("url", c.Request.URL.String()).
					Interface("error", err).
					Msg("Panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, apperror.Body{
					Error: "Internal server error",
				})
			}
		}()

		c.Next()
	}
}
