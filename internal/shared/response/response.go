package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"book-catalog-api/internal/shared/apperror"
)

// Error writes {"error": message} with the given status
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, apperror.Body{Error: message})
}

// Unauthorized aborts the chain with the fixed auth failure body
func Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, apperror.Body{Error: apperror.UnauthorizedMessage})
}

// NotFound writes an empty JSON object, the not-found body for single resources
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{})
}

// NotFoundList writes an empty JSON array, the not-found body for lookups returning many
func NotFoundList(c *gin.Context) {
	c.JSON(http.StatusNotFound, []struct{}{})
}

// NotFoundText writes a plain text not-found message
func NotFoundText(c *gin.Context, message string) {
	c.String(http.StatusNotFound, message)
}
