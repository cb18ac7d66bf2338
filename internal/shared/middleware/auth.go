package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"book-catalog-api/internal/shared/apperror"
	"book-catalog-api/internal/shared/response"
	"book-catalog-api/pkg/jwt"
)

const identityKey = "authIdentity"

// Identity is the caller proven by a valid access token
type Identity struct {
	AuthorID string
	Email    string
}

// TokenValidator is satisfied by *jwt.Manager
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwt.Claims, error)
}

// AuthMiddleware admits the request only when it carries a valid bearer token.
// It proves that some author is authenticated; it does not check which one.
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, reason := bearerToken(c.GetHeader("Authorization"))
		if reason != "" {
			reject(c, &apperror.AuthError{Reason: reason})
			return
		}

		claims, err := tokens.ValidateToken(token)
		if err != nil {
			reject(c, &apperror.AuthError{Reason: "invalid token", Err: err})
			return
		}

		c.Set(identityKey, Identity{AuthorID: claims.AuthorID, Email: claims.Email})
		c.Next()
	}
}

// RequireOwnership rejects the request when the authenticated author is not
// the one named by the :param path segment. Must run after AuthMiddleware.
func RequireOwnership(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			reject(c, &apperror.AuthError{Reason: "no identity on request"})
			return
		}
		if !strings.EqualFold(identity.AuthorID, c.Param(param)) {
			reject(c, &apperror.AuthError{Reason: "token does not belong to target author"})
			return
		}
		c.Next()
	}
}

// GetIdentity returns the identity stored by AuthMiddleware
func GetIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	identity, ok := v.(Identity)
	return identity, ok
}

func bearerToken(header string) (string, string) {
	if header == "" {
		return "", "missing authorization header"
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "invalid authorization header format"
	}
	return parts[1], ""
}

func reject(c *gin.Context, err *apperror.AuthError) {
	log.Debug().
		Str("request_id", c.GetString(RequestIDKey)).
		Str("path", c.Request.URL.Path).
		Err(err).
		Msg("Auth gate rejected request")

	_ = c.Error(err)
	response.Unauthorized(c)
}
