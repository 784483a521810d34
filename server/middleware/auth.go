package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/simplemovies/errors"
	"github.com/kbukum/simplemovies/logger"
	"github.com/kbukum/simplemovies/session"
)

// ContextKeyUsername is the gin context key holding the authenticated
// username.
const ContextKeyUsername = "username"

// Auth returns a gin middleware that requires a valid Bearer token. The
// verified claims are attached to the request context (see
// session.ClaimsFrom) and the user ID to the logging context.
func Auth(verifier session.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abort(c, apperrors.Unauthorized("Authorization header required"))
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abort(c, apperrors.Unauthorized("Invalid authorization header format"))
			return
		}

		claims, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			abort(c, apperrors.From(err))
			return
		}

		ctx := session.WithClaims(c.Request.Context(), claims)
		ctx = logger.ContextWithUserID(ctx, claims.Subject)
		c.Request = c.Request.WithContext(ctx)
		c.Set(ContextKeyUsername, claims.Username)
		c.Next()
	}
}
