package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/timmy/mememania/internal/auth"
	"github.com/timmy/mememania/internal/domain"
	"github.com/timmy/mememania/internal/logger"
)

const principalKey = "principal"

// BearerAuth returns a middleware that rejects requests whose bearer token
// is not accepted by verifier. Accepted requests carry the principal in both
// the Gin context and the request context.
func BearerAuth(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, "Missing or malformed bearer token")
			return
		}

		principal, ok := verifier.Verify(c.Request.Context(), token)
		if !ok {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		ctx := auth.WithPrincipal(c.Request.Context(), principal)
		ctx = logger.WithField(ctx, logger.FieldClientID, principal.ClientID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(principalKey, principal)

		c.Next()
	}
}

// GetPrincipal returns the principal set by BearerAuth, or nil.
func GetPrincipal(c *gin.Context) *domain.Principal {
	if p, exists := c.Get(principalKey); exists {
		if principal, ok := p.(*domain.Principal); ok {
			return principal
		}
	}
	return nil
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
// The scheme is case-insensitive; the token is not.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	if token == "" {
		return "", false
	}
	return token, true
}

func abortUnauthorized(c *gin.Context, description string) {
	logger.CtxWarn(c.Request.Context(), "Rejected request: %s", description)

	c.Header("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+description+`"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":             "invalid_token",
		"error_description": description,
	})
	c.Error(domain.ErrUnauthenticated)
}
