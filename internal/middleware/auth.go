package middleware

import (
	"errors"
	"strings"

	"anoa.com/charityhub/internal/auth"
	"anoa.com/charityhub/pkg/apperror"
	"anoa.com/charityhub/pkg/response"
	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokens *auth.TokenManager
}

func NewAuthMiddleware(tokens *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth resolves the bearer token into an identity. No server-side
// session is consulted.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")

		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenString = strings.TrimSpace(parts[1])
			} else {
				response.ResponseError(c, apperror.Unauthorized(auth.ErrInvalidToken.Error()))
				return
			}
		}

		// Fallback to query parameter "token" (browsers cannot set headers on websockets)
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		identity, err := m.tokens.Parse(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrMissingToken) {
				response.ResponseError(c, apperror.Unauthorized(auth.ErrMissingToken.Error()))
				return
			}
			response.ResponseError(c, apperror.Unauthorized(auth.ErrInvalidToken.Error()))
			return
		}

		auth.SetIdentity(c, identity)
		c.Next()
	}
}

// RequireRole admits only identities whose role is in roles. The rejection
// does not name the roles that would have been accepted.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := response.GetIdentity(c)
		if err != nil {
			response.ResponseError(c, err)
			return
		}

		if !identity.HasRole(roles...) {
			response.ResponseError(c, apperror.Forbidden("insufficient permissions"))
			return
		}

		c.Next()
	}
}
