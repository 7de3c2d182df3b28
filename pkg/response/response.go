package response

import (
	"net/http"

	"anoa.com/charityhub/internal/auth"
	"anoa.com/charityhub/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GetIdentity retrieves the authenticated identity placed on the context by the auth middleware.
func GetIdentity(c *gin.Context) (auth.Identity, error) {
	identity, ok := auth.FromContext(c)
	if !ok {
		return auth.Identity{}, apperror.Unauthorized("authentication required")
	}
	return identity, nil
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	message := err.Error()
	if code == http.StatusInternalServerError {
		// Store and driver errors never reach the client.
		zap.L().Error("internal error",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		message = apperror.ErrInternal.Error()
	}

	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// ParamUUID parses a path parameter as a uuid.
func ParamUUID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.Invalid("invalid " + name)
	}
	return id, nil
}
