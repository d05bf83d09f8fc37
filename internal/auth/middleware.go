package auth

import (
	"context"

	"kudos_web/internal/common"
	"kudos_web/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserLoader looks up the user behind a session.
type UserLoader interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// RequireUser lets the request through only with a valid session whose user still
// exists. The user is stored in the context for user.CurrentUser. A session pointing
// at a missing user is destroyed rather than reported.
func RequireUser(sessions *SessionManager, users UserLoader, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := sessions.RequireSession(c)
		if !ok {
			return
		}
		u, err := users.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			common.GetLoggerFromContext(c, logger).Warn("Session user lookup failed, forcing logout",
				zap.String("userID", claims.UserID.String()), zap.Error(err))
			sessions.Destroy(c, loginPath)
			return
		}
		c.Set(common.UserIDKey, claims.UserID)
		c.Set(common.SessionTokenIDKey, claims.ID)
		c.Set(common.CurrentUserKey, u)
		c.Next()
	}
}
