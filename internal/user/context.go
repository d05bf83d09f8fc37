package user

import (
	"kudos_web/internal/common"

	"github.com/gin-gonic/gin"
)

// CurrentUser returns the user loaded by the session middleware, or nil.
func CurrentUser(c *gin.Context) *User {
	val, exists := c.Get(common.CurrentUserKey)
	if !exists {
		return nil
	}
	u, _ := val.(*User)
	return u
}
