package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tinnitussen/DAT250/auth"
	"github.com/Tinnitussen/DAT250/utils"
)

const principalKey = "principal"

// Auth validates the session cookie and binds the principal to the
// request context. Requests without a valid session never reach the
// handlers.
func Auth(sessions *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.CookieName)
		if err != nil || token == "" {
			utils.SendError(c, http.StatusUnauthorized, "You must be logged in to view this page")
			c.Abort()
			return
		}

		principal, err := sessions.Parse(token)
		if err != nil {
			utils.SendError(c, http.StatusUnauthorized, "Session is invalid or expired")
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Set("user_id", principal.ID)
		c.Next()
	}
}

// CurrentPrincipal returns the authenticated identity bound by Auth.
func CurrentPrincipal(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return auth.Principal{}, false
	}
	principal, ok := v.(auth.Principal)
	return principal, ok
}
