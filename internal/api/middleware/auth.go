package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/auth"
)

const sessionContextKey = "session"

// SessionMiddleware resolves the session cookie into an auth.Session and
// stores it on the request context. Requests without a valid cookie pass
// through anonymously; route guards decide what requires a session.
func SessionMiddleware(tokens *auth.TokenManager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(cookieName)
		if err == nil && cookie != "" {
			if session, err := tokens.ValidateToken(cookie); err == nil {
				c.Set(sessionContextKey, session)
			}
		}
		c.Next()
	}
}

// GetSession returns the session attached to the request, if any
func GetSession(c *gin.Context) (*auth.Session, bool) {
	val, ok := c.Get(sessionContextKey)
	if !ok {
		return nil, false
	}
	session, ok := val.(*auth.Session)
	return session, ok
}

// RequireUser aborts with 401 unless a customer session is present
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok || session.Admin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts with 401 unless a back-office session is present
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok || !session.Admin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin login required"})
			return
		}
		c.Next()
	}
}
