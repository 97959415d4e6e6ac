package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/freshmart/admin-console/internal/domain"
)

// TokenVerifier checks a console access token and returns the username it
// was issued to.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// SessionSource exposes the current operator session.
type SessionSource interface {
	Current() domain.Session
}

// AuthGuard returns a gin middleware protecting the console API. A request
// passes when it carries a valid bearer token and an operator session is
// present; everything else gets 401 with a redirect hint so the UI can
// send the operator back to the sign-in page.
//
// The remote API token never appears in responses; the bearer token is the
// console's own, minted at sign-in.
func AuthGuard(tokens TokenVerifier, sessions SessionSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			rejectUnauthorized(c, "missing access token")
			return
		}

		username, err := tokens.Verify(raw)
		if err != nil {
			rejectUnauthorized(c, "invalid or expired access token")
			return
		}

		session := sessions.Current()
		if !session.Present() {
			// The console restarted signed out, or the operator signed
			// out in another tab; the token alone is not enough.
			rejectUnauthorized(c, "not signed in")
			return
		}

		c.Set("username", username)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func rejectUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":     http.StatusUnauthorized,
		"message":  message,
		"data":     nil,
		"redirect": "/auth",
	})
}
