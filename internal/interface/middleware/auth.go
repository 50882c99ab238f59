package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-todo-cards/internal/application"
	"github.com/oksasatya/go-todo-cards/pkg/helpers"
	"github.com/oksasatya/go-todo-cards/pkg/response"
)

const (
	ctxPrincipalKey = "principal"
	ctxUserIDKey    = "userID"
	AccessCookie    = "access_token"
)

// bearerToken reads "Authorization: Bearer <token>", falling back to the access_token cookie.
func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if scheme, token, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if token, err := c.Cookie(AccessCookie); err == nil {
		return token
	}
	return ""
}

// Auth validates the access token and stores the caller's Principal in the Gin context.
// When sessions is non-nil the token's sid must match the user's active session, so signing
// out or signing in elsewhere revokes older tokens.
func Auth(jwt *helpers.JWTManager, sessions application.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid access token", err.Error())
			return
		}
		uid, err := claims.UserID()
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid access token", err.Error())
			return
		}

		if sessions != nil {
			sess, ok, err := sessions.Get(c.Request.Context(), uid)
			if err != nil || !ok {
				response.Abort(c, http.StatusUnauthorized, "session not found", nil)
				return
			}
			if sess.SessionID != claims.SessionID {
				response.Abort(c, http.StatusUnauthorized, "session expired", nil)
				return
			}
		}

		c.Set(ctxPrincipalKey, application.Principal{UserID: uid, Email: claims.Email, SessionID: claims.SessionID})
		c.Set(ctxUserIDKey, claims.Subject) // rate limit key
		c.Next()
	}
}

// PrincipalFrom returns the Principal set by Auth.
func PrincipalFrom(c *gin.Context) (application.Principal, bool) {
	v, ok := c.Get(ctxPrincipalKey)
	if !ok {
		return application.Principal{}, false
	}
	p, ok := v.(application.Principal)
	return p, ok
}

// SetPrincipal stores p as the authenticated caller.
func SetPrincipal(c *gin.Context, p application.Principal) {
	c.Set(ctxPrincipalKey, p)
}
