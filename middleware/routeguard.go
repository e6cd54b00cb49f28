package middleware

import (
	"net/http"

	"hospitalpanel/services/session"

	"github.com/gin-gonic/gin"
)

// GuardDecision is the outcome of the route guard for one navigation.
type GuardDecision int

const (
	// GuardAllow renders the requested view.
	GuardAllow GuardDecision = iota
	// GuardRedirectLogin sends an unauthenticated visitor to the login view.
	GuardRedirectLogin
	// GuardRedirectLanding sends an authenticated visitor away from
	// public-only views (login, register) to the landing view.
	GuardRedirectLanding
)

// LoginPath is where unauthenticated visitors of protected views end up.
const LoginPath = "/login"

// DefaultLanding is where authenticated visitors of public-only views end up.
const DefaultLanding = "/"

// DecideRoute is the guard itself: deterministic, side-effect free.
func DecideRoute(hasSession, isPublic bool) GuardDecision {
	if isPublic && hasSession {
		return GuardRedirectLanding
	}
	if !isPublic && !hasSession {
		return GuardRedirectLogin
	}
	return GuardAllow
}

// RouteGuard applies DecideRoute to page navigations, reading the session
// cookie. An empty landing falls back to DefaultLanding.
func RouteGuard(codec session.CookieCodec, isPublic bool, landing string) gin.HandlerFunc {
	if landing == "" {
		landing = DefaultLanding
	}
	return func(c *gin.Context) {
		user := codec.Read(c.Request)
		switch DecideRoute(user != nil, isPublic) {
		case GuardRedirectLogin:
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
		case GuardRedirectLanding:
			c.Redirect(http.StatusFound, landing)
			c.Abort()
		default:
			if user != nil {
				c.Set("authUser", user)
			}
			c.Next()
		}
	}
}

// RequireSession is the API variant of the guard: a missing session responds
// 401 instead of redirecting.
func RequireSession(codec session.CookieCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := codec.Read(c.Request)
		if DecideRoute(user != nil, false) != GuardAllow {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}
		c.Set("authUser", user)
		c.Next()
	}
}
