package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/bankportal/internal/adapter/gateway"
	domainErrors "github.com/polkiloo/bankportal/internal/domain/errors"
	"github.com/polkiloo/bankportal/internal/domain/model"
	"github.com/polkiloo/bankportal/internal/usecase"
)

const (
	// SessionContextKey is a gin context key for the resolved portal session.
	SessionContextKey = "session"
	// CookieContextKey holds the raw session token the request carried.
	CookieContextKey  = "sessionCookie"
	SessionCookieName = "bankportal_session"
)

// SessionResolver turns a session token into a live session.
type SessionResolver interface {
	CurrentSession(ctx context.Context, token string) (*model.Session, error)
}

// SessionRequired resolves the portal session from the cookie or a bearer
// header. Gateway calls made while handling the request carry the
// session's gateway token.
func SessionRequired(resolver SessionResolver, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortUnauthorized(c)
			return
		}

		session, err := resolver.CurrentSession(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domainErrors.ErrUnauthorized) {
				ClearSessionCookie(c, secureCookie)
				abortUnauthorized(c)
				return
			}
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": domainErrors.Message(err)})
			return
		}

		c.Set(SessionContextKey, session)
		c.Set(CookieContextKey, token)
		c.Request = c.Request.WithContext(gateway.WithToken(c.Request.Context(), session.AccessToken))
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.Header("Location", usecase.PathLogin)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required", "redirect": usecase.PathLogin})
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie
	}
	return ""
}

// CurrentSession returns the session stored by SessionRequired.
func CurrentSession(c *gin.Context) *model.Session {
	val, ok := c.Get(SessionContextKey)
	if !ok {
		return nil
	}
	session, _ := val.(*model.Session)
	return session
}

// CurrentUser returns the user of the resolved session, or nil.
func CurrentUser(c *gin.Context) *model.User {
	if s := CurrentSession(c); s != nil {
		return &s.User
	}
	return nil
}

// SetSessionCookie writes the session token as an HttpOnly cookie.
func SetSessionCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(ttl.Seconds()), "/", "", secure, true)
}

func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}
