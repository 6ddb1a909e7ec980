package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jangheelee880707/wooahhan/internal/errors"
	"github.com/jangheelee880707/wooahhan/pkg/util"
)

// Context keys for session information
const (
	SessionIDKey       = "session_id"
	SessionTokenHeader = "X-Session-Token"
)

type SessionMiddleware struct {
	secret     string
	ttl        time.Duration
	cookieName string
	secure     bool
	now        func() time.Time
}

func NewSessionMiddleware(secret string, ttl time.Duration, cookieName string, secure bool) *SessionMiddleware {
	return &SessionMiddleware{
		secret:     secret,
		ttl:        ttl,
		cookieName: cookieName,
		secure:     secure,
		now:        time.Now,
	}
}

// Attach resolves the visitor's session from the X-Session-Token header,
// the session cookie or the token query parameter (WebSocket), in that
// order. A missing or invalid token gets a fresh session. A valid token past
// half its lifetime is renewed for the same session.
func (m *SessionMiddleware) Attach() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		token := c.GetHeader(SessionTokenHeader)
		if token == "" {
			if cookie, err := c.Cookie(m.cookieName); err == nil {
				token = cookie
			}
		}
		if token == "" {
			token = c.Query("token")
		}

		if token != "" {
			claims, err := util.ValidateSessionToken(token, m.secret)
			if err == nil {
				if m.pastHalfLife(claims) {
					if renewed, err := util.GenerateSessionToken(claims.SessionID, m.secret, m.ttl); err == nil {
						m.deliver(c, renewed)
						log.Debug("Session token renewed", map[string]interface{}{
							"session_id": claims.SessionID,
						})
					} else {
						log.Error("Failed to renew session token", err)
					}
				}
				c.Set(SessionIDKey, claims.SessionID)
				c.Next()
				return
			}
			log.Debug("Session token rejected, issuing a new session", map[string]interface{}{
				"error": err.Error(),
			})
		}

		sessionID := uuid.NewString()
		issued, err := util.GenerateSessionToken(sessionID, m.secret, m.ttl)
		if err != nil {
			log.Error("Failed to issue session token", err)
			errors.InternalError(c, "세션을 생성할 수 없습니다")
			c.Abort()
			return
		}

		m.deliver(c, issued)
		c.Set(SessionIDKey, sessionID)

		log.Info("New session issued", map[string]interface{}{
			"session_id": sessionID,
		})
		c.Next()
	}
}

// deliver hands a token to the client as both header and cookie.
func (m *SessionMiddleware) deliver(c *gin.Context, token string) {
	c.Header(SessionTokenHeader, token)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, token, int(m.ttl.Seconds()), "/", "", m.secure, true)
}

func (m *SessionMiddleware) pastHalfLife(claims *util.SessionClaims) bool {
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return false
	}
	issued, expires := claims.IssuedAt.Time, claims.ExpiresAt.Time
	return !m.now().Before(issued.Add(expires.Sub(issued) / 2))
}

// GetSessionID returns the session resolved by SessionMiddleware.
func GetSessionID(c *gin.Context) (string, bool) {
	sessionID := c.GetString(SessionIDKey)
	return sessionID, sessionID != ""
}

// RequireSession aborts with 401 when no session was attached.
func RequireSession(c *gin.Context) (string, bool) {
	sessionID, ok := GetSessionID(c)
	if !ok {
		errors.RespondWithError(c, http.StatusUnauthorized, errors.SessionInvalid, "세션 정보가 없습니다")
		c.Abort()
	}
	return sessionID, ok
}
