package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-screening-backend/internal/delivery/http/response"
	"go-screening-backend/internal/domain"
)

const (
	// SessionCookieName identifies the screening session. The cookie is
	// HttpOnly; the candidate never sees or supplies the ID directly.
	SessionCookieName = "screening_session"
	// sessionCookieExpiry mirrors the browser-session lifetime the flow is
	// designed around; the repository janitor enforces the real TTL.
	sessionCookieExpiry = 24 * time.Hour
)

// SessionMiddleware resolves the caller's screening session from the session
// cookie, creating a fresh greeting-stage session when none exists.
func SessionMiddleware(sessions domain.SessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var session *domain.SessionState

		if id, err := c.Cookie(SessionCookieName); err == nil && id != "" {
			session, _ = sessions.Get(c.Request.Context(), id)
		}

		if session == nil {
			id := uuid.NewString()
			session = domain.NewSessionState(id)
			if err := sessions.Save(c.Request.Context(), session); err != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to start a screening session", nil)
				c.Abort()
				return
			}

			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(
				SessionCookieName,
				id,
				int(sessionCookieExpiry.Seconds()),
				"/",
				"",
				gin.Mode() == gin.ReleaseMode, // Secure only over HTTPS deployments
				true,                          // HttpOnly
			)
		}

		// One request at a time per session: concurrent requests replaying
		// the same cookie would otherwise race on the session state.
		session.Lock()
		defer session.Unlock()

		c.Set(string(domain.KeySession), session)
		c.Set(string(domain.KeySessionID), session.ID)
		c.Next()
	}
}

// SessionFromContext returns the session resolved by SessionMiddleware.
func SessionFromContext(c *gin.Context) *domain.SessionState {
	if v, ok := c.Get(string(domain.KeySession)); ok {
		if s, ok := v.(*domain.SessionState); ok {
			return s
		}
	}
	return nil
}
